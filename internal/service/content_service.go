// internal/service/content_service.go
package service

import (
	"context"
	"errors"
	"time"

	"smartcourse/internal/cache"
	"smartcourse/internal/config"
	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
	"smartcourse/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"
)

type ContentService interface {
	GetContent(ctx context.Context, courseID uint) (*model.CourseContent, error)
	UpsertContent(ctx context.Context, actor model.Actor, courseID uint, req *model.UpsertContentRequest) (*model.CourseContent, error)
	AddModule(ctx context.Context, actor model.Actor, courseID uint, req *model.AddModuleRequest) (*model.CourseContent, error)
	UpdateModule(ctx context.Context, actor model.Actor, courseID uint, moduleID string, req *model.UpdateModuleRequest) (*model.CourseContent, error)
	RemoveModule(ctx context.Context, actor model.Actor, courseID uint, moduleID string) error
	AddLesson(ctx context.Context, actor model.Actor, courseID uint, moduleID string, req *model.AddLessonRequest) (*model.CourseContent, error)
	UpdateLesson(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, req *model.UpdateLessonRequest) (*model.CourseContent, error)
	RemoveLesson(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string) error
	AddResource(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, req *model.AddResourceRequest) (*model.CourseContent, error)
	UpdateResource(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, index int, req *model.UpdateResourceRequest) (*model.CourseContent, error)
	RemoveResource(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, index int) error
	DeleteContent(ctx context.Context, actor model.Actor, courseID uint) error
}

type contentService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
	courseRepo  repository.CourseRepository
	cache       *cache.Client
}

func NewContentService(db *gorm.DB, contentRepo repository.ContentRepository, courseRepo repository.CourseRepository, cacheClient *cache.Client) ContentService {
	return &contentService{
		db:          db,
		contentRepo: contentRepo,
		courseRepo:  courseRepo,
		cache:       cacheClient,
	}
}

// GetContent はコンテンツツリーをキャッシュ経由で取得します
func (s *contentService) GetContent(ctx context.Context, courseID uint) (*model.CourseContent, error) {
	key := cache.ContentKey(courseID)

	var cached model.CourseContent
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	content, err := s.contentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, content, config.ContentTTL)
	return content, nil
}

// authorize はコースの存在確認と編集権限チェックをまとめて行います
func (s *contentService) authorize(ctx context.Context, actor model.Actor, courseID uint) error {
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		return err
	}
	if !canManage(actor, course) {
		return model.ErrForbidden
	}
	return nil
}

// refresh はキャッシュを失効させてから最新のツリーを読み直します。
// 変更系操作は書き込み成功後に必ずこれを通る。
func (s *contentService) refresh(ctx context.Context, courseID uint) (*model.CourseContent, error) {
	s.cache.Delete(ctx, cache.ContentKey(courseID))
	content, err := s.contentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cache.ContentKey(courseID), content, config.ContentTTL)
	return content, nil
}

func (s *contentService) UpsertContent(ctx context.Context, actor model.Actor, courseID uint, req *model.UpsertContentRequest) (*model.CourseContent, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	modules := req.Modules
	if modules == nil {
		modules = []model.Module{}
	}
	for i := range modules {
		normalizeModule(&modules[i])
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = computeMetadata(modules)
	}

	content := &model.CourseContent{
		CourseID: courseID,
		Modules:  modules,
		Metadata: metadata,
	}
	if err := s.contentRepo.Upsert(ctx, content); err != nil {
		return nil, model.ErrInternalServer
	}

	logger.Info("Course content upserted", "course_id", courseID, "modules", len(modules))
	return s.refresh(ctx, courseID)
}

func (s *contentService) AddModule(ctx context.Context, actor model.Actor, courseID uint, req *model.AddModuleRequest) (*model.CourseContent, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	content, err := s.contentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInternalServer
		}
		// ツリー未作成なら空で初期化してから追加する
		content = &model.CourseContent{
			CourseID:  courseID,
			Modules:   []model.Module{},
			Metadata:  &model.ContentMetadata{Tags: []string{}},
			CreatedAt: time.Now(),
		}
		if err := s.contentRepo.Upsert(ctx, content); err != nil {
			return nil, model.ErrInternalServer
		}
	}
	for _, m := range content.Modules {
		if m.ModuleID == req.ModuleID {
			return nil, model.NewAppError("CONFLICT", "このモジュールIDは既に存在します", "module_id", model.ErrConflict)
		}
	}

	module := &model.Module{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    true,
		Lessons:     req.Lessons,
		Quizzes:     []model.QuizRef{},
		Summaries:   []model.SummaryRef{},
	}
	normalizeModule(module)

	if err := s.contentRepo.AddModule(ctx, courseID, module); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}

	logger.Info("Module added", "course_id", courseID, "module_id", req.ModuleID)
	return s.refresh(ctx, courseID)
}

func (s *contentService) UpdateModule(ctx context.Context, actor model.Actor, courseID uint, moduleID string, req *model.UpdateModuleRequest) (*model.CourseContent, error) {
	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	updates := bson.M{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if len(updates) == 0 {
		return s.GetContent(ctx, courseID)
	}

	if err := s.contentRepo.UpdateModule(ctx, courseID, moduleID, updates); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return s.refresh(ctx, courseID)
}

// RemoveModule はモジュールを論理削除します。
// 進捗や修了証が参照している可能性があるため物理削除はしない。
func (s *contentService) RemoveModule(ctx context.Context, actor model.Actor, courseID uint, moduleID string) error {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return err
	}
	if err := s.contentRepo.DeactivateModule(ctx, courseID, moduleID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}

	s.cache.Delete(ctx, cache.ContentKey(courseID))
	logger.Info("Module deactivated", "course_id", courseID, "module_id", moduleID)
	return nil
}

func (s *contentService) AddLesson(ctx context.Context, actor model.Actor, courseID uint, moduleID string, req *model.AddLessonRequest) (*model.CourseContent, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	// レッスンIDの重複はツリー全体で禁止 (進捗記録のキーになるため)
	content, err := s.contentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, m := range content.Modules {
		for _, l := range m.Lessons {
			if l.LessonID == req.LessonID {
				return nil, model.NewAppError("CONFLICT", "このレッスンIDは既に存在します", "lesson_id", model.ErrConflict)
			}
		}
	}

	lesson := &model.Lesson{
		LessonID:        req.LessonID,
		Title:           req.Title,
		Type:            req.Type,
		Content:         req.Content,
		DurationMinutes: req.DurationMinutes,
		Order:           req.Order,
		IsPreview:       req.IsPreview,
		IsActive:        true,
		Resources:       req.Resources,
	}
	if lesson.Resources == nil {
		lesson.Resources = []model.Resource{}
	}

	if err := s.contentRepo.AddLesson(ctx, courseID, moduleID, lesson); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}

	logger.Info("Lesson added", "course_id", courseID, "module_id", moduleID, "lesson_id", req.LessonID)
	return s.refresh(ctx, courseID)
}

func (s *contentService) UpdateLesson(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, req *model.UpdateLessonRequest) (*model.CourseContent, error) {
	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	updates := bson.M{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if req.IsPreview != nil {
		updates["is_preview"] = *req.IsPreview
	}
	if len(updates) == 0 {
		return s.GetContent(ctx, courseID)
	}

	if err := s.contentRepo.UpdateLesson(ctx, courseID, moduleID, lessonID, updates); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return s.refresh(ctx, courseID)
}

func (s *contentService) RemoveLesson(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string) error {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return err
	}
	if err := s.contentRepo.DeactivateLesson(ctx, courseID, moduleID, lessonID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}

	s.cache.Delete(ctx, cache.ContentKey(courseID))
	logger.Info("Lesson deactivated", "course_id", courseID, "module_id", moduleID, "lesson_id", lessonID)
	return nil
}

func (s *contentService) AddResource(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, req *model.AddResourceRequest) (*model.CourseContent, error) {
	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	resource := &model.Resource{
		Name: req.Name,
		URL:  req.URL,
		Type: req.Type,
	}
	if err := s.contentRepo.AddResource(ctx, courseID, moduleID, lessonID, resource); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return s.refresh(ctx, courseID)
}

// UpdateResource はインデックス指定でリソースを部分更新します。
// MongoDBの配列インデックス直接指定は並行変更に弱いため、
// 現在の配列を読み出して加工し、丸ごと書き戻す。
func (s *contentService) UpdateResource(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, index int, req *model.UpdateResourceRequest) (*model.CourseContent, error) {
	if err := s.authorize(ctx, actor, courseID); err != nil {
		return nil, err
	}

	resources, err := s.lessonResources(ctx, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(resources) {
		return nil, model.ErrNotFound
	}

	if req.Name != nil {
		resources[index].Name = *req.Name
	}
	if req.URL != nil {
		resources[index].URL = *req.URL
	}
	if req.Type != nil {
		resources[index].Type = *req.Type
	}

	if err := s.contentRepo.SetResources(ctx, courseID, moduleID, lessonID, resources); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return s.refresh(ctx, courseID)
}

func (s *contentService) RemoveResource(ctx context.Context, actor model.Actor, courseID uint, moduleID, lessonID string, index int) error {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return err
	}

	resources, err := s.lessonResources(ctx, courseID, moduleID, lessonID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(resources) {
		return model.ErrNotFound
	}

	resources = append(resources[:index], resources[index+1:]...)
	if err := s.contentRepo.SetResources(ctx, courseID, moduleID, lessonID, resources); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}

	s.cache.Delete(ctx, cache.ContentKey(courseID))
	logger.Info("Resource removed", "course_id", courseID, "module_id", moduleID, "lesson_id", lessonID, "index", index)
	return nil
}

// DeleteContent はコースのコンテンツツリーを丸ごと削除します。
// モジュール・レッスンの論理削除と違い、ツリーのドキュメント自体を消す。
func (s *contentService) DeleteContent(ctx context.Context, actor model.Actor, courseID uint) error {
	logger := middleware.GetLogger(ctx)

	if err := s.authorize(ctx, actor, courseID); err != nil {
		return err
	}

	// 存在しないツリーの削除はNotFoundとして返す
	if _, err := s.contentRepo.FindByCourse(ctx, courseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}
	if err := s.contentRepo.DeleteByCourse(ctx, courseID); err != nil {
		return model.ErrInternalServer
	}

	s.cache.Delete(ctx, cache.ContentKey(courseID))
	logger.Info("Course content deleted", "course_id", courseID)
	return nil
}

// lessonResources は指定レッスンのリソース配列を取り出します
func (s *contentService) lessonResources(ctx context.Context, courseID uint, moduleID, lessonID string) ([]model.Resource, error) {
	content, err := s.contentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, m := range content.Modules {
		if m.ModuleID != moduleID {
			continue
		}
		for _, l := range m.Lessons {
			if l.LessonID == lessonID {
				return l.Resources, nil
			}
		}
	}
	return nil, model.ErrNotFound
}

// normalizeModule は入力モジュールの初期値を整えます。
// 新規投入されるモジュールとレッスンは常に有効状態から始まる。
func normalizeModule(m *model.Module) {
	m.IsActive = true
	if m.Lessons == nil {
		m.Lessons = []model.Lesson{}
	}
	for i := range m.Lessons {
		m.Lessons[i].IsActive = true
		if m.Lessons[i].Resources == nil {
			m.Lessons[i].Resources = []model.Resource{}
		}
	}
	if m.Quizzes == nil {
		m.Quizzes = []model.QuizRef{}
	}
	for i := range m.Quizzes {
		m.Quizzes[i].IsActive = true
	}
	if m.Summaries == nil {
		m.Summaries = []model.SummaryRef{}
	}
	for i := range m.Summaries {
		m.Summaries[i].IsActive = true
	}
}

// computeMetadata はモジュール構成からメタ情報を計算します
func computeMetadata(modules []model.Module) *model.ContentMetadata {
	meta := &model.ContentMetadata{
		TotalModules: len(modules),
		Tags:         []string{},
	}
	totalMinutes := 0
	hasDuration := false
	for _, m := range modules {
		meta.TotalLessons += len(m.Lessons)
		for _, l := range m.Lessons {
			if l.DurationMinutes != nil {
				totalMinutes += *l.DurationMinutes
				hasDuration = true
			}
		}
	}
	if hasDuration {
		hours := float64(totalMinutes) / 60.0
		meta.TotalDurationHours = &hours
	}
	return meta
}
