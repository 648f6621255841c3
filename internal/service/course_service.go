//go:generate mockery --name CourseService --structname MockCourseService --output ./mocks --outpkg mocks --case=underscore
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

	"gorm.io/gorm"
)

type CourseService interface {
	CreateCourse(ctx context.Context, actor model.Actor, req *model.CreateCourseRequest) (*model.Course, error)
	GetCourse(ctx context.Context, courseID uint) (*model.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*model.Course, error)
	ListPublished(ctx context.Context, skip, limit int) (*model.CoursePage, error)
	ListByInstructor(ctx context.Context, actor model.Actor, instructorID uint, skip, limit int) (*model.CoursePage, error)
	UpdateCourse(ctx context.Context, actor model.Actor, courseID uint, req *model.UpdateCourseRequest) (*model.Course, error)
	UpdateStatus(ctx context.Context, actor model.Actor, courseID uint, req *model.UpdateCourseStatusRequest) (*model.Course, error)
	DeleteCourse(ctx context.Context, actor model.Actor, courseID uint) error
}

type courseService struct {
	db         *gorm.DB // トランザクション用にDB接続を持つ
	courseRepo repository.CourseRepository
	cache      *cache.Client
}

func NewCourseService(db *gorm.DB, courseRepo repository.CourseRepository, cacheClient *cache.Client) CourseService {
	return &courseService{
		db:         db,
		courseRepo: courseRepo,
		cache:      cacheClient,
	}
}

// canManage はコースの変更権限を判定します。
// 所有する講師と管理者のみ。管理者は他人のコースも触れる。
func canManage(actor model.Actor, course *model.Course) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.Role == model.RoleInstructor && course.InstructorID == actor.UserID
}

func (s *courseService) CreateCourse(ctx context.Context, actor model.Actor, req *model.CreateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	var created *model.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. スラッグの重複チェック
		exists, err := s.courseRepo.SlugExists(ctx, tx, req.Slug, nil)
		if err != nil {
			return model.ErrInternalServer
		}
		if exists {
			return model.NewAppError("CONFLICT", "このスラッグは既に使用されています", "slug", model.ErrConflict)
		}

		// 2. コースを作成 (常にdraftで開始)
		course := &model.Course{
			Title:           req.Title,
			Slug:            req.Slug,
			Description:     req.Description,
			LongDescription: req.LongDescription,
			InstructorID:    actor.UserID,
			Category:        req.Category,
			Level:           req.Level,
			Language:        req.Language,
			DurationHours:   req.DurationHours,
			Price:           req.Price,
			Currency:        req.Currency,
			ThumbnailURL:    req.ThumbnailURL,
			Status:          model.CourseStatusDraft,
			MaxStudents:     req.MaxStudents,
			Prerequisites:   req.Prerequisites,
		}
		if course.Language == "" {
			course.Language = "en"
		}
		if course.Currency == "" {
			course.Currency = "USD"
		}
		if err := s.courseRepo.Create(ctx, tx, course); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "このスラッグは既に使用されています", "slug", err)
			}
			return model.ErrInternalServer
		}
		created = course
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrConflict) {
			return nil, err
		}
		logger.Error("Transaction failed for CreateCourse", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Course created", "course_id", created.ID, "slug", created.Slug, "instructor_id", actor.UserID)
	return created, nil
}

// GetCourse はキャッシュ経由でコース詳細を取得します。
// ミス時はDBから読んでTTL付きで格納する。存在しないコースは
// キャッシュしない (削除直後の誤ったヒットを避ける)。
func (s *courseService) GetCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	key := cache.CourseDetailKey(courseID)

	var cached model.Course
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, course, config.CourseDetailTTL)
	return course, nil
}

// GetCourseBySlug はスラッグでコース詳細を取得します。
// スラッグはIDで引けるようになるまでの入口に過ぎないので、
// 詳細キャッシュ (IDキー) のみ温めてスラッグ側のキーは持たない。
func (s *courseService) GetCourseBySlug(ctx context.Context, slug string) (*model.Course, error) {
	course, err := s.courseRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cache.CourseDetailKey(course.ID), course, config.CourseDetailTTL)
	return course, nil
}

// ListPublished は公開コース一覧をページ単位でキャッシュして返します。
// ページと総件数は同一エントリに格納する。
func (s *courseService) ListPublished(ctx context.Context, skip, limit int) (*model.CoursePage, error) {
	logger := middleware.GetLogger(ctx)
	key := cache.PublishedListKey(skip, limit)

	var cached model.CoursePage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	courses, err := s.courseRepo.FindPublished(ctx, s.db, skip, limit)
	if err != nil {
		logger.Error("Error listing published courses", "error", err)
		return nil, model.ErrInternalServer
	}
	total, err := s.courseRepo.CountPublished(ctx, s.db)
	if err != nil {
		logger.Error("Error counting published courses", "error", err)
		return nil, model.ErrInternalServer
	}

	if courses == nil {
		courses = []model.Course{}
	}
	page := &model.CoursePage{Items: courses, Total: total, Skip: skip, Limit: limit}
	s.cache.Set(ctx, key, page, config.PublishedListTTL)
	return page, nil
}

func (s *courseService) ListByInstructor(ctx context.Context, actor model.Actor, instructorID uint, skip, limit int) (*model.CoursePage, error) {
	logger := middleware.GetLogger(ctx)

	// 講師本人と管理者だけが下書きを含む一覧を見られる
	if actor.Role != model.RoleAdmin && actor.UserID != instructorID {
		return nil, model.ErrForbidden
	}

	courses, err := s.courseRepo.FindByInstructor(ctx, s.db, instructorID, skip, limit)
	if err != nil {
		logger.Error("Error listing courses by instructor", "error", err, "instructor_id", instructorID)
		return nil, model.ErrInternalServer
	}
	total, err := s.courseRepo.CountByInstructor(ctx, s.db, instructorID)
	if err != nil {
		logger.Error("Error counting courses by instructor", "error", err, "instructor_id", instructorID)
		return nil, model.ErrInternalServer
	}

	if courses == nil {
		courses = []model.Course{}
	}
	return &model.CoursePage{Items: courses, Total: total, Skip: skip, Limit: limit}, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, actor model.Actor, courseID uint, req *model.UpdateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	var updated *model.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			return err
		}
		if !canManage(actor, course) {
			return model.ErrForbidden
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.LongDescription != nil {
			updates["long_description"] = *req.LongDescription
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.Level != nil {
			updates["level"] = *req.Level
		}
		if req.Language != nil {
			updates["language"] = *req.Language
		}
		if req.DurationHours != nil {
			updates["duration_hours"] = *req.DurationHours
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.ThumbnailURL != nil {
			updates["thumbnail_url"] = *req.ThumbnailURL
		}
		if req.MaxStudents != nil {
			updates["max_students"] = *req.MaxStudents
		}
		if req.Prerequisites != nil {
			updates["prerequisites"] = *req.Prerequisites
		}
		if len(updates) == 0 {
			updated = course
			return nil
		}

		if err := s.courseRepo.Update(ctx, tx, courseID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
				return err
			}
			return model.ErrInternalServer
		}

		updated, err = s.courseRepo.FindByID(ctx, tx, courseID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrForbidden) || errors.Is(err, model.ErrConflict) {
			return nil, err
		}
		logger.Error("Transaction failed for UpdateCourse", "error", err, "course_id", courseID)
		return nil, model.ErrInternalServer
	}

	// 書き込み成功後に失効。詳細キーと、公開情報が変わった可能性のある一覧ページを消す。
	s.invalidateCourse(ctx, courseID)
	return updated, nil
}

func (s *courseService) UpdateStatus(ctx context.Context, actor model.Actor, courseID uint, req *model.UpdateCourseStatusRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	var updated *model.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			return err
		}
		if !canManage(actor, course) {
			return model.ErrForbidden
		}
		if course.Status == req.Status {
			updated = course
			return nil
		}

		updates := map[string]interface{}{"status": req.Status}
		// 初回公開時のみ公開日時を記録する。再公開では塗り替えない。
		if req.Status == model.CourseStatusPublished && course.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
		if err := s.courseRepo.Update(ctx, tx, courseID, updates); err != nil {
			return model.ErrInternalServer
		}

		updated, err = s.courseRepo.FindByID(ctx, tx, courseID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrForbidden) {
			return nil, err
		}
		logger.Error("Transaction failed for UpdateStatus", "error", err, "course_id", courseID)
		return nil, model.ErrInternalServer
	}

	s.invalidateCourse(ctx, courseID)
	logger.Info("Course status updated", "course_id", courseID, "status", updated.Status)
	return updated, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, actor model.Actor, courseID uint) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			return err
		}
		if !canManage(actor, course) {
			return model.ErrForbidden
		}
		return s.courseRepo.SoftDelete(ctx, tx, courseID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrForbidden) {
			return err
		}
		logger.Error("Transaction failed for DeleteCourse", "error", err, "course_id", courseID)
		return model.ErrInternalServer
	}

	s.invalidateCourse(ctx, courseID)
	// 受講者数キャッシュも無意味になるので消しておく
	s.cache.Delete(ctx, cache.EnrollmentCountKey(courseID))
	logger.Info("Course deleted", "course_id", courseID)
	return nil
}

// invalidateCourse はコース変更時の標準的な失効セットです。
// 詳細キーの削除と公開一覧全ページのパターン削除を行う。
func (s *courseService) invalidateCourse(ctx context.Context, courseID uint) {
	s.cache.Delete(ctx, cache.CourseDetailKey(courseID))
	s.cache.DeletePattern(ctx, cache.PublishedListPattern)
}
