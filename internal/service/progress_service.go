// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
	"smartcourse/internal/repository"

	"gorm.io/gorm"
)

type ProgressService interface {
	MarkCompleted(ctx context.Context, actor model.Actor, req *model.MarkCompletedRequest) (*model.CourseProgressSummary, error)
	GetCourseProgress(ctx context.Context, actor model.Actor, userID, courseID uint) (*model.CourseProgressSummary, error)
	ResetProgress(ctx context.Context, actor model.Actor, userID, courseID uint) error
}

type progressService struct {
	db             *gorm.DB
	progressRepo   repository.ProgressRepository
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	certRepo       repository.CertificateRepository
	contentService ContentService
	notifier       Notifier
}

func NewProgressService(
	db *gorm.DB,
	progressRepo repository.ProgressRepository,
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	certRepo repository.CertificateRepository,
	contentService ContentService,
	notifier Notifier,
) ProgressService {
	return &progressService{
		db:             db,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		certRepo:       certRepo,
		contentService: contentService,
		notifier:       notifier,
	}
}

// MarkCompleted はコンテンツ1件の完了を記録し、最新の進捗集計を返します。
// 同じアイテムを何度マークしても結果は変わらない (冪等)。
// 進捗が100%に達したら受講登録を自動的に修了へ遷移させる。
func (s *progressService) MarkCompleted(ctx context.Context, actor model.Actor, req *model.MarkCompletedRequest) (*model.CourseProgressSummary, error) {
	logger := middleware.GetLogger(ctx)

	// 1. 受講登録の確認。退会・停止中はマークできない。
	enrollment, err := s.enrollmentRepo.FindByStudentAndCourse(ctx, s.db, actor.UserID, req.CourseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("FORBIDDEN", "このコースに登録されていません", "course_id", model.ErrForbidden)
		}
		return nil, model.ErrInternalServer
	}
	if enrollment.Status == model.EnrollmentStatusDropped || enrollment.Status == model.EnrollmentStatusSuspended {
		return nil, model.NewAppError("FORBIDDEN", "受講状態が有効ではありません", "course_id", model.ErrForbidden)
	}

	// 2. アイテムがコンテンツツリー上に存在し有効であることを確認
	content, err := s.contentService.GetContent(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "コースにコンテンツがありません", "course_id", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	if !itemIsActive(content, req.ItemType, req.ItemID) {
		return nil, model.NewAppError("NOT_FOUND", "指定されたアイテムが見つかりません", "item_id", model.ErrNotFound)
	}

	// 3. 完了マークを冪等に記録し、最終アクセス日時を更新
	now := time.Now()
	var created bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := &model.Progress{
			UserID:      actor.UserID,
			CourseID:    req.CourseID,
			ItemType:    req.ItemType,
			ItemID:      req.ItemID,
			CompletedAt: now,
		}
		_, wasCreated, err := s.progressRepo.InsertIfAbsent(ctx, tx, progress)
		if err != nil {
			return model.ErrInternalServer
		}
		created = wasCreated

		updates := map[string]interface{}{"last_accessed_at": now}
		if enrollment.StartedAt == nil {
			updates["started_at"] = now
		}
		if err := s.enrollmentRepo.Update(ctx, tx, enrollment.ID, updates); err != nil {
			return model.ErrInternalServer
		}
		return nil
	})
	if err != nil {
		logger.Error("Transaction failed for MarkCompleted", "error", err,
			"user_id", actor.UserID, "item_type", req.ItemType, "item_id", req.ItemID)
		return nil, model.ErrInternalServer
	}
	if created {
		logger.Info("Progress recorded",
			"user_id", actor.UserID,
			"course_id", req.CourseID,
			"item_type", req.ItemType,
			"item_id", req.ItemID,
		)
	}

	// 4. 集計し直し、100%到達なら修了へ自動遷移
	summary, err := s.summarize(ctx, actor.UserID, req.CourseID, enrollment, content)
	if err != nil {
		return nil, err
	}
	if summary.CompletionPercentage >= 100 && enrollment.Status == model.EnrollmentStatusActive {
		if err := s.completeEnrollment(ctx, enrollment); err != nil {
			// 自動修了の失敗は次回のマークで再試行されるため、集計結果は返す
			logger.Error("Failed to auto-complete enrollment", "error", err, "enrollment_id", enrollment.ID)
		} else {
			course, err := s.courseRepo.FindByID(ctx, s.db, req.CourseID)
			if err == nil {
				s.notifier.CourseCompleted(ctx, actor.UserID, course)
			}
			summary.IsComplete = true
		}
	}
	return summary, nil
}

// completeEnrollment は受講登録を修了状態へ遷移させます。
// completed_at は最初の遷移時に一度だけ設定される。
func (s *progressService) completeEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.enrollmentRepo.FindByID(ctx, tx, enrollment.ID)
		if err != nil {
			return err
		}
		if current.Status == model.EnrollmentStatusCompleted {
			return nil
		}
		updates := map[string]interface{}{
			"status":       model.EnrollmentStatusCompleted,
			"completed_at": time.Now(),
		}
		return s.enrollmentRepo.Update(ctx, tx, enrollment.ID, updates)
	})
}

func (s *progressService) GetCourseProgress(ctx context.Context, actor model.Actor, userID, courseID uint) (*model.CourseProgressSummary, error) {
	if userID != actor.UserID && !actor.IsPrivileged() {
		return nil, model.ErrForbidden
	}

	enrollment, err := s.enrollmentRepo.FindByStudentAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "受講登録が見つかりません", "course_id", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}

	content, err := s.contentService.GetContent(ctx, courseID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInternalServer
	}

	return s.summarize(ctx, userID, courseID, enrollment, content)
}

// ResetProgress は進捗を全削除します。修了済みの登録は有効状態に戻す。
// 管理者専用の救済操作。
func (s *progressService) ResetProgress(ctx context.Context, actor model.Actor, userID, courseID uint) error {
	logger := middleware.GetLogger(ctx)

	if actor.Role != model.RoleAdmin {
		return model.ErrForbidden
	}

	enrollment, err := s.enrollmentRepo.FindByStudentAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := s.progressRepo.DeleteByUserAndCourse(ctx, tx, userID, courseID)
		if err != nil {
			return model.ErrInternalServer
		}
		logger.Info("Progress reset", "user_id", userID, "course_id", courseID, "deleted", deleted)

		if enrollment.Status == model.EnrollmentStatusCompleted {
			updates := map[string]interface{}{
				"status":       model.EnrollmentStatusActive,
				"completed_at": nil,
			}
			if err := s.enrollmentRepo.Update(ctx, tx, enrollment.ID, updates); err != nil {
				return model.ErrInternalServer
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Transaction failed for ResetProgress", "error", err, "user_id", userID, "course_id", courseID)
		return model.ErrInternalServer
	}
	return nil
}

// summarize は進捗集計を行います。分母はコンテンツツリーの有効アイテム数を
// その都度数え直す。無効化されたアイテムの完了記録は行として残るが
// 集計には含めない (コンテンツ構成の変更が進捗率に即時反映される)。
func (s *progressService) summarize(ctx context.Context, userID, courseID uint, enrollment *model.Enrollment, content *model.CourseContent) (*model.CourseProgressSummary, error) {
	logger := middleware.GetLogger(ctx)

	var items []model.ContentItemRef
	if content != nil {
		items = content.ActiveItems()
	}

	records, err := s.progressRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		logger.Error("Error loading progress records", "error", err, "user_id", userID, "course_id", courseID)
		return nil, model.ErrInternalServer
	}

	done := make(map[model.ContentItemRef]bool, len(records))
	for _, rec := range records {
		done[model.ContentItemRef{Type: rec.ItemType, ID: rec.ItemID}] = true
	}

	summary := &model.CourseProgressSummary{
		CourseID:           courseID,
		UserID:             userID,
		TotalItems:         len(items),
		CompletedLessons:   []string{},
		CompletedQuizzes:   []string{},
		CompletedSummaries: []string{},
	}
	for _, item := range items {
		if !done[item] {
			continue
		}
		summary.CompletedItems++
		switch item.Type {
		case model.ItemTypeLesson:
			summary.CompletedLessons = append(summary.CompletedLessons, item.ID)
		case model.ItemTypeQuiz:
			summary.CompletedQuizzes = append(summary.CompletedQuizzes, item.ID)
		case model.ItemTypeSummary:
			summary.CompletedSummaries = append(summary.CompletedSummaries, item.ID)
		}
	}

	// アイテムが1件もないコースの進捗率は0 (ゼロ除算を避ける)
	if summary.TotalItems > 0 {
		pct := float64(summary.CompletedItems) / float64(summary.TotalItems) * 100
		summary.CompletionPercentage = math.Round(pct*100) / 100
	}
	summary.IsComplete = summary.TotalItems > 0 && summary.CompletedItems == summary.TotalItems

	// 失効済みの修了証は保有扱いにしない
	if cert, err := s.certRepo.FindByEnrollment(ctx, s.db, enrollment.ID); err == nil {
		summary.HasCertificate = !cert.IsRevoked
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInternalServer
	}

	return summary, nil
}

// itemIsActive は (種別, ID) が有効アイテムとして存在するかを調べます
func itemIsActive(content *model.CourseContent, itemType, itemID string) bool {
	for _, item := range content.ActiveItems() {
		if item.Type == itemType && item.ID == itemID {
			return true
		}
	}
	return false
}
