// internal/service/enrollment_service.go
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

type EnrollmentService interface {
	Enroll(ctx context.Context, actor model.Actor, req *model.EnrollRequest) (*model.Enrollment, error)
	GetEnrollment(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Enrollment, error)
	ListByStudent(ctx context.Context, actor model.Actor, studentID uint, skip, limit int) (*model.EnrollmentPage, error)
	ListByCourse(ctx context.Context, actor model.Actor, courseID uint, skip, limit int) (*model.EnrollmentPage, error)
	Drop(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Enrollment, error)
	Undrop(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Enrollment, error)
	IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error)
	EnrollmentCount(ctx context.Context, courseID uint) (int64, error)
}

type enrollmentService struct {
	db             *gorm.DB
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	cache          *cache.Client
}

func NewEnrollmentService(db *gorm.DB, enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository, cacheClient *cache.Client) EnrollmentService {
	return &enrollmentService{
		db:             db,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		cache:          cacheClient,
	}
}

// Enroll は受講登録を行います。公開中のコースにのみ登録でき、
// 定員 (max_students) があれば在籍数でチェックする。
// 退会済みの登録が残っている場合は新規作成ではなく再開扱いにする。
func (s *enrollmentService) Enroll(ctx context.Context, actor model.Actor, req *model.EnrollRequest) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)

	var enrollment *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. コースの存在と公開状態を確認
		course, err := s.courseRepo.FindByID(ctx, tx, req.CourseID)
		if err != nil {
			return err
		}
		if course.Status != model.CourseStatusPublished {
			return model.NewAppError("INVALID_INPUT", "公開中のコースではありません", "course_id", model.ErrInvalidInput)
		}

		// 2. 既存の登録行を確認
		existing, err := s.enrollmentRepo.FindByStudentAndCourse(ctx, tx, actor.UserID, req.CourseID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.ErrInternalServer
		}
		if existing != nil {
			if existing.Status != model.EnrollmentStatusDropped {
				return model.NewAppError("CONFLICT", "既にこのコースに登録済みです", "course_id", model.ErrConflict)
			}
			// 退会済みの再開。定員チェックを通ってから active に戻す。
			if err := s.checkCapacity(ctx, tx, course); err != nil {
				return err
			}
			updates := map[string]interface{}{
				"status":     model.EnrollmentStatusActive,
				"dropped_at": nil,
			}
			if err := s.enrollmentRepo.Update(ctx, tx, existing.ID, updates); err != nil {
				return model.ErrInternalServer
			}
			enrollment, err = s.enrollmentRepo.FindByID(ctx, tx, existing.ID)
			return err
		}

		// 3. 定員チェック
		if err := s.checkCapacity(ctx, tx, course); err != nil {
			return err
		}

		// 4. 登録を作成。並行登録はユニーク制約が最終的に防ぐ。
		e := &model.Enrollment{
			StudentID:        actor.UserID,
			CourseID:         req.CourseID,
			Status:           model.EnrollmentStatusActive,
			EnrolledAt:       time.Now(),
			PaymentAmount:    req.PaymentAmount,
			EnrollmentSource: req.EnrollmentSource,
		}
		if req.PaymentAmount != nil {
			e.PaymentStatus = "completed"
		}
		if err := s.enrollmentRepo.Create(ctx, tx, e); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "既にこのコースに登録済みです", "course_id", err)
			}
			return model.ErrInternalServer
		}
		enrollment = e
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) ||
			errors.Is(err, model.ErrNotFound) ||
			errors.Is(err, model.ErrConflict) ||
			errors.Is(err, model.ErrInvalidInput) {
			return nil, err
		}
		logger.Error("Transaction failed for Enroll", "error", err, "course_id", req.CourseID)
		return nil, model.ErrInternalServer
	}

	// 受講フラグは即座に true を立て、受講者数は失効させて次の読みで作り直す
	s.cache.Set(ctx, cache.EnrolledKey(actor.UserID, req.CourseID), true, config.EnrollmentFlagTTL)
	s.cache.Delete(ctx, cache.EnrollmentCountKey(req.CourseID))
	logger.Info("Student enrolled", "student_id", actor.UserID, "course_id", req.CourseID, "enrollment_id", enrollment.ID)
	return enrollment, nil
}

// checkCapacity は定員の空きを確認します。受講者数はキャッシュ経由で読む。
// 概算での事前チェックに過ぎず、並行登録の最終的な番人はDBのユニーク制約。
func (s *enrollmentService) checkCapacity(ctx context.Context, tx *gorm.DB, course *model.Course) error {
	if course.MaxStudents == nil {
		return nil
	}
	count, err := s.cachedEnrollmentCount(ctx, tx, course.ID)
	if err != nil {
		return model.ErrInternalServer
	}
	if count >= int64(*course.MaxStudents) {
		return model.NewAppError("CONFLICT", "このコースは満員です", "course_id", model.ErrConflict)
	}
	return nil
}

// cachedEnrollmentCount は受講登録総数をキャッシュ経由で返します。
// ミス時はDBから数えてTTL付きで格納する。
func (s *enrollmentService) cachedEnrollmentCount(ctx context.Context, db *gorm.DB, courseID uint) (int64, error) {
	key := cache.EnrollmentCountKey(courseID)

	var cached int64
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	count, err := s.enrollmentRepo.CountByCourse(ctx, db, courseID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, key, count, config.EnrollmentCountTTL)
	return count, nil
}

func (s *enrollmentService) GetEnrollment(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByID(ctx, s.db, enrollmentID)
	if err != nil {
		return nil, err
	}
	// 本人か講師・管理者のみ閲覧可
	if enrollment.StudentID != actor.UserID && !actor.IsPrivileged() {
		return nil, model.ErrForbidden
	}
	return enrollment, nil
}

func (s *enrollmentService) ListByStudent(ctx context.Context, actor model.Actor, studentID uint, skip, limit int) (*model.EnrollmentPage, error) {
	logger := middleware.GetLogger(ctx)

	if studentID != actor.UserID && !actor.IsPrivileged() {
		return nil, model.ErrForbidden
	}

	enrollments, err := s.enrollmentRepo.FindByStudent(ctx, s.db, studentID, skip, limit)
	if err != nil {
		logger.Error("Error listing enrollments by student", "error", err, "student_id", studentID)
		return nil, model.ErrInternalServer
	}
	total, err := s.enrollmentRepo.CountByStudent(ctx, s.db, studentID)
	if err != nil {
		logger.Error("Error counting enrollments by student", "error", err, "student_id", studentID)
		return nil, model.ErrInternalServer
	}

	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return &model.EnrollmentPage{Items: enrollments, Total: total, Skip: skip, Limit: limit}, nil
}

func (s *enrollmentService) ListByCourse(ctx context.Context, actor model.Actor, courseID uint, skip, limit int) (*model.EnrollmentPage, error) {
	logger := middleware.GetLogger(ctx)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, course) {
		return nil, model.ErrForbidden
	}

	enrollments, err := s.enrollmentRepo.FindByCourse(ctx, s.db, courseID, skip, limit)
	if err != nil {
		logger.Error("Error listing enrollments by course", "error", err, "course_id", courseID)
		return nil, model.ErrInternalServer
	}
	total, err := s.enrollmentRepo.CountByCourse(ctx, s.db, courseID)
	if err != nil {
		logger.Error("Error counting enrollments by course", "error", err, "course_id", courseID)
		return nil, model.ErrInternalServer
	}

	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	return &model.EnrollmentPage{Items: enrollments, Total: total, Skip: skip, Limit: limit}, nil
}

// Drop は受講を退会扱いにします。修了済みの登録は退会できない。
func (s *enrollmentService) Drop(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)

	var dropped *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.enrollmentRepo.FindByID(ctx, tx, enrollmentID)
		if err != nil {
			return err
		}
		if enrollment.StudentID != actor.UserID && actor.Role != model.RoleAdmin {
			return model.ErrForbidden
		}
		switch enrollment.Status {
		case model.EnrollmentStatusDropped:
			return model.NewAppError("CONFLICT", "既に退会済みです", "", model.ErrConflict)
		case model.EnrollmentStatusCompleted:
			return model.NewAppError("CONFLICT", "修了済みの受講は退会できません", "", model.ErrConflict)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     model.EnrollmentStatusDropped,
			"dropped_at": now,
		}
		if err := s.enrollmentRepo.Update(ctx, tx, enrollmentID, updates); err != nil {
			return model.ErrInternalServer
		}
		dropped, err = s.enrollmentRepo.FindByID(ctx, tx, enrollmentID)
		return err
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) ||
			errors.Is(err, model.ErrNotFound) ||
			errors.Is(err, model.ErrForbidden) {
			return nil, err
		}
		logger.Error("Transaction failed for Drop", "error", err, "enrollment_id", enrollmentID)
		return nil, model.ErrInternalServer
	}

	s.cache.Delete(ctx,
		cache.EnrolledKey(dropped.StudentID, dropped.CourseID),
		cache.EnrollmentCountKey(dropped.CourseID),
	)
	logger.Info("Enrollment dropped", "enrollment_id", enrollmentID, "student_id", dropped.StudentID)
	return dropped, nil
}

// Undrop は退会済みの受講を再開します。退会状態でなければ再開できず、
// 再開時は Enroll と同じ公開状態・定員チェックをやり直す。
func (s *enrollmentService) Undrop(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)

	var restored *model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.enrollmentRepo.FindByID(ctx, tx, enrollmentID)
		if err != nil {
			return err
		}
		if enrollment.StudentID != actor.UserID && actor.Role != model.RoleAdmin {
			return model.ErrForbidden
		}
		if enrollment.Status != model.EnrollmentStatusDropped {
			return model.NewAppError("CONFLICT", "退会済みの受講ではありません", "", model.ErrConflict)
		}

		course, err := s.courseRepo.FindByID(ctx, tx, enrollment.CourseID)
		if err != nil {
			return err
		}
		if course.Status != model.CourseStatusPublished {
			return model.NewAppError("INVALID_INPUT", "公開中のコースではありません", "course_id", model.ErrInvalidInput)
		}
		if err := s.checkCapacity(ctx, tx, course); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     model.EnrollmentStatusActive,
			"dropped_at": nil,
		}
		if err := s.enrollmentRepo.Update(ctx, tx, enrollmentID, updates); err != nil {
			return model.ErrInternalServer
		}
		restored, err = s.enrollmentRepo.FindByID(ctx, tx, enrollmentID)
		return err
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) ||
			errors.Is(err, model.ErrNotFound) ||
			errors.Is(err, model.ErrForbidden) {
			return nil, err
		}
		logger.Error("Transaction failed for Undrop", "error", err, "enrollment_id", enrollmentID)
		return nil, model.ErrInternalServer
	}

	s.cache.Set(ctx, cache.EnrolledKey(restored.StudentID, restored.CourseID), true, config.EnrollmentFlagTTL)
	s.cache.Delete(ctx, cache.EnrollmentCountKey(restored.CourseID))
	logger.Info("Enrollment restored", "enrollment_id", enrollmentID, "student_id", restored.StudentID)
	return restored, nil
}

// IsEnrolled は受講済みフラグをキャッシュ経由で返します。
// 真の場合のみキャッシュする。偽をキャッシュすると登録直後の
// 判定がTTLの間ずれたままになるため、偽は毎回DBに聞く。
func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error) {
	key := cache.EnrolledKey(studentID, courseID)

	var flag bool
	if s.cache.Get(ctx, key, &flag) && flag {
		return true, nil
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, s.db, studentID, courseID)
	if err != nil {
		return false, model.ErrInternalServer
	}
	if enrolled {
		s.cache.Set(ctx, key, true, config.EnrollmentFlagTTL)
	}
	return enrolled, nil
}

// EnrollmentCount はコースの受講登録総数をキャッシュ経由で返します
func (s *enrollmentService) EnrollmentCount(ctx context.Context, courseID uint) (int64, error) {
	count, err := s.cachedEnrollmentCount(ctx, s.db, courseID)
	if err != nil {
		return 0, model.ErrInternalServer
	}
	return count, nil
}
