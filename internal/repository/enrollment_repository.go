//go:generate mockery --name EnrollmentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"

	"gorm.io/gorm"
)

// EnrollmentRepository は受講登録テーブルへの読み書きを担います。
// (student_id, course_id) の一意制約により一学生一登録を保証する。
type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment) error
	FindByID(ctx context.Context, db *gorm.DB, enrollmentID uint) (*model.Enrollment, error)
	FindByStudentAndCourse(ctx context.Context, db *gorm.DB, studentID, courseID uint) (*model.Enrollment, error)
	IsEnrolled(ctx context.Context, db *gorm.DB, studentID, courseID uint) (bool, error)
	FindByStudent(ctx context.Context, db *gorm.DB, studentID uint, skip, limit int) ([]model.Enrollment, error)
	CountByStudent(ctx context.Context, db *gorm.DB, studentID uint) (int64, error)
	FindByCourse(ctx context.Context, db *gorm.DB, courseID uint, skip, limit int) ([]model.Enrollment, error)
	CountByCourse(ctx context.Context, db *gorm.DB, courseID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, enrollmentID uint, updates map[string]interface{}) error
}

type gormEnrollmentRepository struct{}

func NewGormEnrollmentRepository() EnrollmentRepository {
	return &gormEnrollmentRepository{}
}

func (r *gormEnrollmentRepository) Create(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate enrollment on create",
				"student_id", enrollment.StudentID,
				"course_id", enrollment.CourseID,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating enrollment in DB",
			"error", result.Error,
			"student_id", enrollment.StudentID,
			"course_id", enrollment.CourseID,
		)
		return fmt.Errorf("gormEnrollmentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) FindByID(ctx context.Context, db *gorm.DB, enrollmentID uint) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollment model.Enrollment
	result := db.WithContext(ctx).Where("id = ?", enrollmentID).First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding enrollment by ID in DB",
			"error", result.Error,
			"enrollment_id", enrollmentID,
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByID: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *gormEnrollmentRepository) FindByStudentAndCourse(ctx context.Context, db *gorm.DB, studentID, courseID uint) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollment model.Enrollment
	result := db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding enrollment by student/course in DB",
			"error", result.Error,
			"student_id", studentID,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByStudentAndCourse: %w", result.Error)
	}
	return &enrollment, nil
}

// IsEnrolled はステータスを問わず登録行が存在するかを返します。
// 退会済みでも行は残る。再開は登録のステータス更新で行う。
func (r *gormEnrollmentRepository) IsEnrolled(ctx context.Context, db *gorm.DB, studentID, courseID uint) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking enrollment existence in DB",
			"error", result.Error,
			"student_id", studentID,
			"course_id", courseID,
		)
		return false, fmt.Errorf("gormEnrollmentRepository.IsEnrolled: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormEnrollmentRepository) FindByStudent(ctx context.Context, db *gorm.DB, studentID uint, skip, limit int) ([]model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollments []model.Enrollment
	result := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("enrolled_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&enrollments)
	if result.Error != nil {
		logger.Error("Error finding enrollments by student in DB",
			"error", result.Error,
			"student_id", studentID,
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByStudent: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormEnrollmentRepository) CountByStudent(ctx context.Context, db *gorm.DB, studentID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("student_id = ?", studentID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting enrollments by student in DB",
			"error", result.Error,
			"student_id", studentID,
		)
		return 0, fmt.Errorf("gormEnrollmentRepository.CountByStudent: %w", result.Error)
	}
	return count, nil
}

func (r *gormEnrollmentRepository) FindByCourse(ctx context.Context, db *gorm.DB, courseID uint, skip, limit int) ([]model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollments []model.Enrollment
	result := db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("enrolled_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&enrollments)
	if result.Error != nil {
		logger.Error("Error finding enrollments by course in DB",
			"error", result.Error,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByCourse: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormEnrollmentRepository) CountByCourse(ctx context.Context, db *gorm.DB, courseID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting enrollments by course in DB",
			"error", result.Error,
			"course_id", courseID,
		)
		return 0, fmt.Errorf("gormEnrollmentRepository.CountByCourse: %w", result.Error)
	}
	return count, nil
}


func (r *gormEnrollmentRepository) Update(ctx context.Context, tx *gorm.DB, enrollmentID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating enrollment in DB",
			"error", result.Error,
			"enrollment_id", enrollmentID,
		)
		return fmt.Errorf("gormEnrollmentRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
