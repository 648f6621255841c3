//go:generate mockery --name CourseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CourseRepository はコーステーブルへの読み書きを担います。
// 論理削除済みのコースはすべての検索から除外される。
type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Course, error)
	SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeCourseID *uint) (bool, error)
	FindPublished(ctx context.Context, db *gorm.DB, skip, limit int) ([]model.Course, error)
	CountPublished(ctx context.Context, db *gorm.DB) (int64, error)
	FindByInstructor(ctx context.Context, db *gorm.DB, instructorID uint, skip, limit int) ([]model.Course, error)
	CountByInstructor(ctx context.Context, db *gorm.DB, instructorID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, courseID uint, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, tx *gorm.DB, courseID uint) error
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

// isDuplicateKey は一意制約違反かどうかを判定します。
// TranslateError有効時は gorm.ErrDuplicatedKey、無効時や
// ドライバ直のエラーは pgconn のSQLSTATE 23505 で拾う。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *gormCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(course)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate slug on create course", "slug", course.Slug)
			return model.ErrConflict
		}
		logger.Error("Error creating course in DB",
			"error", result.Error,
			"slug", course.Slug,
		)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, courseID uint) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).Where("id = ? AND is_deleted = ?", courseID, false).First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by ID in DB",
			"error", result.Error,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).Where("slug = ? AND is_deleted = ?", slug, false).First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by slug in DB",
			"error", result.Error,
			"slug", slug,
		)
		return nil, fmt.Errorf("gormCourseRepository.FindBySlug: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeCourseID *uint) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Course{}).Where("slug = ?", slug)
	if excludeCourseID != nil {
		query = query.Where("id != ?", *excludeCourseID)
	}
	if result := query.Count(&count); result.Error != nil {
		logger.Error("Error checking slug existence in DB",
			"error", result.Error,
			"slug", slug,
		)
		return false, fmt.Errorf("gormCourseRepository.SlugExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormCourseRepository) FindPublished(ctx context.Context, db *gorm.DB, skip, limit int) ([]model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []model.Course
	result := db.WithContext(ctx).
		Where("status = ? AND is_deleted = ?", model.CourseStatusPublished, false).
		Order("published_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&courses)
	if result.Error != nil {
		logger.Error("Error finding published courses in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCourseRepository.FindPublished: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) CountPublished(ctx context.Context, db *gorm.DB) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Course{}).
		Where("status = ? AND is_deleted = ?", model.CourseStatusPublished, false).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting published courses in DB", "error", result.Error)
		return 0, fmt.Errorf("gormCourseRepository.CountPublished: %w", result.Error)
	}
	return count, nil
}

func (r *gormCourseRepository) FindByInstructor(ctx context.Context, db *gorm.DB, instructorID uint, skip, limit int) ([]model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []model.Course
	result := db.WithContext(ctx).
		Where("instructor_id = ? AND is_deleted = ?", instructorID, false).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&courses)
	if result.Error != nil {
		logger.Error("Error finding courses by instructor in DB",
			"error", result.Error,
			"instructor_id", instructorID,
		)
		return nil, fmt.Errorf("gormCourseRepository.FindByInstructor: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) CountByInstructor(ctx context.Context, db *gorm.DB, instructorID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Course{}).
		Where("instructor_id = ? AND is_deleted = ?", instructorID, false).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting courses by instructor in DB",
			"error", result.Error,
			"instructor_id", instructorID,
		)
		return 0, fmt.Errorf("gormCourseRepository.CountByInstructor: %w", result.Error)
	}
	return count, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, tx *gorm.DB, courseID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Course{}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		Updates(updates)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error updating course in DB",
			"error", result.Error,
			"course_id", courseID,
		)
		return fmt.Errorf("gormCourseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) SoftDelete(ctx context.Context, tx *gorm.DB, courseID uint) error {
	// 物理削除はしない。進捗・修了証からの参照を保つ。
	return r.Update(ctx, tx, courseID, map[string]interface{}{"is_deleted": true})
}
