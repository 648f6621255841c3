//go:generate mockery --name CertificateRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"

	"gorm.io/gorm"
)

// CertificateRepository は修了証テーブルへの読み書きを担います。
// enrollment_id の一意制約で一登録一修了証を保証する。
type CertificateRepository interface {
	Create(ctx context.Context, tx *gorm.DB, certificate *model.Certificate) error
	FindByID(ctx context.Context, db *gorm.DB, certificateID uint) (*model.Certificate, error)
	FindByEnrollment(ctx context.Context, db *gorm.DB, enrollmentID uint) (*model.Certificate, error)
	FindByVerificationCode(ctx context.Context, db *gorm.DB, code string) (*model.Certificate, error)
	FindByStudent(ctx context.Context, db *gorm.DB, studentID uint, skip, limit int) ([]model.Certificate, error)
	CountByStudent(ctx context.Context, db *gorm.DB, studentID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, certificateID uint, updates map[string]interface{}) error
}

type gormCertificateRepository struct{}

func NewGormCertificateRepository() CertificateRepository {
	return &gormCertificateRepository{}
}

func (r *gormCertificateRepository) Create(ctx context.Context, tx *gorm.DB, certificate *model.Certificate) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(certificate)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate certificate on create",
				"enrollment_id", certificate.EnrollmentID,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating certificate in DB",
			"error", result.Error,
			"enrollment_id", certificate.EnrollmentID,
		)
		return fmt.Errorf("gormCertificateRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCertificateRepository) FindByID(ctx context.Context, db *gorm.DB, certificateID uint) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var certificate model.Certificate
	result := db.WithContext(ctx).Where("id = ?", certificateID).First(&certificate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding certificate by ID in DB",
			"error", result.Error,
			"certificate_id", certificateID,
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByID: %w", result.Error)
	}
	return &certificate, nil
}

func (r *gormCertificateRepository) FindByEnrollment(ctx context.Context, db *gorm.DB, enrollmentID uint) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var certificate model.Certificate
	result := db.WithContext(ctx).Where("enrollment_id = ?", enrollmentID).First(&certificate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding certificate by enrollment in DB",
			"error", result.Error,
			"enrollment_id", enrollmentID,
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByEnrollment: %w", result.Error)
	}
	return &certificate, nil
}

func (r *gormCertificateRepository) FindByVerificationCode(ctx context.Context, db *gorm.DB, code string) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var certificate model.Certificate
	result := db.WithContext(ctx).Where("verification_code = ?", code).First(&certificate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding certificate by verification code in DB",
			"error", result.Error,
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByVerificationCode: %w", result.Error)
	}
	return &certificate, nil
}

// FindByStudent は学生の修了証一覧を返します。
// 修了証は student_id を直接持たないため受講登録と結合する。
func (r *gormCertificateRepository) FindByStudent(ctx context.Context, db *gorm.DB, studentID uint, skip, limit int) ([]model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var certificates []model.Certificate
	result := db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.id = certificates.enrollment_id").
		Where("enrollments.student_id = ?", studentID).
		Order("certificates.issue_date DESC").
		Offset(skip).
		Limit(limit).
		Find(&certificates)
	if result.Error != nil {
		logger.Error("Error finding certificates by student in DB",
			"error", result.Error,
			"student_id", studentID,
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByStudent: %w", result.Error)
	}
	return certificates, nil
}

func (r *gormCertificateRepository) CountByStudent(ctx context.Context, db *gorm.DB, studentID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Certificate{}).
		Joins("JOIN enrollments ON enrollments.id = certificates.enrollment_id").
		Where("enrollments.student_id = ?", studentID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting certificates by student in DB",
			"error", result.Error,
			"student_id", studentID,
		)
		return 0, fmt.Errorf("gormCertificateRepository.CountByStudent: %w", result.Error)
	}
	return count, nil
}

func (r *gormCertificateRepository) Update(ctx context.Context, tx *gorm.DB, certificateID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Certificate{}).
		Where("id = ?", certificateID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating certificate in DB",
			"error", result.Error,
			"certificate_id", certificateID,
		)
		return fmt.Errorf("gormCertificateRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
