// internal/service/certificate_service.go
package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"
	"smartcourse/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateService interface {
	Issue(ctx context.Context, actor model.Actor, req *model.IssueCertificateRequest) (*model.Certificate, error)
	GetCertificate(ctx context.Context, actor model.Actor, certificateID uint) (*model.Certificate, error)
	GetByEnrollment(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Certificate, error)
	ListByStudent(ctx context.Context, actor model.Actor, studentID uint, skip, limit int) (*model.CertificatePage, error)
	Verify(ctx context.Context, code string) (*model.CertificateVerification, error)
	Revoke(ctx context.Context, actor model.Actor, certificateID uint, req *model.RevokeCertificateRequest) (*model.Certificate, error)
}

type certificateService struct {
	db             *gorm.DB
	certRepo       repository.CertificateRepository
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	notifier       Notifier
}

func NewCertificateService(
	db *gorm.DB,
	certRepo repository.CertificateRepository,
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	notifier Notifier,
) CertificateService {
	return &certificateService{
		db:             db,
		certRepo:       certRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		notifier:       notifier,
	}
}

// newCertificateNumber は "SC-" + 12桁hex大文字の修了証番号を生成します
func newCertificateNumber() string {
	u := uuid.New()
	return "SC-" + strings.ToUpper(hex.EncodeToString(u[:])[:12])
}

// newVerificationCode は8桁hex大文字の検証コードを生成します
func newVerificationCode() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:])[:8])
}

// Issue は修了証を発行します。対象の受講登録が修了状態であることが条件。
// 受講登録1件につき修了証は1枚まで (DBのユニーク制約も番人になる)。
func (s *certificateService) Issue(ctx context.Context, actor model.Actor, req *model.IssueCertificateRequest) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)

	var created *model.Certificate
	var studentID uint
	var course *model.Course

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 受講登録の確認
		enrollment, err := s.enrollmentRepo.FindByID(ctx, tx, req.EnrollmentID)
		if err != nil {
			return err
		}
		if enrollment.Status != model.EnrollmentStatusCompleted {
			return model.NewAppError("INVALID_INPUT", "修了していない受講には発行できません", "enrollment_id", model.ErrInvalidInput)
		}
		studentID = enrollment.StudentID

		// 2. 発行権限: 講師・管理者は誰の受講にも発行できる。
		// 学生は自分の受講に対してのみ申請できる。
		if !actor.IsPrivileged() && enrollment.StudentID != actor.UserID {
			return model.ErrForbidden
		}

		// 通知用にコースを引いておく
		course, err = s.courseRepo.FindByID(ctx, tx, enrollment.CourseID)
		if err != nil {
			return err
		}

		// 3. 既存の修了証を確認
		if _, err := s.certRepo.FindByEnrollment(ctx, tx, enrollment.ID); err == nil {
			return model.NewAppError("CONFLICT", "この受講には既に修了証が発行されています", "enrollment_id", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.ErrInternalServer
		}

		// 4. 番号・コードを採番して作成
		number := newCertificateNumber()
		code := newVerificationCode()

		issuedBy := actor.UserID
		cert := &model.Certificate{
			EnrollmentID:      enrollment.ID,
			CertificateNumber: number,
			IssueDate:         time.Now(),
			VerificationCode:  code,
			Grade:             req.Grade,
			ScorePercentage:   req.ScorePercentage,
			IssuedByID:        &issuedBy,
		}
		if err := s.certRepo.Create(ctx, tx, cert); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "この受講には既に修了証が発行されています", "enrollment_id", err)
			}
			return model.ErrInternalServer
		}
		created = cert
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) ||
			errors.Is(err, model.ErrNotFound) ||
			errors.Is(err, model.ErrForbidden) ||
			errors.Is(err, model.ErrConflict) ||
			errors.Is(err, model.ErrInvalidInput) {
			return nil, err
		}
		logger.Error("Transaction failed for Issue", "error", err, "enrollment_id", req.EnrollmentID)
		return nil, model.ErrInternalServer
	}

	s.notifier.CertificateIssued(ctx, studentID, course, created)
	logger.Info("Certificate issued",
		"certificate_id", created.ID,
		"certificate_number", created.CertificateNumber,
		"enrollment_id", created.EnrollmentID,
	)
	return created, nil
}

func (s *certificateService) GetCertificate(ctx context.Context, actor model.Actor, certificateID uint) (*model.Certificate, error) {
	cert, err := s.certRepo.FindByID(ctx, s.db, certificateID)
	if err != nil {
		return nil, err
	}

	// 受講者本人か講師・管理者のみ閲覧可
	enrollment, err := s.enrollmentRepo.FindByID(ctx, s.db, cert.EnrollmentID)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if enrollment.StudentID != actor.UserID && !actor.IsPrivileged() {
		return nil, model.ErrForbidden
	}
	return cert, nil
}

func (s *certificateService) GetByEnrollment(ctx context.Context, actor model.Actor, enrollmentID uint) (*model.Certificate, error) {
	enrollment, err := s.enrollmentRepo.FindByID(ctx, s.db, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.StudentID != actor.UserID && !actor.IsPrivileged() {
		return nil, model.ErrForbidden
	}
	return s.certRepo.FindByEnrollment(ctx, s.db, enrollmentID)
}

func (s *certificateService) ListByStudent(ctx context.Context, actor model.Actor, studentID uint, skip, limit int) (*model.CertificatePage, error) {
	logger := middleware.GetLogger(ctx)

	if studentID != actor.UserID && !actor.IsPrivileged() {
		return nil, model.ErrForbidden
	}

	certs, err := s.certRepo.FindByStudent(ctx, s.db, studentID, skip, limit)
	if err != nil {
		logger.Error("Error listing certificates by student", "error", err, "student_id", studentID)
		return nil, model.ErrInternalServer
	}
	total, err := s.certRepo.CountByStudent(ctx, s.db, studentID)
	if err != nil {
		logger.Error("Error counting certificates by student", "error", err, "student_id", studentID)
		return nil, model.ErrInternalServer
	}

	if certs == nil {
		certs = []model.Certificate{}
	}
	return &model.CertificatePage{Items: certs, Total: total, Skip: skip, Limit: limit}, nil
}

// Verify は検証コードから修了証の有効性を返します。
// 公開APIのため受講者の身元は含めない。
func (s *certificateService) Verify(ctx context.Context, code string) (*model.CertificateVerification, error) {
	cert, err := s.certRepo.FindByVerificationCode(ctx, s.db, strings.ToUpper(code))
	if err != nil {
		return nil, err
	}
	return &model.CertificateVerification{
		Valid:             !cert.IsRevoked,
		CertificateNumber: cert.CertificateNumber,
		IssueDate:         cert.IssueDate,
		Grade:             cert.Grade,
		IsRevoked:         cert.IsRevoked,
		RevokedAt:         cert.RevokedAt,
	}, nil
}

// Revoke は修了証を失効させます (管理者専用)
func (s *certificateService) Revoke(ctx context.Context, actor model.Actor, certificateID uint, req *model.RevokeCertificateRequest) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)

	if actor.Role != model.RoleAdmin {
		return nil, model.ErrForbidden
	}

	var revoked *model.Certificate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cert, err := s.certRepo.FindByID(ctx, tx, certificateID)
		if err != nil {
			return err
		}
		if cert.IsRevoked {
			return model.NewAppError("CONFLICT", "既に失効済みです", "", model.ErrConflict)
		}

		updates := map[string]interface{}{
			"is_revoked":     true,
			"revoked_at":     time.Now(),
			"revoked_reason": req.Reason,
		}
		if err := s.certRepo.Update(ctx, tx, certificateID, updates); err != nil {
			return model.ErrInternalServer
		}
		revoked, err = s.certRepo.FindByID(ctx, tx, certificateID)
		return err
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		logger.Error("Transaction failed for Revoke", "error", err, "certificate_id", certificateID)
		return nil, model.ErrInternalServer
	}

	logger.Info("Certificate revoked", "certificate_id", certificateID, "reason", req.Reason)
	return revoked, nil
}
