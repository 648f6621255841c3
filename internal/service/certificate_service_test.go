// internal/service/certificate_service_test.go
package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"smartcourse/internal/model"
	"smartcourse/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedEnrollment(id, studentID, courseID uint) *model.Enrollment {
	completedAt := time.Now().Add(-time.Hour)
	return &model.Enrollment{
		ID:          id,
		StudentID:   studentID,
		CourseID:    courseID,
		Status:      model.EnrollmentStatusCompleted,
		CompletedAt: &completedAt,
	}
}

// --- Test Issue ---
func Test_certificateService_Issue(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tests := []struct {
		name      string
		actor     model.Actor
		req       *model.IssueCertificateRequest
		setupMock func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository)
		wantErr   error
	}{
		{
			name:  "正常系: 発行成功",
			actor: instructorActor,
			req:   &model.IssueCertificateRequest{EnrollmentID: 100, Grade: "A"},
			setupMock: func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository) {
				enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(completedEnrollment(100, 20, 1), nil).Once()
				crsRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(testCourse(1, 10), nil).Once()
				certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(nil, model.ErrNotFound).Once()
				certRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Certificate")).
					Run(func(args mock.Arguments) {
						cert := args.Get(2).(*model.Certificate)
						cert.ID = 1
						assert.Regexp(t, regexp.MustCompile(`^SC-[0-9A-F]{12}$`), cert.CertificateNumber)
						assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), cert.VerificationCode)
						require.NotNil(t, cert.IssuedByID)
						assert.Equal(t, uint(10), *cert.IssuedByID)
					}).Return(nil).Once()
			},
		},
		{
			name:  "異常系: 修了していない受講には発行できない",
			actor: instructorActor,
			req:   &model.IssueCertificateRequest{EnrollmentID: 100},
			setupMock: func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository) {
				enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}, nil).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:  "正常系: 学生は自分の修了した受講に自己申請できる",
			actor: studentActor,
			req:   &model.IssueCertificateRequest{EnrollmentID: 100, Grade: "B"},
			setupMock: func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository) {
				enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(completedEnrollment(100, 20, 1), nil).Once()
				crsRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(testCourse(1, 10), nil).Once()
				certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(nil, model.ErrNotFound).Once()
				certRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Certificate")).
					Run(func(args mock.Arguments) {
						cert := args.Get(2).(*model.Certificate)
						cert.ID = 2
						require.NotNil(t, cert.IssuedByID)
						assert.Equal(t, uint(20), *cert.IssuedByID)
					}).Return(nil).Once()
			},
		},
		{
			name:  "異常系: 学生は他人の受講には申請できない",
			actor: model.Actor{UserID: 21, Role: model.RoleStudent},
			req:   &model.IssueCertificateRequest{EnrollmentID: 100},
			setupMock: func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository) {
				enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(completedEnrollment(100, 20, 1), nil).Once()
			},
			wantErr: model.ErrForbidden,
		},
		{
			name:  "異常系: 二重発行",
			actor: instructorActor,
			req:   &model.IssueCertificateRequest{EnrollmentID: 100},
			setupMock: func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository) {
				enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(completedEnrollment(100, 20, 1), nil).Once()
				crsRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(testCourse(1, 10), nil).Once()
				certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
					Return(&model.Certificate{ID: 1, EnrollmentID: 100}, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name:  "異常系: 受講登録が存在しない",
			actor: instructorActor,
			req:   &model.IssueCertificateRequest{EnrollmentID: 404},
			setupMock: func(certRepo *mocks.CertificateRepository, enrRepo *mocks.EnrollmentRepository, crsRepo *mocks.CourseRepository) {
				enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(404)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certRepo := new(mocks.CertificateRepository)
			enrRepo := new(mocks.EnrollmentRepository)
			crsRepo := new(mocks.CourseRepository)
			notifier := &stubNotifier{}
			tt.setupMock(certRepo, enrRepo, crsRepo)
			svc := NewCertificateService(db, certRepo, enrRepo, crsRepo, notifier)

			cert, err := svc.Issue(ctx, tt.actor, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cert)
				assert.Empty(t, notifier.certsFor)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cert)
				// 発行通知は学生宛て
				assert.Equal(t, []uint{20}, notifier.certsFor)
			}
			certRepo.AssertExpectations(t)
			enrRepo.AssertExpectations(t)
			crsRepo.AssertExpectations(t)
		})
	}
}

// --- Test Verify ---
func Test_certificateService_Verify(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	t.Run("正常系: 有効な修了証", func(t *testing.T) {
		certRepo := new(mocks.CertificateRepository)
		svc := NewCertificateService(db, certRepo, new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})

		issueDate := time.Now().Add(-48 * time.Hour)
		// 小文字で来たコードは大文字化して照合する
		certRepo.On("FindByVerificationCode", ctx, mock.AnythingOfType("*gorm.DB"), "A1B2C3D4").
			Return(&model.Certificate{
				ID:                1,
				EnrollmentID:      100,
				CertificateNumber: "SC-0011AABBCCDD",
				VerificationCode:  "A1B2C3D4",
				IssueDate:         issueDate,
				Grade:             "A",
			}, nil).Once()

		result, err := svc.Verify(ctx, "a1b2c3d4")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "SC-0011AABBCCDD", result.CertificateNumber)
		assert.Equal(t, "A", result.Grade)
		assert.False(t, result.IsRevoked)

		certRepo.AssertExpectations(t)
	})

	t.Run("正常系: 失効済みは valid=false で返る", func(t *testing.T) {
		certRepo := new(mocks.CertificateRepository)
		svc := NewCertificateService(db, certRepo, new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})

		revokedAt := time.Now()
		certRepo.On("FindByVerificationCode", ctx, mock.AnythingOfType("*gorm.DB"), "A1B2C3D4").
			Return(&model.Certificate{
				ID:                1,
				CertificateNumber: "SC-0011AABBCCDD",
				IsRevoked:         true,
				RevokedAt:         &revokedAt,
			}, nil).Once()

		result, err := svc.Verify(ctx, "A1B2C3D4")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.True(t, result.IsRevoked)
		assert.NotNil(t, result.RevokedAt)
	})

	t.Run("異常系: 存在しないコード", func(t *testing.T) {
		certRepo := new(mocks.CertificateRepository)
		svc := NewCertificateService(db, certRepo, new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})

		certRepo.On("FindByVerificationCode", ctx, mock.AnythingOfType("*gorm.DB"), "FFFFFFFF").
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.Verify(ctx, "FFFFFFFF")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test Revoke ---
func Test_certificateService_Revoke(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	reason := "replaced by corrected certificate"

	t.Run("異常系: 管理者以外は失効できない", func(t *testing.T) {
		svc := NewCertificateService(db, new(mocks.CertificateRepository), new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})
		_, err := svc.Revoke(ctx, instructorActor, 1, &model.RevokeCertificateRequest{Reason: reason})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("正常系: 管理者が失効", func(t *testing.T) {
		certRepo := new(mocks.CertificateRepository)
		svc := NewCertificateService(db, certRepo, new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})

		certRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.Certificate{ID: 1, EnrollmentID: 100, IsRevoked: false}, nil).Once()
		certRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(1),
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				return updates["is_revoked"] == true && updates["revoked_reason"] == reason
			})).Return(nil).Once()
		revokedAt := time.Now()
		certRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.Certificate{ID: 1, EnrollmentID: 100, IsRevoked: true, RevokedAt: &revokedAt, RevokedReason: reason}, nil).Once()

		cert, err := svc.Revoke(ctx, adminActor, 1, &model.RevokeCertificateRequest{Reason: reason})
		require.NoError(t, err)
		assert.True(t, cert.IsRevoked)

		certRepo.AssertExpectations(t)
	})

	t.Run("異常系: 二重失効", func(t *testing.T) {
		certRepo := new(mocks.CertificateRepository)
		svc := NewCertificateService(db, certRepo, new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})

		certRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.Certificate{ID: 1, IsRevoked: true}, nil).Once()

		_, err := svc.Revoke(ctx, adminActor, 1, &model.RevokeCertificateRequest{Reason: reason})
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

// --- Test GetCertificate ---
func Test_certificateService_GetCertificate_Authorization(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	certRepo := new(mocks.CertificateRepository)
	enrRepo := new(mocks.EnrollmentRepository)
	svc := NewCertificateService(db, certRepo, enrRepo, new(mocks.CourseRepository), &stubNotifier{})

	certRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(&model.Certificate{ID: 1, EnrollmentID: 100}, nil)
	enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(completedEnrollment(100, 20, 1), nil)

	// 本人はOK
	cert, err := svc.GetCertificate(ctx, studentActor, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), cert.ID)

	// 無関係な学生はNG
	_, err = svc.GetCertificate(ctx, model.Actor{UserID: 21, Role: model.RoleStudent}, 1)
	assert.ErrorIs(t, err, model.ErrForbidden)

	// 管理者はOK
	_, err = svc.GetCertificate(ctx, adminActor, 1)
	require.NoError(t, err)
}

func Test_certificateService_GetByEnrollment(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	certRepo := new(mocks.CertificateRepository)
	enrRepo := new(mocks.EnrollmentRepository)
	svc := NewCertificateService(db, certRepo, enrRepo, new(mocks.CourseRepository), &stubNotifier{})

	enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(completedEnrollment(100, 20, 1), nil)
	certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(&model.Certificate{ID: 1, EnrollmentID: 100}, nil)

	// 本人はOK
	cert, err := svc.GetByEnrollment(ctx, studentActor, 100)
	require.NoError(t, err)
	assert.Equal(t, uint(100), cert.EnrollmentID)

	// 無関係な学生はNG (修了証の有無も知らせない)
	_, err = svc.GetByEnrollment(ctx, model.Actor{UserID: 21, Role: model.RoleStudent}, 100)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

// --- Test ListByStudent ---
func Test_certificateService_ListByStudent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	certRepo := new(mocks.CertificateRepository)
	svc := NewCertificateService(db, certRepo, new(mocks.EnrollmentRepository), new(mocks.CourseRepository), &stubNotifier{})

	// 学生は他人の一覧を見られない
	_, err := svc.ListByStudent(ctx, studentActor, 21, 0, 20)
	assert.ErrorIs(t, err, model.ErrForbidden)

	certRepo.On("FindByStudent", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), 0, 20).
		Return([]model.Certificate{{ID: 1, EnrollmentID: 100}}, nil).Once()
	certRepo.On("CountByStudent", ctx, mock.AnythingOfType("*gorm.DB"), uint(20)).
		Return(int64(1), nil).Once()

	page, err := svc.ListByStudent(ctx, studentActor, 20, 0, 20)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)

	certRepo.AssertExpectations(t)
}
