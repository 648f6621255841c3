// internal/service/progress_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"smartcourse/internal/model"
	"smartcourse/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubNotifier はテスト用の通知記録。送信内容は検証せず呼び出しだけ数える。
type stubNotifier struct {
	completedFor []uint
	certsFor     []uint
}

func (n *stubNotifier) CourseCompleted(ctx context.Context, studentID uint, course *model.Course) {
	n.completedFor = append(n.completedFor, studentID)
}

func (n *stubNotifier) CertificateIssued(ctx context.Context, studentID uint, course *model.Course, certificate *model.Certificate) {
	n.certsFor = append(n.certsFor, studentID)
}

// 2レッスン+1クイズの小さなコンテンツツリー
func testContent(courseID uint) *model.CourseContent {
	return &model.CourseContent{
		CourseID: courseID,
		Modules: []model.Module{
			{
				ModuleID: "m1",
				Title:    "イントロ",
				IsActive: true,
				Lessons: []model.Lesson{
					{LessonID: "l1", Title: "はじめに", Type: "video", IsActive: true},
					{LessonID: "l2", Title: "セットアップ", Type: "text", IsActive: true},
				},
				Quizzes: []model.QuizRef{
					{QuizID: "q1", Title: "確認クイズ", IsActive: true},
				},
			},
		},
	}
}

func progressRow(userID, courseID uint, itemType, itemID string) model.Progress {
	return model.Progress{
		UserID:      userID,
		CourseID:    courseID,
		ItemType:    itemType,
		ItemID:      itemID,
		CompletedAt: time.Now(),
	}
}

type progressTestEnv struct {
	svc      ProgressService
	progRepo *mocks.ProgressRepository
	enrRepo  *mocks.EnrollmentRepository
	crsRepo  *mocks.CourseRepository
	certRepo *mocks.CertificateRepository
	cntRepo  *mocks.ContentRepository
	notifier *stubNotifier
}

func setupProgressService(t *testing.T) *progressTestEnv {
	t.Helper()
	db := setupTestDB(t)
	cacheClient, _ := setupTestCacheClient(t)

	env := &progressTestEnv{
		progRepo: new(mocks.ProgressRepository),
		enrRepo:  new(mocks.EnrollmentRepository),
		crsRepo:  new(mocks.CourseRepository),
		certRepo: new(mocks.CertificateRepository),
		cntRepo:  new(mocks.ContentRepository),
		notifier: &stubNotifier{},
	}
	contentSvc := NewContentService(db, env.cntRepo, env.crsRepo, cacheClient)
	env.svc = NewProgressService(db, env.progRepo, env.enrRepo, env.crsRepo, env.certRepo, contentSvc, env.notifier)
	return env
}

// --- Test MarkCompleted ---
func Test_progressService_MarkCompleted_RecordsAndSummarizes(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}
	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil).Once()
	env.progRepo.On("InsertIfAbsent", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Progress")).
		Return(&model.Progress{ID: 1, UserID: 20, CourseID: 1, ItemType: "lesson", ItemID: "l1"}, true, nil).Once()
	// 初回マークなので started_at も設定される
	env.enrRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100),
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			_, hasStarted := updates["started_at"]
			_, hasAccessed := updates["last_accessed_at"]
			return hasStarted && hasAccessed
		})).Return(nil).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{progressRow(20, 1, "lesson", "l1")}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(nil, model.ErrNotFound).Once()

	summary, err := env.svc.MarkCompleted(ctx, studentActor, &model.MarkCompletedRequest{
		CourseID: 1, ItemType: "lesson", ItemID: "l1",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 1, summary.CompletedItems)
	assert.InDelta(t, 33.33, summary.CompletionPercentage, 0.001)
	assert.Equal(t, []string{"l1"}, summary.CompletedLessons)
	assert.False(t, summary.IsComplete)
	assert.False(t, summary.HasCertificate)

	env.progRepo.AssertExpectations(t)
	env.enrRepo.AssertExpectations(t)
}

func Test_progressService_MarkCompleted_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}
	startedAt := time.Now().Add(-time.Hour)
	enrollment.StartedAt = &startedAt

	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil)
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil)
	// 2回目のマークは既存行が返り created=false
	env.progRepo.On("InsertIfAbsent", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Progress")).
		Return(&model.Progress{ID: 1, UserID: 20, CourseID: 1, ItemType: "lesson", ItemID: "l1"}, false, nil)
	// 開始済みなので last_accessed_at のみ更新
	env.enrRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100),
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			_, hasStarted := updates["started_at"]
			return !hasStarted && len(updates) == 1
		})).Return(nil)
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{progressRow(20, 1, "lesson", "l1")}, nil)
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(nil, model.ErrNotFound)

	first, err := env.svc.MarkCompleted(ctx, studentActor, &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "l1"})
	require.NoError(t, err)
	second, err := env.svc.MarkCompleted(ctx, studentActor, &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "l1"})
	require.NoError(t, err)

	// 何度マークしても集計は変わらない
	assert.Equal(t, first.CompletedItems, second.CompletedItems)
	assert.Equal(t, first.CompletionPercentage, second.CompletionPercentage)
}

func Test_progressService_MarkCompleted_AutoCompletesAt100Percent(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}
	startedAt := time.Now().Add(-time.Hour)
	enrollment.StartedAt = &startedAt

	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil).Once()
	env.progRepo.On("InsertIfAbsent", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Progress")).
		Return(&model.Progress{ID: 3, UserID: 20, CourseID: 1, ItemType: "quiz", ItemID: "q1"}, true, nil).Once()
	env.enrRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100),
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			_, hasAccessed := updates["last_accessed_at"]
			return hasAccessed
		})).Return(nil).Once()
	// 全3アイテム完了済み
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{
			progressRow(20, 1, "lesson", "l1"),
			progressRow(20, 1, "lesson", "l2"),
			progressRow(20, 1, "quiz", "q1"),
		}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(nil, model.ErrNotFound).Once()
	// 自動修了: 再読込して active のままなら completed へ遷移
	env.enrRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}, nil).Once()
	env.enrRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100),
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			_, hasCompletedAt := updates["completed_at"]
			return updates["status"] == model.EnrollmentStatusCompleted && hasCompletedAt
		})).Return(nil).Once()
	env.crsRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(testCourse(1, 10), nil).Once()

	summary, err := env.svc.MarkCompleted(ctx, studentActor, &model.MarkCompletedRequest{CourseID: 1, ItemType: "quiz", ItemID: "q1"})
	require.NoError(t, err)
	assert.Equal(t, float64(100), summary.CompletionPercentage)
	assert.True(t, summary.IsComplete)
	// 修了通知が学生宛てに1回飛ぶ
	assert.Equal(t, []uint{20}, env.notifier.completedFor)

	env.enrRepo.AssertExpectations(t)
	env.progRepo.AssertExpectations(t)
}

func Test_progressService_MarkCompleted_AlreadyCompletedEnrollmentStays(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	// 既に修了済みの登録。再遷移も通知も起こらない。
	completedAt := time.Now().Add(-24 * time.Hour)
	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusCompleted, StartedAt: &completedAt, CompletedAt: &completedAt}

	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil).Once()
	env.progRepo.On("InsertIfAbsent", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Progress")).
		Return(&model.Progress{ID: 3}, false, nil).Once()
	env.enrRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100), mock.Anything).
		Return(nil).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{
			progressRow(20, 1, "lesson", "l1"),
			progressRow(20, 1, "lesson", "l2"),
			progressRow(20, 1, "quiz", "q1"),
		}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(nil, model.ErrNotFound).Once()

	summary, err := env.svc.MarkCompleted(ctx, studentActor, &model.MarkCompletedRequest{CourseID: 1, ItemType: "quiz", ItemID: "q1"})
	require.NoError(t, err)
	assert.True(t, summary.IsComplete)
	assert.Empty(t, env.notifier.completedFor)

	// FindByID (修了遷移の再読込) が呼ばれていないことを確認
	env.enrRepo.AssertNotCalled(t, "FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(100))
}

func Test_progressService_MarkCompleted_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *model.MarkCompletedRequest
		setup   func(env *progressTestEnv)
		wantErr error
	}{
		{
			name: "異常系: 未登録のコース",
			req:  &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "l1"},
			setup: func(env *progressTestEnv) {
				env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrForbidden,
		},
		{
			name: "異常系: 退会済みの登録",
			req:  &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "l1"},
			setup: func(env *progressTestEnv) {
				env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
					Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusDropped}, nil).Once()
			},
			wantErr: model.ErrForbidden,
		},
		{
			name: "異常系: ツリーに存在しないアイテム",
			req:  &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "ghost"},
			setup: func(env *progressTestEnv) {
				env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
					Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}, nil).Once()
				env.cntRepo.On("FindByCourse", ctx, uint(1)).
					Return(testContent(1), nil).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 無効化されたアイテムはマークできない",
			req:  &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "l2"},
			setup: func(env *progressTestEnv) {
				env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
					Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}, nil).Once()
				content := testContent(1)
				content.Modules[0].Lessons[1].IsActive = false
				env.cntRepo.On("FindByCourse", ctx, uint(1)).
					Return(content, nil).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: コンテンツ未作成のコース",
			req:  &model.MarkCompletedRequest{CourseID: 1, ItemType: "lesson", ItemID: "l1"},
			setup: func(env *progressTestEnv) {
				env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
					Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}, nil).Once()
				env.cntRepo.On("FindByCourse", ctx, uint(1)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupProgressService(t)
			tt.setup(env)

			summary, err := env.svc.MarkCompleted(ctx, studentActor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, summary)
			env.enrRepo.AssertExpectations(t)
			env.cntRepo.AssertExpectations(t)
		})
	}
}

// --- Test GetCourseProgress ---
func Test_progressService_GetCourseProgress_DenominatorFollowsActiveItems(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}
	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()

	// l2 が無効化されたツリー。完了記録には l2 も残っているが、
	// 分母・分子のどちらにも入らない (2アイテム中2完了で100%)。
	content := testContent(1)
	content.Modules[0].Lessons[1].IsActive = false
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(content, nil).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{
			progressRow(20, 1, "lesson", "l1"),
			progressRow(20, 1, "lesson", "l2"),
			progressRow(20, 1, "quiz", "q1"),
		}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(nil, model.ErrNotFound).Once()

	summary, err := env.svc.GetCourseProgress(ctx, studentActor, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 2, summary.CompletedItems)
	assert.Equal(t, float64(100), summary.CompletionPercentage)
	assert.Equal(t, []string{"l1"}, summary.CompletedLessons)
	assert.True(t, summary.IsComplete)
}

func Test_progressService_GetCourseProgress_EmptyCourseIsZeroPercent(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}
	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()
	// コンテンツ未作成でも進捗照会はエラーにしない
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(nil, model.ErrNotFound).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(nil, model.ErrNotFound).Once()

	summary, err := env.svc.GetCourseProgress(ctx, studentActor, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, float64(0), summary.CompletionPercentage)
	assert.False(t, summary.IsComplete)
}

func Test_progressService_GetCourseProgress_OthersForbiddenForStudents(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	// 学生は他人の進捗を見られない
	_, err := env.svc.GetCourseProgress(ctx, studentActor, 21, 1)
	assert.ErrorIs(t, err, model.ErrForbidden)

	// 講師・管理者は見られる
	enrollment := &model.Enrollment{ID: 101, StudentID: 21, CourseID: 1, Status: model.EnrollmentStatusActive}
	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(21), uint(1)).
		Return(enrollment, nil).Once()
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(21), uint(1)).
		Return([]model.Progress{}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(101)).
		Return(nil, model.ErrNotFound).Once()

	summary, err := env.svc.GetCourseProgress(ctx, instructorActor, 21, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(21), summary.UserID)
}

func Test_progressService_GetCourseProgress_ReportsCertificate(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusCompleted}
	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{
			progressRow(20, 1, "lesson", "l1"),
			progressRow(20, 1, "lesson", "l2"),
			progressRow(20, 1, "quiz", "q1"),
		}, nil).Once()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(&model.Certificate{ID: 1, EnrollmentID: 100}, nil).Once()

	summary, err := env.svc.GetCourseProgress(ctx, studentActor, 20, 1)
	require.NoError(t, err)
	assert.True(t, summary.HasCertificate)
}

func Test_progressService_GetCourseProgress_RevokedCertificateDoesNotCount(t *testing.T) {
	ctx := context.Background()
	env := setupProgressService(t)

	enrollment := &model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusCompleted}
	env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return(enrollment, nil).Once()
	env.cntRepo.On("FindByCourse", ctx, uint(1)).
		Return(testContent(1), nil).Once()
	env.progRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
		Return([]model.Progress{
			progressRow(20, 1, "lesson", "l1"),
			progressRow(20, 1, "lesson", "l2"),
			progressRow(20, 1, "quiz", "q1"),
		}, nil).Once()
	revokedAt := time.Now()
	env.certRepo.On("FindByEnrollment", ctx, mock.AnythingOfType("*gorm.DB"), uint(100)).
		Return(&model.Certificate{ID: 1, EnrollmentID: 100, IsRevoked: true, RevokedAt: &revokedAt}, nil).Once()

	summary, err := env.svc.GetCourseProgress(ctx, studentActor, 20, 1)
	require.NoError(t, err)
	assert.False(t, summary.HasCertificate)
}

// --- Test ResetProgress ---
func Test_progressService_ResetProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("異常系: 管理者以外は実行できない", func(t *testing.T) {
		env := setupProgressService(t)
		err := env.svc.ResetProgress(ctx, instructorActor, 20, 1)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("正常系: 進捗削除のみ (未修了)", func(t *testing.T) {
		env := setupProgressService(t)
		env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
			Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusActive}, nil).Once()
		env.progRepo.On("DeleteByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
			Return(int64(3), nil).Once()

		require.NoError(t, env.svc.ResetProgress(ctx, adminActor, 20, 1))
		// 未修了なら受講状態は触らない
		env.enrRepo.AssertNotCalled(t, "Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100), mock.Anything)
	})

	t.Run("正常系: 修了済みは有効状態に戻す", func(t *testing.T) {
		env := setupProgressService(t)
		completedAt := time.Now()
		env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
			Return(&model.Enrollment{ID: 100, StudentID: 20, CourseID: 1, Status: model.EnrollmentStatusCompleted, CompletedAt: &completedAt}, nil).Once()
		env.progRepo.On("DeleteByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
			Return(int64(3), nil).Once()
		env.enrRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(100),
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				return updates["status"] == model.EnrollmentStatusActive && updates["completed_at"] == nil
			})).Return(nil).Once()

		require.NoError(t, env.svc.ResetProgress(ctx, adminActor, 20, 1))
		env.enrRepo.AssertExpectations(t)
	})

	t.Run("異常系: 受講登録がない", func(t *testing.T) {
		env := setupProgressService(t)
		env.enrRepo.On("FindByStudentAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), uint(20), uint(1)).
			Return(nil, model.ErrNotFound).Once()
		err := env.svc.ResetProgress(ctx, adminActor, 20, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
