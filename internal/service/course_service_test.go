// internal/service/course_service_test.go
package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"smartcourse/internal/cache"
	"smartcourse/internal/model"
	"smartcourse/internal/repository/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database for testing: %v", err)
	}
	return db
}

func setupTestCacheClient(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cache.NewWithRedis(rdb, testLogger), mr
}

var (
	instructorActor = model.Actor{UserID: 10, Role: model.RoleInstructor}
	adminActor      = model.Actor{UserID: 99, Role: model.RoleAdmin}
)

func testCourse(id uint, instructorID uint) *model.Course {
	return &model.Course{
		ID:           id,
		Title:        "Go入門",
		Slug:         "go-basics",
		InstructorID: instructorID,
		Status:       model.CourseStatusPublished,
		Language:     "ja",
		Currency:     "USD",
	}
}

// --- Test GetCourse ---
func Test_courseService_GetCourse_CachesResult(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, mr := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	course := testCourse(1, 10)
	// DBへの問い合わせは1回だけのはず
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(course, nil).Once()

	got1, err := svc.GetCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, course.ID, got1.ID)
	assert.True(t, mr.Exists("course:detail:1"))

	// 2回目はキャッシュヒット (モックのOnceが破られないことが検証になる)
	got2, err := svc.GetCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, course.Slug, got2.Slug)

	mockRepo.AssertExpectations(t)
}

func Test_courseService_GetCourse_NotFoundIsNeverCached(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, mr := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	// 存在しないコースは毎回DBに問い合わせる
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(404)).
		Return(nil, model.ErrNotFound).Twice()

	_, err := svc.GetCourse(ctx, 404)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, mr.Exists("course:detail:404"))

	_, err = svc.GetCourse(ctx, 404)
	assert.ErrorIs(t, err, model.ErrNotFound)

	mockRepo.AssertExpectations(t)
}

func Test_courseService_GetCourseBySlug_WarmsDetailCache(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, mr := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	course := testCourse(1, 10)
	mockRepo.On("FindBySlug", ctx, mock.AnythingOfType("*gorm.DB"), "go-basics").
		Return(course, nil).Once()

	got, err := svc.GetCourseBySlug(ctx, "go-basics")
	require.NoError(t, err)
	assert.Equal(t, course.ID, got.ID)

	// スラッグ取得後はIDキーの詳細キャッシュが温まり、以降のID取得はDBに行かない
	assert.True(t, mr.Exists("course:detail:1"))
	got2, err := svc.GetCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, course.Slug, got2.Slug)

	mockRepo.AssertExpectations(t)
}

// --- Test ListPublished ---
func Test_courseService_ListPublished_CachesPageWithTotal(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, mr := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	courses := []model.Course{*testCourse(1, 10), *testCourse(2, 10)}
	mockRepo.On("FindPublished", ctx, mock.AnythingOfType("*gorm.DB"), 0, 20).
		Return(courses, nil).Once()
	mockRepo.On("CountPublished", ctx, mock.AnythingOfType("*gorm.DB")).
		Return(int64(42), nil).Once()

	page1, err := svc.ListPublished(ctx, 0, 20)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 2)
	assert.Equal(t, int64(42), page1.Total)
	assert.True(t, mr.Exists("course:published:0:20"))

	// 2回目はキャッシュから。件数と総数がセットで返る。
	page2, err := svc.ListPublished(ctx, 0, 20)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 2)
	assert.Equal(t, int64(42), page2.Total)

	mockRepo.AssertExpectations(t)
}

// --- Test CreateCourse ---
func Test_courseService_CreateCourse(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, _ := setupTestCacheClient(t)

	tests := []struct {
		name      string
		req       *model.CreateCourseRequest
		setupMock func(repo *mocks.CourseRepository)
		wantErr   error
	}{
		{
			name: "正常系: コース作成成功",
			req:  &model.CreateCourseRequest{Title: "Go入門", Slug: "go-basics", Price: 0},
			setupMock: func(repo *mocks.CourseRepository) {
				repo.On("SlugExists", ctx, mock.AnythingOfType("*gorm.DB"), "go-basics", (*uint)(nil)).
					Return(false, nil).Once()
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Course")).
					Run(func(args mock.Arguments) {
						course := args.Get(2).(*model.Course)
						assert.Equal(t, uint(10), course.InstructorID)
						assert.Equal(t, model.CourseStatusDraft, course.Status)
						// 未指定の言語・通貨はデフォルトが入る
						assert.Equal(t, "en", course.Language)
						assert.Equal(t, "USD", course.Currency)
					}).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: スラッグ重複",
			req:  &model.CreateCourseRequest{Title: "Go入門", Slug: "go-basics"},
			setupMock: func(repo *mocks.CourseRepository) {
				repo.On("SlugExists", ctx, mock.AnythingOfType("*gorm.DB"), "go-basics", (*uint)(nil)).
					Return(true, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.CourseRepository)
			tt.setupMock(mockRepo)
			svc := NewCourseService(db, mockRepo, cacheClient)

			course, err := svc.CreateCourse(ctx, instructorActor, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, course)
			} else {
				require.NoError(t, err)
				require.NotNil(t, course)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// --- Test UpdateCourse ---
func Test_courseService_UpdateCourse_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, mr := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	course := testCourse(1, 10)

	// 事前にキャッシュを温めておく
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(course, nil)
	mockRepo.On("FindPublished", ctx, mock.AnythingOfType("*gorm.DB"), 0, 20).
		Return([]model.Course{*course}, nil).Once()
	mockRepo.On("CountPublished", ctx, mock.AnythingOfType("*gorm.DB")).
		Return(int64(1), nil).Once()
	_, err := svc.GetCourse(ctx, 1)
	require.NoError(t, err)
	_, err = svc.ListPublished(ctx, 0, 20)
	require.NoError(t, err)
	require.True(t, mr.Exists("course:detail:1"))
	require.True(t, mr.Exists("course:published:0:20"))

	newTitle := "Go実践"
	mockRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(1),
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			return updates["title"] == newTitle
		})).Return(nil).Once()

	_, err = svc.UpdateCourse(ctx, instructorActor, 1, &model.UpdateCourseRequest{Title: &newTitle})
	require.NoError(t, err)

	// 詳細キーと公開一覧が両方失効している
	assert.False(t, mr.Exists("course:detail:1"))
	assert.False(t, mr.Exists("course:published:0:20"))

	mockRepo.AssertExpectations(t)
}

func Test_courseService_UpdateCourse_ForbiddenForNonOwner(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, _ := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	// コースの所有者は講師10。講師11は触れない。
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(testCourse(1, 10), nil).Once()

	otherInstructor := model.Actor{UserID: 11, Role: model.RoleInstructor}
	newTitle := "のっとり"
	_, err := svc.UpdateCourse(ctx, otherInstructor, 1, &model.UpdateCourseRequest{Title: &newTitle})
	assert.ErrorIs(t, err, model.ErrForbidden)

	mockRepo.AssertExpectations(t)
}

func Test_courseService_UpdateStatus_AdminCanManageAnyCourse(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, _ := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	draft := testCourse(1, 10)
	draft.Status = model.CourseStatusDraft
	draft.PublishedAt = nil

	published := testCourse(1, 10)

	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(draft, nil).Once()
	// 初回公開なので published_at が設定される
	mockRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), uint(1),
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			_, hasPublishedAt := updates["published_at"]
			return updates["status"] == model.CourseStatusPublished && hasPublishedAt
		})).Return(nil).Once()
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(published, nil).Once()

	got, err := svc.UpdateStatus(ctx, adminActor, 1, &model.UpdateCourseStatusRequest{Status: model.CourseStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusPublished, got.Status)

	mockRepo.AssertExpectations(t)
}

// --- Test DeleteCourse ---
func Test_courseService_DeleteCourse(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cacheClient, mr := setupTestCacheClient(t)
	mockRepo := new(mocks.CourseRepository)
	svc := NewCourseService(db, mockRepo, cacheClient)

	course := testCourse(1, 10)
	mockRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(course, nil)
	mockRepo.On("SoftDelete", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
		Return(nil).Once()

	// 受講者数キャッシュも一緒に消えることを確認する
	_, err := svc.GetCourse(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, mr.Set("course:enrollment_count:1", "5"))

	require.NoError(t, svc.DeleteCourse(ctx, instructorActor, 1))
	assert.False(t, mr.Exists("course:detail:1"))
	assert.False(t, mr.Exists("course:enrollment_count:1"))

	mockRepo.AssertExpectations(t)
}
