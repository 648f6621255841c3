// internal/repository/progress_repository_test.go
package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"smartcourse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupProgressDB(t *testing.T) *gorm.DB {
	t.Helper()
	// テストごとに独立したインメモリDB。cache=shared でコネクションプール内の
	// 全コネクションが同じDBを見るようにする。
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database for testing: %v", err)
	}
	if err := db.AutoMigrate(&model.Progress{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func Test_gormProgressRepository_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupProgressDB(t)
	repo := NewGormProgressRepository()

	mark := func(itemID string) *model.Progress {
		return &model.Progress{
			UserID:      20,
			CourseID:    1,
			ItemType:    model.ItemTypeLesson,
			ItemID:      itemID,
			CompletedAt: time.Now(),
		}
	}

	// 初回は created=true
	first, created, err := repo.InsertIfAbsent(ctx, db, mark("l1"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	// 同じアイテムの2回目は既存行が返り created=false
	second, created, err := repo.InsertIfAbsent(ctx, db, mark("l1"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	// 行は1件のまま
	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 別アイテムは新規挿入される
	_, created, err = repo.InsertIfAbsent(ctx, db, mark("l2"))
	require.NoError(t, err)
	assert.True(t, created)
}

func Test_gormProgressRepository_InsertIfAbsent_SameItemDifferentUsers(t *testing.T) {
	ctx := context.Background()
	db := setupProgressDB(t)
	repo := NewGormProgressRepository()

	// 一意制約は (user_id, item_type, item_id)。ユーザーが違えば別行。
	for _, userID := range []uint{20, 21} {
		_, created, err := repo.InsertIfAbsent(ctx, db, &model.Progress{
			UserID: userID, CourseID: 1, ItemType: model.ItemTypeQuiz, ItemID: "q1", CompletedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.True(t, created)
	}

	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func Test_gormProgressRepository_FindByUserAndCourse(t *testing.T) {
	ctx := context.Background()
	db := setupProgressDB(t)
	repo := NewGormProgressRepository()

	base := time.Now().Add(-time.Hour)
	rows := []model.Progress{
		{UserID: 20, CourseID: 1, ItemType: model.ItemTypeLesson, ItemID: "l2", CompletedAt: base.Add(10 * time.Minute)},
		{UserID: 20, CourseID: 1, ItemType: model.ItemTypeLesson, ItemID: "l1", CompletedAt: base},
		{UserID: 20, CourseID: 2, ItemType: model.ItemTypeLesson, ItemID: "x1", CompletedAt: base}, // 別コース
		{UserID: 21, CourseID: 1, ItemType: model.ItemTypeLesson, ItemID: "l1", CompletedAt: base}, // 別ユーザー
	}
	require.NoError(t, db.Create(&rows).Error)

	records, err := repo.FindByUserAndCourse(ctx, db, 20, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// 完了日時の昇順で返る
	assert.Equal(t, "l1", records[0].ItemID)
	assert.Equal(t, "l2", records[1].ItemID)
}

func Test_gormProgressRepository_DeleteByUserAndCourse(t *testing.T) {
	ctx := context.Background()
	db := setupProgressDB(t)
	repo := NewGormProgressRepository()

	rows := []model.Progress{
		{UserID: 20, CourseID: 1, ItemType: model.ItemTypeLesson, ItemID: "l1", CompletedAt: time.Now()},
		{UserID: 20, CourseID: 1, ItemType: model.ItemTypeQuiz, ItemID: "q1", CompletedAt: time.Now()},
		{UserID: 20, CourseID: 2, ItemType: model.ItemTypeLesson, ItemID: "x1", CompletedAt: time.Now()},
	}
	require.NoError(t, db.Create(&rows).Error)

	deleted, err := repo.DeleteByUserAndCourse(ctx, db, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// 他コースの記録は残る
	remaining, err := repo.FindByUserAndCourse(ctx, db, 20, 2)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	// 対象がなければ 0 件削除で成功する
	deleted, err = repo.DeleteByUserAndCourse(ctx, db, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func Test_gormProgressRepository_FindByUserAndItem_NotFound(t *testing.T) {
	ctx := context.Background()
	db := setupProgressDB(t)
	repo := NewGormProgressRepository()

	_, err := repo.FindByUserAndItem(ctx, db, 20, model.ItemTypeLesson, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
