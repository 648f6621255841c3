// internal/repository/content_repository_test.go
package repository

import (
	"context"
	"testing"

	"smartcourse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// updateFilter は update コマンドの started イベントからクエリフィルタ (q) を取り出します
func updateFilter(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt.T, evt)
	require.Equal(mt.T, "update", evt.CommandName)
	return evt.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("q").Document()
}

// 存在しないモジュール・レッスンへの更新は、配列要素の一致を
// クエリフィルタ側に含めることで MatchedCount=0 として検出される。
// arrayFilters だけだとドキュメント自体はマッチしてしまう。
func Test_mongoContentRepository_MissingPathIsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	noMatch := mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 0},
		bson.E{Key: "nModified", Value: 0},
	)

	mt.Run("存在しないモジュールの更新はNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)
		repo := NewMongoContentRepository(mt.DB)

		err := repo.UpdateModule(context.Background(), 1, "ghost", bson.M{"title": "x"})
		assert.ErrorIs(mt.T, err, model.ErrNotFound)

		q := updateFilter(mt)
		assert.Equal(mt.T, "ghost", q.Lookup("modules.module_id").StringValue())
	})

	mt.Run("存在しないレッスンの無効化はNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)
		repo := NewMongoContentRepository(mt.DB)

		err := repo.DeactivateLesson(context.Background(), 1, "m1", "ghost")
		assert.ErrorIs(mt.T, err, model.ErrNotFound)

		// モジュールとレッスンの両方が $elemMatch でフィルタに入っていること
		q := updateFilter(mt)
		elem := q.Lookup("modules", "$elemMatch")
		assert.Equal(mt.T, "m1", elem.Document().Lookup("module_id").StringValue())
		assert.Equal(mt.T, "ghost", elem.Document().Lookup("lessons.lesson_id").StringValue())
	})

	mt.Run("存在しないモジュールへのレッスン追加はNotFoundでカウンタも増えない", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)
		repo := NewMongoContentRepository(mt.DB)

		err := repo.AddLesson(context.Background(), 1, "ghost", &model.Lesson{LessonID: "l9", Title: "new"})
		assert.ErrorIs(mt.T, err, model.ErrNotFound)

		// $inc はフィルタにマッチしたドキュメントだけに適用されるので、
		// module_id がフィルタに入っていれば total_lessons が狂うことはない
		q := updateFilter(mt)
		assert.Equal(mt.T, "ghost", q.Lookup("modules.module_id").StringValue())
	})

	mt.Run("存在しないレッスンへのリソース追加はNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(noMatch)
		repo := NewMongoContentRepository(mt.DB)

		err := repo.AddResource(context.Background(), 1, "m1", "ghost", &model.Resource{Name: "slides", Type: "pdf"})
		assert.ErrorIs(mt.T, err, model.ErrNotFound)
	})
}

func Test_mongoContentRepository_MatchedPathSucceeds(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	matched := mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 1},
		bson.E{Key: "nModified", Value: 1},
	)

	mt.Run("実在するモジュールの更新は成功する", func(mt *mtest.T) {
		mt.AddMockResponses(matched)
		repo := NewMongoContentRepository(mt.DB)

		err := repo.UpdateModule(context.Background(), 1, "m1", bson.M{"title": "改訂版"})
		require.NoError(mt.T, err)
	})

	mt.Run("既存の値と同じ値での更新もNotFoundにならない", func(mt *mtest.T) {
		// マッチしたが変更なし (nModified=0)。パスは実在するので成功扱い。
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewMongoContentRepository(mt.DB)

		err := repo.UpdateLesson(context.Background(), 1, "m1", "l1", bson.M{"is_active": true})
		require.NoError(mt.T, err)
	})
}
