//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartcourse/internal/middleware"
	"smartcourse/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRepository はコンテンツツリー (MongoDB) への読み書きを担います。
// コース1件につき1ドキュメント。配列要素の更新は arrayFilters で行う。
type ContentRepository interface {
	Upsert(ctx context.Context, content *model.CourseContent) error
	FindByCourse(ctx context.Context, courseID uint) (*model.CourseContent, error)
	AddModule(ctx context.Context, courseID uint, module *model.Module) error
	UpdateModule(ctx context.Context, courseID uint, moduleID string, updates bson.M) error
	DeactivateModule(ctx context.Context, courseID uint, moduleID string) error
	AddLesson(ctx context.Context, courseID uint, moduleID string, lesson *model.Lesson) error
	UpdateLesson(ctx context.Context, courseID uint, moduleID, lessonID string, updates bson.M) error
	DeactivateLesson(ctx context.Context, courseID uint, moduleID, lessonID string) error
	AddResource(ctx context.Context, courseID uint, moduleID, lessonID string, resource *model.Resource) error
	SetResources(ctx context.Context, courseID uint, moduleID, lessonID string, resources []model.Resource) error
	DeleteByCourse(ctx context.Context, courseID uint) error
}

type mongoContentRepository struct {
	collection *mongo.Collection
}

func NewMongoContentRepository(db *mongo.Database) ContentRepository {
	return &mongoContentRepository{
		collection: db.Collection("course_contents"),
	}
}

func (r *mongoContentRepository) Upsert(ctx context.Context, content *model.CourseContent) error {
	logger := middleware.GetLogger(ctx)
	now := time.Now()
	content.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"modules":    content.Modules,
			"metadata":   content.Metadata,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"course_id":  content.CourseID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"course_id": content.CourseID}, update, opts); err != nil {
		logger.Error("Error upserting course content in MongoDB",
			"error", err,
			"course_id", content.CourseID,
		)
		return fmt.Errorf("mongoContentRepository.Upsert: %w", err)
	}
	return nil
}

func (r *mongoContentRepository) FindByCourse(ctx context.Context, courseID uint) (*model.CourseContent, error) {
	logger := middleware.GetLogger(ctx)
	var content model.CourseContent
	err := r.collection.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course content in MongoDB",
			"error", err,
			"course_id", courseID,
		)
		return nil, fmt.Errorf("mongoContentRepository.FindByCourse: %w", err)
	}
	return &content, nil
}

func (r *mongoContentRepository) AddModule(ctx context.Context, courseID uint, module *model.Module) error {
	logger := middleware.GetLogger(ctx)
	update := bson.M{
		"$push": bson.M{"modules": module},
		"$set":  bson.M{"updated_at": time.Now()},
		"$inc":  bson.M{"metadata.total_modules": 1},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"course_id": courseID}, update)
	if err != nil {
		logger.Error("Error adding module in MongoDB",
			"error", err,
			"course_id", courseID,
			"module_id", module.ModuleID,
		)
		return fmt.Errorf("mongoContentRepository.AddModule: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// UpdateModule は指定モジュールのフィールドを部分更新します。
// updates のキーは "modules.$[m].<field>" 形式に変換される。
// 対象モジュールの存在はクエリフィルタ側で判定する。arrayFilters だけに
// 頼ると要素が無くてもドキュメント自体はマッチしてしまい、欠落を検出できない。
func (r *mongoContentRepository) UpdateModule(ctx context.Context, courseID uint, moduleID string, updates bson.M) error {
	logger := middleware.GetLogger(ctx)
	set := bson.M{"updated_at": time.Now()}
	for field, value := range updates {
		set["modules.$[m]."+field] = value
	}
	filter := bson.M{"course_id": courseID, "modules.module_id": moduleID}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"m.module_id": moduleID}},
	})
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		logger.Error("Error updating module in MongoDB",
			"error", err,
			"course_id", courseID,
			"module_id", moduleID,
		)
		return fmt.Errorf("mongoContentRepository.UpdateModule: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *mongoContentRepository) DeactivateModule(ctx context.Context, courseID uint, moduleID string) error {
	return r.UpdateModule(ctx, courseID, moduleID, bson.M{"is_active": false})
}

func (r *mongoContentRepository) AddLesson(ctx context.Context, courseID uint, moduleID string, lesson *model.Lesson) error {
	logger := middleware.GetLogger(ctx)
	update := bson.M{
		"$push": bson.M{"modules.$[m].lessons": lesson},
		"$set":  bson.M{"updated_at": time.Now()},
		"$inc":  bson.M{"metadata.total_lessons": 1},
	}
	// モジュールの存在をクエリフィルタで要求する。マッチしなければ
	// $inc も $push も走らず、カウンタがずれることはない。
	filter := bson.M{"course_id": courseID, "modules.module_id": moduleID}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"m.module_id": moduleID}},
	})
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		logger.Error("Error adding lesson in MongoDB",
			"error", err,
			"course_id", courseID,
			"module_id", moduleID,
			"lesson_id", lesson.LessonID,
		)
		return fmt.Errorf("mongoContentRepository.AddLesson: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// lessonFilter は (course, module, lesson) のパス全体が存在するドキュメント
// だけにマッチするクエリフィルタを組み立てます
func lessonFilter(courseID uint, moduleID, lessonID string) bson.M {
	return bson.M{
		"course_id": courseID,
		"modules": bson.M{
			"$elemMatch": bson.M{
				"module_id":         moduleID,
				"lessons.lesson_id": lessonID,
			},
		},
	}
}

func (r *mongoContentRepository) UpdateLesson(ctx context.Context, courseID uint, moduleID, lessonID string, updates bson.M) error {
	logger := middleware.GetLogger(ctx)
	set := bson.M{"updated_at": time.Now()}
	for field, value := range updates {
		set["modules.$[m].lessons.$[l]."+field] = value
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"m.module_id": moduleID},
			bson.M{"l.lesson_id": lessonID},
		},
	})
	result, err := r.collection.UpdateOne(ctx, lessonFilter(courseID, moduleID, lessonID), bson.M{"$set": set}, opts)
	if err != nil {
		logger.Error("Error updating lesson in MongoDB",
			"error", err,
			"course_id", courseID,
			"module_id", moduleID,
			"lesson_id", lessonID,
		)
		return fmt.Errorf("mongoContentRepository.UpdateLesson: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *mongoContentRepository) DeactivateLesson(ctx context.Context, courseID uint, moduleID, lessonID string) error {
	return r.UpdateLesson(ctx, courseID, moduleID, lessonID, bson.M{"is_active": false})
}

func (r *mongoContentRepository) AddResource(ctx context.Context, courseID uint, moduleID, lessonID string, resource *model.Resource) error {
	logger := middleware.GetLogger(ctx)
	update := bson.M{
		"$push": bson.M{"modules.$[m].lessons.$[l].resources": resource},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"m.module_id": moduleID},
			bson.M{"l.lesson_id": lessonID},
		},
	})
	result, err := r.collection.UpdateOne(ctx, lessonFilter(courseID, moduleID, lessonID), update, opts)
	if err != nil {
		logger.Error("Error adding resource in MongoDB",
			"error", err,
			"course_id", courseID,
			"module_id", moduleID,
			"lesson_id", lessonID,
		)
		return fmt.Errorf("mongoContentRepository.AddResource: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SetResources はレッスンのリソース配列を丸ごと差し替えます。
// インデックス指定の更新・削除はサービス側で配列を組み立ててから呼ぶ。
func (r *mongoContentRepository) SetResources(ctx context.Context, courseID uint, moduleID, lessonID string, resources []model.Resource) error {
	logger := middleware.GetLogger(ctx)
	if resources == nil {
		resources = []model.Resource{}
	}
	update := bson.M{
		"$set": bson.M{
			"modules.$[m].lessons.$[l].resources": resources,
			"updated_at":                          time.Now(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"m.module_id": moduleID},
			bson.M{"l.lesson_id": lessonID},
		},
	})
	result, err := r.collection.UpdateOne(ctx, lessonFilter(courseID, moduleID, lessonID), update, opts)
	if err != nil {
		logger.Error("Error setting resources in MongoDB",
			"error", err,
			"course_id", courseID,
			"module_id", moduleID,
			"lesson_id", lessonID,
		)
		return fmt.Errorf("mongoContentRepository.SetResources: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *mongoContentRepository) DeleteByCourse(ctx context.Context, courseID uint) error {
	logger := middleware.GetLogger(ctx)
	if _, err := r.collection.DeleteOne(ctx, bson.M{"course_id": courseID}); err != nil {
		logger.Error("Error deleting course content in MongoDB",
			"error", err,
			"course_id", courseID,
		)
		return fmt.Errorf("mongoContentRepository.DeleteByCourse: %w", err)
	}
	return nil
}
