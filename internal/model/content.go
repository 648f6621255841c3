// internal/model/content.go
package model

import (
	"time"
)

// Resource はレッスンに添付されるメディアリソース
type Resource struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // video, pdf, audio, image, link
}

// Lesson はモジュール内の1レッスン。
// lesson_id はコースのIDとは別系統の不透明な文字列キー。
type Lesson struct {
	LessonID        string     `bson:"lesson_id" json:"lesson_id"`
	Title           string     `bson:"title" json:"title"`
	Type            string     `bson:"type" json:"type"` // video, text, quiz, assignment
	Content         string     `bson:"content,omitempty" json:"content,omitempty"`
	DurationMinutes *int       `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
	Order           int        `bson:"order" json:"order"`
	IsPreview       bool       `bson:"is_preview" json:"is_preview"`
	IsActive        bool       `bson:"is_active" json:"is_active"`
	Resources       []Resource `bson:"resources" json:"resources"`
}

// QuizRef はモジュールに属するクイズへの参照
type QuizRef struct {
	QuizID   string `bson:"quiz_id" json:"quiz_id"`
	Title    string `bson:"title" json:"title"`
	Order    int    `bson:"order" json:"order"`
	IsActive bool   `bson:"is_active" json:"is_active"`
}

// SummaryRef はモジュールに属するまとめ教材への参照
type SummaryRef struct {
	SummaryID string `bson:"summary_id" json:"summary_id"`
	Title     string `bson:"title" json:"title"`
	Order     int    `bson:"order" json:"order"`
	IsActive  bool   `bson:"is_active" json:"is_active"`
}

// Module はコンテンツツリーの1モジュール。
// 削除は is_active=false の論理削除のみ。発行済み修了証や進捗の
// 参照整合性を保つため、ルーチン操作で要素を物理削除することはない。
type Module struct {
	ModuleID    string       `bson:"module_id" json:"module_id"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Order       int          `bson:"order" json:"order"`
	IsActive    bool         `bson:"is_active" json:"is_active"`
	Lessons     []Lesson     `bson:"lessons" json:"lessons"`
	Quizzes     []QuizRef    `bson:"quizzes" json:"quizzes"`
	Summaries   []SummaryRef `bson:"summaries" json:"summaries"`
}

// ContentMetadata はコンテンツツリーに付随するメタ情報
type ContentMetadata struct {
	TotalModules       int      `bson:"total_modules" json:"total_modules"`
	TotalLessons       int      `bson:"total_lessons" json:"total_lessons"`
	TotalDurationHours *float64 `bson:"total_duration_hours,omitempty" json:"total_duration_hours,omitempty"`
	Tags               []string `bson:"tags" json:"tags"`
}

// CourseContent はコース1件につき1ドキュメントのコンテンツツリー (MongoDB)
type CourseContent struct {
	CourseID  uint             `bson:"course_id" json:"course_id"`
	Modules   []Module         `bson:"modules" json:"modules"`
	Metadata  *ContentMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at" json:"updated_at"`
}

// ContentItemRef は進捗集計で使う (種別, ID) の組
type ContentItemRef struct {
	Type string
	ID   string
}

// ActiveItems は有効なモジュール配下の有効なレッスン・クイズ・まとめを列挙します。
// 進捗率の分母はこの結果の件数。論理削除されたものは数えない。
func (c *CourseContent) ActiveItems() []ContentItemRef {
	var items []ContentItemRef
	for _, m := range c.Modules {
		if !m.IsActive {
			continue
		}
		for _, l := range m.Lessons {
			if !l.IsActive {
				continue
			}
			items = append(items, ContentItemRef{Type: ItemTypeLesson, ID: l.LessonID})
		}
		for _, q := range m.Quizzes {
			if !q.IsActive {
				continue
			}
			items = append(items, ContentItemRef{Type: ItemTypeQuiz, ID: q.QuizID})
		}
		for _, s := range m.Summaries {
			if !s.IsActive {
				continue
			}
			items = append(items, ContentItemRef{Type: ItemTypeSummary, ID: s.SummaryID})
		}
	}
	return items
}

// コンテンツ全置換リクエストDTO
type UpsertContentRequest struct {
	Modules  []Module         `json:"modules" validate:"dive"`
	Metadata *ContentMetadata `json:"metadata,omitempty"`
}

// モジュール追加リクエストDTO
type AddModuleRequest struct {
	ModuleID    string   `json:"module_id" validate:"required,max=50"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order" validate:"gte=0"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}

// レッスン追加リクエストDTO
type AddLessonRequest struct {
	LessonID        string     `json:"lesson_id" validate:"required,max=50"`
	Title           string     `json:"title" validate:"required,max=255"`
	Type            string     `json:"type" validate:"required,oneof=video text quiz assignment"`
	Content         string     `json:"content,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	Order           int        `json:"order" validate:"gte=0"`
	IsPreview       bool       `json:"is_preview,omitempty"`
	Resources       []Resource `json:"resources,omitempty"`
}

// モジュール更新（部分）リクエストDTO
type UpdateModuleRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// レッスン更新（部分）リクエストDTO
type UpdateLessonRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Type            *string `json:"type,omitempty" validate:"omitempty,oneof=video text quiz assignment"`
	Content         *string `json:"content,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	Order           *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
	IsPreview       *bool   `json:"is_preview,omitempty"`
}

// リソース追加リクエストDTO
type AddResourceRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required,max=500"`
	Type string `json:"type" validate:"required,oneof=video pdf audio image link"`
}

// リソース更新（部分）リクエストDTO
type UpdateResourceRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	URL  *string `json:"url,omitempty" validate:"omitempty,min=1,max=500"`
	Type *string `json:"type,omitempty" validate:"omitempty,oneof=video pdf audio image link"`
}
