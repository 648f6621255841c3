// internal/cache/keys.go
package cache

import "fmt"

// キャッシュキーの命名規約。course: プレフィックスの下に用途別の階層を切る。
// パターン削除で一掃する一覧系キーは末尾にパラメータを並べる。
const (
	// 公開コース一覧 (全ページ) を一括失効するためのパターン
	PublishedListPattern = "course:published:*"
)

// CourseDetailKey はコース詳細のキー
func CourseDetailKey(courseID uint) string {
	return fmt.Sprintf("course:detail:%d", courseID)
}

// PublishedListKey は公開コース一覧のページ単位キー
func PublishedListKey(skip, limit int) string {
	return fmt.Sprintf("course:published:%d:%d", skip, limit)
}

// EnrolledKey は受講済みフラグのキー
func EnrolledKey(studentID, courseID uint) string {
	return fmt.Sprintf("course:enrolled:%d:%d", studentID, courseID)
}

// EnrollmentCountKey はコース別受講者数のキー
func EnrollmentCountKey(courseID uint) string {
	return fmt.Sprintf("course:enrollment_count:%d", courseID)
}

// ContentKey はコンテンツツリーのキー
func ContentKey(courseID uint) string {
	return fmt.Sprintf("course:content:%d", courseID)
}
