// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "smartcourse"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort    = ":8080"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultPageLimit     = 20
	DefaultMongoDatabase = "smartcourse"
)

// キャッシュTTL。キャッシュは正となるストアから常に再構築できるため、
// 失効漏れがあってもTTLで上限が決まる。
const (
	CourseDetailTTL    = 600 * time.Second  // コース詳細
	PublishedListTTL   = 300 * time.Second  // 公開コース一覧 (ページ単位)
	EnrollmentFlagTTL  = 1800 * time.Second // 受講済みフラグ (滅多に変わらない)
	EnrollmentCountTTL = 300 * time.Second  // コース別受講者数
	ContentTTL         = 900 * time.Second  // コンテンツツリー
)
