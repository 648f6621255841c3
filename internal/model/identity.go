// internal/model/identity.go
package model

// ユーザーロール。認証は外部のauth-sidecarが担い、
// 本サービスは検証済みヘッダー経由でID・ロールを受け取るだけ。
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Actor は操作主体 (認証済みユーザー) を表します
type Actor struct {
	UserID uint
	Role   string
}

// IsPrivileged は講師・管理者権限を持つかを返します
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleInstructor || a.Role == RoleAdmin
}

type ContextKey string

const (
	ActorKey ContextKey = "actor"
)
