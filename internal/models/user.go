package models

import "time"

// 角色常量。anonymous 是虚拟角色，只存在于未登录的会话状态，从不落盘。
const (
	RoleAdmin      = "admin"
	RoleConsultant = "consultant"
	RoleMember     = "member"
	RoleUser       = "user"
	RoleAnonymous  = "anonymous"
)

var roleRank = map[string]int{
	RoleAnonymous:  0,
	RoleUser:       1,
	RoleMember:     2,
	RoleConsultant: 3,
	RoleAdmin:      4,
}

// IsValidRole 判断角色是否为可持久化的合法角色
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleConsultant || role == RoleMember || role == RoleUser
}

// RoleAtLeast 判断 role 的权限是否不低于 min
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Salt           string    `json:"salt"`
	HashedPassword string    `json:"hashed_password"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserInfo 对外返回的用户信息，不含口令相关字段
type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserRegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" form:"password" validate:"max=72"`
}

type UserLoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password"`
}

type AdminCreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"max=72"`
	Role     string `json:"role" validate:"required,userrole"`
}

type AdminResetPasswordRequest struct {
	Password string `json:"password" validate:"max=72"`
}
