package models

import (
	"time"
)

// UserRole 定义了用户角色类型
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// IsValidUserRole 检查角色值是否合法
func IsValidUserRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// UserStatus 定义了用户审批状态类型
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// IsValidUserStatus 检查审批状态值是否合法
func IsValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return true
	}
	return false
}

// User 对应于数据库中的 users 表。
// 身份认证由外部身份提供方完成，本表只保存档案和授权信息，不存储凭证。
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Email     string     `json:"email" gorm:"column:email;unique;not null;size:255;index:idx_users_email"`
	Name      *string    `json:"name" gorm:"column:name;size:255"`
	Image     *string    `json:"image" gorm:"column:image"`
	Role      UserRole   `json:"role" gorm:"column:role;not null;default:'user';size:50"`
	Status    UserStatus `json:"status" gorm:"column:status;not null;default:'pending';size:50;index:idx_users_status"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}
