package models

import (
	"time"
)

// PhoneStatus 定义了电话号码的状态类型
type PhoneStatus string

const (
	// StatusFree 号码空闲，未分配给任何客户
	StatusFree PhoneStatus = "FREE"
	// StatusInUse 号码在用，已分配给某个客户
	StatusInUse PhoneStatus = "IN_USE"
)

// IsValidPhoneStatus 检查状态值是否为合法的号码状态
func IsValidPhoneStatus(s string) bool {
	switch PhoneStatus(s) {
	case StatusFree, StatusInUse:
		return true
	}
	return false
}

// PhoneNumber 对应于数据库中的 phone_numbers 表
type PhoneNumber struct {
	ID            string      `json:"id" gorm:"primaryKey;type:uuid"`
	Number        string      `json:"number" gorm:"column:number;unique;not null;size:50;index:idx_phone_number"`
	CurrentStatus PhoneStatus `json:"currentStatus" gorm:"column:current_status;not null;default:'FREE';size:20;index:idx_phone_status"`
	CurrentClient *string     `json:"currentClient" gorm:"column:current_client;index:idx_phone_client"` // 仅在状态为 IN_USE 时非空
	CreatedAt     time.Time   `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt     time.Time   `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`

	// History 为该号码的使用历史，按需预加载
	History []UsageHistoryEntry `json:"history,omitempty" gorm:"foreignKey:PhoneID;references:ID"`
}

// TableName 指定 PhoneNumber 结构体对应的数据库表名
func (PhoneNumber) TableName() string {
	return "phone_numbers"
}

// BlockPrefix 返回该号码所属号段的前缀（号码去掉末尾两位）
func (p PhoneNumber) BlockPrefix() string {
	if len(p.Number) <= 2 {
		return ""
	}
	return p.Number[:len(p.Number)-2]
}
