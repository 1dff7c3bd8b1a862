package models

import (
	"time"
)

// HistoryEventType 定义了号码使用历史的事件类型
type HistoryEventType string

const (
	// EventActivation 号段开通事件，clientName 为空
	EventActivation HistoryEventType = "ACTIVATION"
	// EventAssigned 号码分配给客户事件
	EventAssigned HistoryEventType = "ASSIGNED"
	// EventDeassigned 号码从客户回收事件
	EventDeassigned HistoryEventType = "DEASSIGNED"
	// EventReassigned 号码更换客户事件
	EventReassigned HistoryEventType = "REASSIGNED"
)

// IsValidHistoryEventType 检查事件类型是否合法
func IsValidHistoryEventType(s string) bool {
	switch HistoryEventType(s) {
	case EventActivation, EventAssigned, EventDeassigned, EventReassigned:
		return true
	}
	return false
}

// UsageHistoryEntry 对应于数据库中的 usage_history 表。
// 历史记录只追加不删除（随所属号码级联删除除外），
// 但 event_date 允许管理员事后修正。
type UsageHistoryEntry struct {
	ID         string           `json:"id" gorm:"primaryKey;type:uuid"`
	PhoneID    string           `json:"phoneId" gorm:"column:phone_id;type:uuid;not null;index:idx_history_phone_id"`
	EventType  HistoryEventType `json:"eventType" gorm:"column:event_type;not null;size:20"`
	ClientName *string          `json:"clientName" gorm:"column:client_name"` // ACTIVATION 事件为空
	EventDate  time.Time        `json:"eventDate" gorm:"column:event_date;not null;index:idx_history_event_date"`
	Notes      *string          `json:"notes,omitempty" gorm:"column:notes;type:text"`
}

// TableName 指定 UsageHistoryEntry 结构体对应的数据库表名
func (UsageHistoryEntry) TableName() string {
	return "usage_history"
}
