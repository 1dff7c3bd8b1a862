package models

import (
	"time"
)

// CustomerActivity 表示客户的活跃状态（派生值，不入库）
type CustomerActivity string

const (
	// CustomerActive 客户当前持有至少一个号码
	CustomerActive CustomerActivity = "active"
	// CustomerInactive 客户仅出现在历史记录中，当前未持有号码
	CustomerInactive CustomerActivity = "inactive"
)

// BlockSummary 表示一个号段的汇总统计。
// 号段不是存储实体，由号码按前缀（去掉末尾两位）分组派生。
type BlockSummary struct {
	Prefix         string     `json:"prefix"` // 形如 03612812XX
	Total          int64      `json:"total"`
	Used           int64      `json:"used"`
	Available      int64      `json:"available"`
	ActivationDate *time.Time `json:"activationDate"` // 号段内最早的 ACTIVATION 事件时间，无则为空
}

// CustomerSummary 表示一个客户的汇总信息。
// 客户是派生身份：当前分配或历史记录中出现过的非空客户名。
type CustomerSummary struct {
	ClientName  string           `json:"clientName"`
	PhoneCount  int64            `json:"phoneCount"`
	ActiveCount int64            `json:"activeCount"`
	Status      CustomerActivity `json:"status"`
}

// CustomerPhone 表示客户名下（当前或曾经）的一个号码
type CustomerPhone struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`
	CurrentStatus PhoneStatus `json:"currentStatus"`
	CurrentClient *string     `json:"currentClient"`
	IsActive      bool        `json:"isActive"`
	ReturnDate    *time.Time  `json:"returnDate"` // 非当前持有时为对应历史事件的时间
}
