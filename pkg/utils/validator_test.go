package utils

import (
	"testing"
	"time"
)

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"02125617950", true},
		{"0", true},
		{"", false},
		{"021a56", false},
		{"021 256", false},
		{"-123", false},
	}
	for _, tc := range cases {
		if got := IsNumeric(tc.input); got != tc.want {
			t.Errorf("IsNumeric(%q) = %v, 期望 %v", tc.input, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-3-5", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{" 2024-03-15 ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range valid {
		got, err := ParseDate(tc.input)
		if err != nil {
			t.Errorf("ParseDate(%q) 出错: %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, 期望 %v", tc.input, got, tc.want)
		}
	}

	invalid := []string{"", "2024.03.15", "15-03-2024", "not-a-date"}
	for _, input := range invalid {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) 应返回错误", input)
		}
	}
}

func TestValidateEmailFormat(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.cn", true},
		{"", true}, // 空由业务逻辑决定
		{"no-at-sign", false},
		{"user@", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		if got := ValidateEmailFormat(tc.input); got != tc.want {
			t.Errorf("ValidateEmailFormat(%q) = %v, 期望 %v", tc.input, got, tc.want)
		}
	}
}
