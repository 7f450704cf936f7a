package service

import (
	"reflect"
	"testing"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── ParseWeekRules 测试 ──

func TestParseWeekRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []model.WeekRule
	}{
		{
			name: "区间每周",
			text: "1-16周",
			want: []model.WeekRule{{StartWeek: 1, EndWeek: 16, Interval: 1}},
		},
		{
			name: "区间单周",
			text: "3-8周单",
			want: []model.WeekRule{{StartWeek: 3, EndWeek: 8, Interval: 2}},
		},
		{
			name: "区间双周",
			text: "2-10周双",
			want: []model.WeekRule{{StartWeek: 2, EndWeek: 10, Interval: 2}},
		},
		{
			name: "单周次",
			text: "5周",
			want: []model.WeekRule{{StartWeek: 5, EndWeek: 5, Interval: 1}},
		},
		{
			name: "同格多段",
			text: "(1-2节)1-8周,11-16周单",
			want: []model.WeekRule{
				{StartWeek: 1, EndWeek: 8, Interval: 1},
				{StartWeek: 11, EndWeek: 16, Interval: 2},
			},
		},
		{
			name: "无匹配",
			text: "星期三 下午",
			want: nil,
		},
		{
			name: "空文本",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWeekRules(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWeekRules(%q) = %v，期望 %v", tt.text, got, tt.want)
			}
		})
	}
}
