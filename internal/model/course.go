package model

import (
	"fmt"
	"time"
)

// WeekRule 周次规则
//
// Interval = 1 表示每周，2 表示隔周（从 StartWeek 起，单双周均归一为此形式）。
// 起止周倒挂的规则合法但展开结果为空，与教务系统原始文本的容错语义一致。
type WeekRule struct {
	StartWeek int `json:"start_week"`
	EndWeek   int `json:"end_week"`
	Interval  int `json:"interval"`
}

// LocationRecord 解析后的上课地点
//
// Formatted 为规范短显示形式（校区+教室号优先），Raw 保留原始字符串以便追溯。
type LocationRecord struct {
	Formatted string `json:"formatted"`
	Campus    string `json:"campus"`
	Room      string `json:"room"`
	LabName   string `json:"lab_name"`
	Raw       string `json:"raw"`
}

// Course 一条课程记录
//
// 普通课与实验课共用此结构；实验课（IsLab=true）额外携带实验项目名与
// 多地点合并备注。记录仅存活于一次生成过程，不落库。
type Course struct {
	Name        string
	Weekday     int // 1=周一 … 7=周日
	StartPeriod int // 起始节次（1 起）
	EndPeriod   int
	WeekRules   []WeekRule
	Location    string // 显示用地点，多地点以顿号连接
	Locations   []LocationRecord
	Teacher     string
	IsLab       bool
	LabDetail   string // 实验项目名称
	MergeNote   string // 多地点合并备注
}

// Validate 构造期校验：星期与节次范围必须合法
func (c *Course) Validate() error {
	if c.Weekday < 1 || c.Weekday > 7 {
		return fmt.Errorf("非法星期 %d（应为 1-7）", c.Weekday)
	}
	if c.StartPeriod < 1 || c.EndPeriod < c.StartPeriod {
		return fmt.Errorf("非法节次区间 %d-%d", c.StartPeriod, c.EndPeriod)
	}
	return nil
}

// Occurrence 单次上课（按周展开的具体时间，随用随弃）
type Occurrence struct {
	WeekNumber int
	Weekday    int
	Start      time.Time
	End        time.Time
}
