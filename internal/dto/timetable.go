package dto

import "github.com/Jiale23/ConvertIcs-Script/internal/model"

// LectureCell 普通课表格子的原始文本字段
//
// 由页面采集方（浏览器脚本等）按格子提交，字段内容保持教务系统原文。
type LectureCell struct {
	Weekday    int    `json:"weekday" binding:"required,min=1,max=7"`
	Name       string `json:"name"`
	PeriodWeek string `json:"period_week"` // "节/周" 栏原文，如 "(1-2节)1-8周,11-16周单"
	Location   string `json:"location"`    // "上课地点" 栏原文
	Teacher    string `json:"teacher"`     // "教师" 栏原文
}

// LabRow 实验课表一行的原始字段
//
// JSON 字段名与教务系统实验课表（sycjlrtabGrid）的列名保持一致，
// 采集方可原样转发。
type LabRow struct {
	CourseName     string `json:"kcmc"`   // 课程名称
	TimeLocation   string `json:"sksjdd"` // 上课时间地点，逗号分隔的方括号段
	LocationDetail string `json:"dycdxq"` // 地点校区明细，逗号/顿号分隔
	ProjectName    string `json:"xmmc"`   // 实验项目名称
	Teacher        string `json:"jsxm"`   // 教师姓名
}

// GenerateRequest 生成 ICS 的请求体
type GenerateRequest struct {
	SemesterStart string        `json:"semester_start" binding:"required"` // 第一周周一，YYYY-MM-DD
	Lectures      []LectureCell `json:"lectures"`
	LabRows       []LabRow      `json:"lab_rows"`
}

// SkippedRow 被跳过的原始行诊断信息
type SkippedRow struct {
	Source string `json:"source"` // lecture / lab
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CourseResponse 解析结果中的单条课程
type CourseResponse struct {
	Name      string                 `json:"name"`
	Weekday   int                    `json:"weekday"`
	Periods   string                 `json:"periods"` // 如 "1-2节"
	WeekRules []model.WeekRule       `json:"week_rules"`
	Location  string                 `json:"location,omitempty"`
	Locations []model.LocationRecord `json:"locations,omitempty"`
	Teacher   string                 `json:"teacher,omitempty"`
	IsLab     bool                   `json:"is_lab"`
	LabDetail string                 `json:"lab_detail,omitempty"`
	MergeNote string                 `json:"merge_note,omitempty"`
}

// PreviewResponse 课表解析预览
type PreviewResponse struct {
	Courses []CourseResponse `json:"courses"`
	Skipped []SkippedRow     `json:"skipped"`
}

// ImportedEvent 从现有 ICS 导入的单个事件
type ImportedEvent struct {
	Summary     string `json:"summary"`
	Start       string `json:"start"` // 本地时间 RFC3339
	End         string `json:"end"`
	Weekday     int    `json:"weekday"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// DefaultStartResponse 默认学期起始日期
type DefaultStartResponse struct {
	SemesterStart string `json:"semester_start"` // YYYY-MM-DD
}
