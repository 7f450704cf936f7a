package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── 日历序列化 ────────────────────────────────────────────
//
// 输出为 iCalendar 文本：固定头尾行之间逐事件写入 VEVENT 块，
// 行间以 CRLF 连接。每个事件同时携带 TZID 本地时间与 UTC 绝对
// 时间两组 DTSTART/DTEND，兼容不识别时区标识的客户端。
// 同一输入两次生成必须字节一致（UID 为内容哈希）。
// ───────────────────────────────────────────────────────────

const (
	crlf = "\r\n"

	// labSummaryPrefix 实验课在标题上的标记
	labSummaryPrefix = "实验课-"
)

// Serializer 日历文档序列化器
type Serializer struct {
	prodID    string
	tzid      string
	uidPrefix string
	uidDomain string
}

// NewSerializer 创建序列化器
func NewSerializer(prodID, tzid, uidPrefix, uidDomain string) *Serializer {
	return &Serializer{
		prodID:    prodID,
		tzid:      tzid,
		uidPrefix: uidPrefix,
		uidDomain: uidDomain,
	}
}

// EventUID 事件标识：课程标识字段的 64 位内容哈希
//
// 同一 (课程名, 星期, 起止节次, 周次) 永远得到同一 UID，
// 日历客户端重复导入时按更新而非新增处理。
func (s *Serializer) EventUID(course model.Course, week int) string {
	raw := fmt.Sprintf("%s|%d|%d|%d|%d",
		course.Name, course.Weekday, course.StartPeriod, course.EndPeriod, week)
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s-%s@%s", s.uidPrefix, hex.EncodeToString(sum[:8]), s.uidDomain)
}

// Build 组装完整日历文档
//
// occurrencesOf 由调用方注入（通常为 Expander.Expand 的闭包），
// 序列化器本身不关心周次展开规则。
func (s *Serializer) Build(courses []model.Course, occurrencesOf func(model.Course) []model.Occurrence) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + s.prodID,
		"CALSCALE:GREGORIAN",
	}

	for _, course := range courses {
		for _, occ := range occurrencesOf(course) {
			lines = s.appendEvent(lines, course, occ)
		}
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, crlf)
}

// appendEvent 写入单个 VEVENT 块
func (s *Serializer) appendEvent(lines []string, course model.Course, occ model.Occurrence) []string {
	lines = append(lines,
		"BEGIN:VEVENT",
		"UID:"+s.EventUID(course, occ.WeekNumber),
		fmt.Sprintf("DTSTART;TZID=%s:%s", s.tzid, formatLocal(occ.Start)),
		fmt.Sprintf("DTEND;TZID=%s:%s", s.tzid, formatLocal(occ.End)),
		"DTSTART:"+formatUTC(occ.Start),
		"DTEND:"+formatUTC(occ.End),
		"SUMMARY:"+summaryOf(course),
	)

	if course.Location != "" {
		lines = append(lines, "LOCATION:"+escapeText(course.Location))
	}

	if desc := describeOccurrence(course, occ.WeekNumber); desc != "" {
		lines = append(lines, "DESCRIPTION:"+desc)
	}

	return append(lines, "END:VEVENT")
}

// Filename 根据学期起始日期推导文件名
//
// 8 月及之后视为第 1 学期（跨到次年），否则为上一学年的第 2 学期。
func (s *Serializer) Filename(semesterStart time.Time) string {
	year := semesterStart.Year()
	if int(semesterStart.Month()) >= 8 {
		return fmt.Sprintf("%d-%d-第1学期-课表.ics", year, year+1)
	}
	return fmt.Sprintf("%d-%d-第2学期-课表.ics", year-1, year)
}

// ── 内部辅助 ──

func summaryOf(course model.Course) string {
	if course.IsLab {
		return labSummaryPrefix + escapeText(course.Name)
	}
	return escapeText(course.Name)
}

// describeOccurrence 组装事件描述：周次、实验项目、教师、地点备注
func describeOccurrence(course model.Course, week int) string {
	parts := []string{fmt.Sprintf("第%d周", week)}
	if course.IsLab && course.LabDetail != "" {
		parts = append(parts, "实验项目："+course.LabDetail)
	}
	if course.Teacher != "" {
		parts = append(parts, "教师："+course.Teacher)
	}
	if course.IsLab && course.MergeNote != "" {
		parts = append(parts, course.MergeNote)
	}
	for i, p := range parts {
		parts[i] = escapeText(p)
	}
	return strings.Join(parts, `\n`)
}

// escapeText 转义 ICS 文本值中的换行，防止破坏行结构
func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", `\n`)
	text = strings.ReplaceAll(text, "\n", `\n`)
	return text
}

// formatLocal 本地墙上时间，配合 TZID 参数使用
func formatLocal(t time.Time) string {
	return t.Format("20060102T150405")
}

// formatUTC 等价的 UTC 绝对时间
func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405") + "Z"
}
