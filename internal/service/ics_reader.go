package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Jiale23/ConvertIcs-Script/internal/dto"
)

// ── ICS 导入预览 ──
//
// 把用户手头已有的日历文件解析为事件列表，便于对照或迁移。
// 仅解析 SUMMARY / DTSTART / DTEND / LOCATION / DESCRIPTION，
// 无法解析时间的事件按行级策略跳过。

// ParseICS 解析 iCalendar 内容为导入事件列表
func ParseICS(reader io.Reader, loc *time.Location) ([]dto.ImportedEvent, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	var events []dto.ImportedEvent
	for _, evt := range cal.Events() {
		summary := propertyValue(evt, ics.ComponentPropertySummary)
		if summary == "" {
			continue
		}

		start, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
		if err != nil {
			continue
		}
		end, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
		if err != nil {
			continue
		}

		events = append(events, dto.ImportedEvent{
			Summary:     summary,
			Start:       start.Format(time.RFC3339),
			End:         end.Format(time.RFC3339),
			Weekday:     isoWeekday(start.Weekday()),
			Location:    propertyValue(evt, ics.ComponentPropertyLocation),
			Description: propertyValue(evt, ics.ComponentPropertyDescription),
		})
	}
	return events, nil
}

func propertyValue(evt *ics.VEvent, name ics.ComponentProperty) string {
	prop := evt.GetProperty(name)
	if prop == nil {
		return ""
	}
	return strings.TrimSpace(prop.Value)
}

// isoWeekday 将 Go 的 time.Weekday (0=Sunday) 转为 ISO 8601 (1=Monday … 7=Sunday)
func isoWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("缺少属性 %s", propName)
	}
	val := prop.Value

	// 常见 ICS 日期格式逐一尝试
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	// 检查 TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		t, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		if strings.HasSuffix(layout, "Z") {
			return t.In(loc), nil
		}
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(),
					t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}
