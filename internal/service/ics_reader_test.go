package service

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ── ParseICS 测试 ──

func TestParseICS_Success(t *testing.T) {
	loc := testLocation(t)

	cal := ics.NewCalendar()
	cal.SetProductId("-//Test//Course//CN")
	evt := cal.AddEvent("test-uid@example")
	evt.SetSummary("高等数学")
	// 2025-03-03 周一 08:00 +08 = 00:00Z
	evt.SetStartAt(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	evt.SetEndAt(time.Date(2025, 3, 3, 1, 40, 0, 0, time.UTC))
	evt.SetLocation("龙洞校区B6-101")
	evt.SetDescription("第1周")

	events, err := ParseICS(strings.NewReader(cal.Serialize()), loc)
	if err != nil {
		t.Fatalf("ParseICS 应成功: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("期望 1 个事件，实际: %d", len(events))
	}

	e := events[0]
	if e.Summary != "高等数学" {
		t.Errorf("标题不符: %s", e.Summary)
	}
	if e.Weekday != 1 {
		t.Errorf("2025-03-03 应为周一（1），实际: %d", e.Weekday)
	}
	if e.Location != "龙洞校区B6-101" {
		t.Errorf("地点不符: %s", e.Location)
	}
	if !strings.HasPrefix(e.Start, "2025-03-03T08:00:00") {
		t.Errorf("开始时间应转为本地时区，实际: %s", e.Start)
	}
}

func TestParseICS_SkipEventWithoutSummary(t *testing.T) {
	loc := testLocation(t)

	cal := ics.NewCalendar()
	evt := cal.AddEvent("no-summary@example")
	evt.SetStartAt(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	evt.SetEndAt(time.Date(2025, 3, 3, 1, 0, 0, 0, time.UTC))

	events, err := ParseICS(strings.NewReader(cal.Serialize()), loc)
	if err != nil {
		t.Fatalf("ParseICS 应成功: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("无标题事件应被跳过，实际: %d", len(events))
	}
}

func TestParseICS_BadContent(t *testing.T) {
	loc := testLocation(t)
	if _, err := ParseICS(strings.NewReader("这不是日历"), loc); err == nil {
		t.Error("非法内容应返回错误")
	}
}

// 自家序列化器的输出也应能被导入预览读回
func TestParseICS_OwnOutput(t *testing.T) {
	loc := testLocation(t)
	doc := buildTestDocument(t)

	events, err := ParseICS(strings.NewReader(doc), loc)
	if err != nil {
		t.Fatalf("ParseICS 应成功: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件，实际: %d", len(events))
	}
	for _, e := range events {
		if e.Summary != "高等数学" {
			t.Errorf("标题不符: %s", e.Summary)
		}
	}
}
