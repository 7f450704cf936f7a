package service

import (
	"testing"
	"time"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── Expander 测试 ──

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("加载时区失败: %v", err)
	}
	return loc
}

// 2025-03-03 是周一
func testSemesterStart(loc *time.Location) time.Time {
	return time.Date(2025, 3, 3, 0, 0, 0, 0, loc)
}

func TestExpander_EveryWeekCount(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "高等数学", Weekday: 1, StartPeriod: 1, EndPeriod: 2,
		WeekRules: []model.WeekRule{{StartWeek: 1, EndWeek: 16, Interval: 1}},
	}

	occs := e.Expand(course, testSemesterStart(loc))
	if len(occs) != 16 {
		t.Errorf("每周规则 1-16 周应展开 16 次，实际: %d", len(occs))
	}
}

func TestExpander_BiweeklyParity(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "大学英语", Weekday: 2, StartPeriod: 3, EndPeriod: 4,
		WeekRules: []model.WeekRule{{StartWeek: 3, EndWeek: 8, Interval: 2}},
	}

	occs := e.Expand(course, testSemesterStart(loc))
	wantWeeks := []int{3, 5, 7}
	if len(occs) != len(wantWeeks) {
		t.Fatalf("隔周规则 3-8 周应展开 %d 次，实际: %d", len(wantWeeks), len(occs))
	}
	for i, occ := range occs {
		if occ.WeekNumber != wantWeeks[i] {
			t.Errorf("第 %d 次周次期望 %d，实际: %d", i, wantWeeks[i], occ.WeekNumber)
		}
		if (occ.WeekNumber-3)%2 != 0 {
			t.Errorf("隔周展开只应保留与起始周同奇偶的周，出现周次: %d", occ.WeekNumber)
		}
	}
}

func TestExpander_FirstWeekMondayTimes(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "高等数学", Weekday: 1, StartPeriod: 1, EndPeriod: 2,
		WeekRules: []model.WeekRule{{StartWeek: 1, EndWeek: 1, Interval: 1}},
	}

	occs := e.Expand(course, testSemesterStart(loc))
	if len(occs) != 1 {
		t.Fatalf("期望 1 次上课，实际: %d", len(occs))
	}

	occ := occs[0]
	wantStart := time.Date(2025, 3, 3, 8, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 3, 3, 9, 40, 0, 0, loc) // 8:55 + 45 分钟
	if !occ.Start.Equal(wantStart) {
		t.Errorf("开始时间期望 %v，实际: %v", wantStart, occ.Start)
	}
	if !occ.End.Equal(wantEnd) {
		t.Errorf("结束时间期望 %v，实际: %v", wantEnd, occ.End)
	}
}

func TestExpander_WeekdayOffset(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "电路实验", Weekday: 3, StartPeriod: 5, EndPeriod: 6,
		WeekRules: []model.WeekRule{{StartWeek: 2, EndWeek: 2, Interval: 1}},
	}

	occs := e.Expand(course, testSemesterStart(loc))
	if len(occs) != 1 {
		t.Fatalf("期望 1 次上课，实际: %d", len(occs))
	}
	// 第 2 周周三 = 起始周一 + 7 + 2 天
	wantDate := time.Date(2025, 3, 12, 14, 0, 0, 0, loc)
	if !occs[0].Start.Equal(wantDate) {
		t.Errorf("开始时间期望 %v，实际: %v", wantDate, occs[0].Start)
	}
}

func TestExpander_MultipleRules(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "高等数学", Weekday: 1, StartPeriod: 1, EndPeriod: 2,
		WeekRules: []model.WeekRule{
			{StartWeek: 1, EndWeek: 8, Interval: 1},
			{StartWeek: 11, EndWeek: 16, Interval: 2},
		},
	}

	occs := e.Expand(course, testSemesterStart(loc))
	// 8 次每周 + 11,13,15 三次隔周
	if len(occs) != 11 {
		t.Errorf("多规则展开期望 11 次，实际: %d", len(occs))
	}
}

func TestExpander_UnknownPeriod(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "异常课程", Weekday: 1, StartPeriod: 11, EndPeriod: 12, // 时刻表外
		WeekRules: []model.WeekRule{{StartWeek: 1, EndWeek: 4, Interval: 1}},
	}

	if occs := e.Expand(course, testSemesterStart(loc)); len(occs) != 0 {
		t.Errorf("时刻表外节次应产出零次上课，实际: %d", len(occs))
	}
}

func TestExpander_InvertedRange(t *testing.T) {
	loc := testLocation(t)
	e := NewExpander(loc, 45)

	course := model.Course{
		Name: "异常课程", Weekday: 1, StartPeriod: 1, EndPeriod: 2,
		WeekRules: []model.WeekRule{{StartWeek: 8, EndWeek: 3, Interval: 1}},
	}

	if occs := e.Expand(course, testSemesterStart(loc)); len(occs) != 0 {
		t.Errorf("起止倒挂的规则应产出零次上课而非报错，实际: %d", len(occs))
	}
}
