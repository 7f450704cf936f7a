package service

import (
	"time"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// periodClock 节次 → 上课开始时刻（时、分）
//
// 固定十节课制；下课时刻 = 结束节次开始时刻 + 单节课时长，
// 全部节次都在当天之内，无跨午夜情况。
var periodClock = map[int][2]int{
	1: {8, 0}, 2: {8, 55}, 3: {10, 0}, 4: {10, 55},
	5: {14, 0}, 6: {14, 55}, 7: {16, 0}, 8: {16, 55},
	9: {19, 0}, 10: {19, 55},
}

// Expander 按周次规则将课程展开为具体上课时间
type Expander struct {
	loc          *time.Location
	classMinutes int
}

// NewExpander 创建展开器；loc 为课表时区，classMinutes 为单节课时长
func NewExpander(loc *time.Location, classMinutes int) *Expander {
	return &Expander{loc: loc, classMinutes: classMinutes}
}

// Expand 展开单门课程
//
// semesterStart 为第一周周一的日期。隔周规则只保留与起始周同奇偶的周；
// 节次不在时刻表内或规则区间为空时产出零条记录，不视为错误。
func (e *Expander) Expand(course model.Course, semesterStart time.Time) []model.Occurrence {
	startClock, ok := periodClock[course.StartPeriod]
	if !ok {
		return nil
	}
	endClock, ok := periodClock[course.EndPeriod]
	if !ok {
		return nil
	}

	var occurrences []model.Occurrence
	for _, rule := range course.WeekRules {
		for wk := rule.StartWeek; wk <= rule.EndWeek; wk++ {
			if rule.Interval == 2 && (wk-rule.StartWeek)%2 == 1 {
				continue
			}

			base := semesterStart.AddDate(0, 0, (wk-1)*7+(course.Weekday-1))
			start := time.Date(base.Year(), base.Month(), base.Day(),
				startClock[0], startClock[1], 0, 0, e.loc)
			end := time.Date(base.Year(), base.Month(), base.Day(),
				endClock[0], endClock[1], 0, 0, e.loc).
				Add(time.Duration(e.classMinutes) * time.Minute)

			occurrences = append(occurrences, model.Occurrence{
				WeekNumber: wk,
				Weekday:    course.Weekday,
				Start:      start,
				End:        end,
			})
		}
	}
	return occurrences
}
