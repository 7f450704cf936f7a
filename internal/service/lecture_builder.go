package service

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Jiale23/ConvertIcs-Script/internal/dto"
	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// defaultLectureName 课程名缺失时的占位名
const defaultLectureName = "未知课程"

// periodRangeRe 节次区间模式，"节/周" 栏中形如 "(1-2节)"
var periodRangeRe = regexp.MustCompile(`\((\d+)-(\d+)节\)`)

// BuildLecture 由普通课表格子构建一条课程记录
//
// 节次区间缺失、周次规则为空或字段非法时返回错误，由调用方按
// 行级跳过策略处理（记诊断、继续后续格子）。
func BuildLecture(cell dto.LectureCell) (model.Course, error) {
	m := periodRangeRe.FindStringSubmatch(cell.PeriodWeek)
	if m == nil {
		return model.Course{}, fmt.Errorf("未找到节次区间: %q", cell.PeriodWeek)
	}
	startPeriod, _ := strconv.Atoi(m[1])
	endPeriod, _ := strconv.Atoi(m[2])

	rules := ParseWeekRules(cell.PeriodWeek)
	if len(rules) == 0 {
		return model.Course{}, fmt.Errorf("未找到周次规则: %q", cell.PeriodWeek)
	}

	name := cell.Name
	if name == "" {
		name = defaultLectureName
	}

	course := model.Course{
		Name:        name,
		Weekday:     cell.Weekday,
		StartPeriod: startPeriod,
		EndPeriod:   endPeriod,
		WeekRules:   rules,
		Teacher:     cell.Teacher,
	}

	if loc, ok := ParseLocation(cell.Location); ok {
		course.Location = loc.Formatted
		course.Locations = []model.LocationRecord{loc}
	}

	if err := course.Validate(); err != nil {
		return model.Course{}, err
	}
	return course, nil
}
