package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── 课表 Excel 导出 ──
//
// 把解析后的课程列表写成一张平铺的 xlsx，一行一门课，
// 供不使用日历客户端的用户留档或打印。

var scheduleSheetHeader = []string{"课程名称", "星期", "节次", "周次", "地点", "教师", "备注"}

var weekdayNames = [8]string{"", "周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// WriteScheduleSheet 将课程列表写为 xlsx 文档
func WriteScheduleSheet(courses []model.Course) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := writeSheetRow(f, sheet, 1, scheduleSheetHeader); err != nil {
		return nil, err
	}

	for i, c := range courses {
		row := []string{
			displayName(c),
			weekdayNames[c.Weekday],
			fmt.Sprintf("%d-%d节", c.StartPeriod, c.EndPeriod),
			formatWeekRules(c.WeekRules),
			c.Location,
			c.Teacher,
			courseRemark(c),
		}
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("写出Excel失败: %w", err)
	}
	return buf, nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for j, val := range values {
		cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
		if err != nil {
			return fmt.Errorf("生成单元格坐标失败: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("写入单元格失败: %w", err)
		}
	}
	return nil
}

func displayName(c model.Course) string {
	if c.IsLab {
		return labSummaryPrefix + c.Name
	}
	return c.Name
}

// formatWeekRules 周次规则的显示串，如 "1-8周,11-16周(隔周)"
func formatWeekRules(rules []model.WeekRule) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		var s string
		if r.StartWeek == r.EndWeek {
			s = fmt.Sprintf("%d周", r.StartWeek)
		} else {
			s = fmt.Sprintf("%d-%d周", r.StartWeek, r.EndWeek)
		}
		if r.Interval == 2 {
			s += "(隔周)"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}

func courseRemark(c model.Course) string {
	var parts []string
	if c.IsLab && c.LabDetail != "" {
		parts = append(parts, "实验项目："+c.LabDetail)
	}
	if c.MergeNote != "" {
		parts = append(parts, c.MergeNote)
	}
	return strings.Join(parts, "；")
}
