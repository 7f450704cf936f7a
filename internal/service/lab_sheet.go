package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Jiale23/ConvertIcs-Script/internal/dto"
)

// ── 实验课表 Excel 解析 ──
//
// 教务系统的实验课表可另存为 xlsx；此处把上传的工作表还原为
// LabRow 列表，供生成接口直接使用。表头支持灵活列序。

const maxLabSheetRows = 1000

var (
	ErrLabSheetNoData      = errors.New("Excel文件无数据行（第一行为表头）")
	ErrLabSheetTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxLabSheetRows)
	ErrLabSheetBadHeader   = errors.New("Excel表头缺少必要列（课程名称/上课时间地点）")
)

// ParseLabSheet 解析实验课表 xlsx，返回原始行数据
func ParseLabSheet(reader io.Reader) ([]dto.LabRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrLabSheetNoData
	}

	// 解析表头（支持灵活列序）
	colIndex := parseLabHeaderIndex(excelRows[0])
	if colIndex["kcmc"] < 0 || colIndex["sksjdd"] < 0 {
		return nil, ErrLabSheetBadHeader
	}

	var rows []dto.LabRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := dto.LabRow{}

		if idx := colIndex["kcmc"]; idx >= 0 && idx < len(row) {
			item.CourseName = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["sksjdd"]; idx >= 0 && idx < len(row) {
			item.TimeLocation = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["dycdxq"]; idx >= 0 && idx < len(row) {
			item.LocationDetail = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["xmmc"]; idx >= 0 && idx < len(row) {
			item.ProjectName = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["jsxm"]; idx >= 0 && idx < len(row) {
			item.Teacher = strings.TrimSpace(row[idx])
		}

		// 跳过全空行
		if item.CourseName == "" && item.TimeLocation == "" && item.LocationDetail == "" &&
			item.ProjectName == "" && item.Teacher == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrLabSheetNoData
	}
	if len(rows) > maxLabSheetRows {
		return nil, ErrLabSheetTooManyRows
	}

	return rows, nil
}

// parseLabHeaderIndex 解析表头，返回字段名 → 列索引映射
func parseLabHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"kcmc":   -1,
		"sksjdd": -1,
		"dycdxq": -1,
		"xmmc":   -1,
		"jsxm":   -1,
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case name == "课程名称" || name == "kcmc":
			idx["kcmc"] = i
		case name == "上课时间地点" || name == "sksjdd":
			idx["sksjdd"] = i
		case name == "地点校区" || name == "dycdxq":
			idx["dycdxq"] = i
		case name == "实验项目名称" || name == "项目名称" || name == "xmmc":
			idx["xmmc"] = i
		case name == "教师" || name == "教师姓名" || name == "jsxm":
			idx["jsxm"] = i
		}
	}
	return idx
}
