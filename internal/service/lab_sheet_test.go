package service

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ── ParseLabSheet 测试 ──

// buildLabSheet 在内存中构造一份实验课表 xlsx
func buildLabSheet(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("生成单元格坐标失败: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("写入单元格失败: %v", err)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		t.Fatalf("写入 xlsx 失败: %v", err)
	}
	return buf
}

func TestParseLabSheet_Success(t *testing.T) {
	buf := buildLabSheet(t, [][]string{
		{"课程名称", "实验项目名称", "上课时间地点", "地点校区", "教师"},
		{"电路实验", "基尔霍夫定律验证", "星期二 [5-6节 3-8周]", "电工实训室/B3-201/龙洞校区", "张老师"},
		{"工程力学实验", "梁的弯曲测定", "星期三 [1-2节 2-6周]", "力学实训室/B12-345/龙洞校区", "李老师"},
	})

	rows, err := ParseLabSheet(buf)
	if err != nil {
		t.Fatalf("ParseLabSheet 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望 2 行，实际: %d", len(rows))
	}
	if rows[0].CourseName != "电路实验" {
		t.Errorf("课程名不符: %s", rows[0].CourseName)
	}
	if rows[0].TimeLocation != "星期二 [5-6节 3-8周]" {
		t.Errorf("时间地点不符: %s", rows[0].TimeLocation)
	}
	if rows[1].ProjectName != "梁的弯曲测定" {
		t.Errorf("项目名不符: %s", rows[1].ProjectName)
	}
}

// 表头列序任意时也应正确映射
func TestParseLabSheet_FlexibleHeaderOrder(t *testing.T) {
	buf := buildLabSheet(t, [][]string{
		{"教师", "上课时间地点", "课程名称"},
		{"张老师", "星期二 [5-6节 3-8周]", "电路实验"},
	})

	rows, err := ParseLabSheet(buf)
	if err != nil {
		t.Fatalf("ParseLabSheet 应成功: %v", err)
	}
	if rows[0].CourseName != "电路实验" || rows[0].Teacher != "张老师" {
		t.Errorf("列序映射失败: %+v", rows[0])
	}
}

func TestParseLabSheet_BadHeader(t *testing.T) {
	buf := buildLabSheet(t, [][]string{
		{"姓名", "学号"},
		{"张三", "2023001"},
	})

	_, err := ParseLabSheet(buf)
	if !errors.Is(err, ErrLabSheetBadHeader) {
		t.Errorf("期望 ErrLabSheetBadHeader，实际: %v", err)
	}
}

func TestParseLabSheet_NoData(t *testing.T) {
	buf := buildLabSheet(t, [][]string{
		{"课程名称", "上课时间地点"},
	})

	_, err := ParseLabSheet(buf)
	if !errors.Is(err, ErrLabSheetNoData) {
		t.Errorf("期望 ErrLabSheetNoData，实际: %v", err)
	}
}

func TestParseLabSheet_SkipEmptyRows(t *testing.T) {
	buf := buildLabSheet(t, [][]string{
		{"课程名称", "上课时间地点"},
		{"电路实验", "星期二 [5-6节 3-8周]"},
		{"", ""},
		{"物理实验", "星期四 [1-2节 1-4周]"},
	})

	rows, err := ParseLabSheet(buf)
	if err != nil {
		t.Fatalf("ParseLabSheet 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("全空行应被跳过，期望 2 行，实际: %d", len(rows))
	}
}

func TestParseLabSheet_NotExcel(t *testing.T) {
	if _, err := ParseLabSheet(bytes.NewBufferString("not an excel file")); err == nil {
		t.Error("非 xlsx 内容应返回错误")
	}
}

func TestParseLabSheet_TooManyRows(t *testing.T) {
	rows := [][]string{{"课程名称", "上课时间地点"}}
	for i := 0; i < maxLabSheetRows+1; i++ {
		rows = append(rows, []string{fmt.Sprintf("课程%d", i), "星期一 [1-2节 1-2周]"})
	}
	buf := buildLabSheet(t, rows)

	_, err := ParseLabSheet(buf)
	if !errors.Is(err, ErrLabSheetTooManyRows) {
		t.Errorf("期望 ErrLabSheetTooManyRows，实际: %v", err)
	}
}
