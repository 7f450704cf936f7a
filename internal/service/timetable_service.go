package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Jiale23/ConvertIcs-Script/internal/dto"
	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── 课表模块业务错误 ──

var (
	ErrNoCourses    = errors.New("未找到课程数据")
	ErrBadStartDate = errors.New("学期起始日期格式错误（应为 YYYY-MM-DD）")
)

// semesterStartLayout 学期起始日期的输入格式
const semesterStartLayout = "2006-01-02"

// TimetableService 课表转换业务接口
//
// 设计说明：
//   - Generate 跑完整管线：原始行 → 课程记录 → 周次展开 → ICS 文档
//   - 文档以 bytes.Buffer 返回，由 Handler 层设置下载响应头后写入
//   - 行级解析失败只跳过并记诊断，空结果以 ErrNoCourses 上抛
type TimetableService interface {
	// Generate 生成 ICS 日历文档，返回文档内容与建议文件名
	Generate(ctx context.Context, req *dto.GenerateRequest) (*bytes.Buffer, string, error)
	// Preview 返回解析出的课程列表与跳过行诊断，不生成文档
	Preview(ctx context.Context, req *dto.GenerateRequest) (*dto.PreviewResponse, error)
	// ExportSheet 将解析后的课程列表导出为 xlsx 文档，返回文档内容与建议文件名
	ExportSheet(ctx context.Context, req *dto.GenerateRequest) (*bytes.Buffer, string, error)
	// ParseLabSheet 解析上传的实验课表 xlsx
	ParseLabSheet(reader io.Reader) ([]dto.LabRow, error)
	// ImportICS 解析现有 ICS 为事件预览列表
	ImportICS(reader io.Reader) ([]dto.ImportedEvent, error)
	// DefaultSemesterStart 推算默认的学期第一周周一
	DefaultSemesterStart(now time.Time) string
}

type timetableService struct {
	expander   *Expander
	serializer *Serializer
	loc        *time.Location
	logger     *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(expander *Expander, serializer *Serializer, loc *time.Location, logger *zap.Logger) TimetableService {
	return &timetableService{
		expander:   expander,
		serializer: serializer,
		loc:        loc,
		logger:     logger,
	}
}

// ────────────────────── Generate ──────────────────────

func (s *timetableService) Generate(ctx context.Context, req *dto.GenerateRequest) (*bytes.Buffer, string, error) {
	semesterStart, err := s.parseSemesterStart(req.SemesterStart)
	if err != nil {
		return nil, "", err
	}

	courses, _ := s.buildCourses(req)
	if len(courses) == 0 {
		return nil, "", ErrNoCourses
	}

	document := s.serializer.Build(courses, func(c model.Course) []model.Occurrence {
		return s.expander.Expand(c, semesterStart)
	})

	s.logger.Info("课表生成完成",
		zap.Int("courses", len(courses)),
		zap.String("semester_start", req.SemesterStart),
	)

	return bytes.NewBufferString(document), s.serializer.Filename(semesterStart), nil
}

// ────────────────────── Preview ──────────────────────

func (s *timetableService) Preview(ctx context.Context, req *dto.GenerateRequest) (*dto.PreviewResponse, error) {
	if _, err := s.parseSemesterStart(req.SemesterStart); err != nil {
		return nil, err
	}

	courses, skipped := s.buildCourses(req)

	resp := &dto.PreviewResponse{
		Courses: make([]dto.CourseResponse, 0, len(courses)),
		Skipped: skipped,
	}
	for i := range courses {
		resp.Courses = append(resp.Courses, toCourseResponse(&courses[i]))
	}
	return resp, nil
}

// ────────────────────── ExportSheet ──────────────────────

func (s *timetableService) ExportSheet(ctx context.Context, req *dto.GenerateRequest) (*bytes.Buffer, string, error) {
	semesterStart, err := s.parseSemesterStart(req.SemesterStart)
	if err != nil {
		return nil, "", err
	}

	courses, _ := s.buildCourses(req)
	if len(courses) == 0 {
		return nil, "", ErrNoCourses
	}

	buf, err := WriteScheduleSheet(courses)
	if err != nil {
		return nil, "", err
	}

	filename := strings.TrimSuffix(s.serializer.Filename(semesterStart), ".ics") + ".xlsx"
	return buf, filename, nil
}

// ────────────────────── ParseLabSheet ──────────────────────

func (s *timetableService) ParseLabSheet(reader io.Reader) ([]dto.LabRow, error) {
	return ParseLabSheet(reader)
}

// ────────────────────── ImportICS ──────────────────────

func (s *timetableService) ImportICS(reader io.Reader) ([]dto.ImportedEvent, error) {
	return ParseICS(reader, s.loc)
}

// ────────────────────── DefaultSemesterStart ──────────────────────

// DefaultSemesterStart 推算默认学期起始：3-8 月取当年 2 月、
// 其余月份取当年 9 月的 1 号所在周的周一（1 号非周一时顺延到下周一）。
func (s *timetableService) DefaultSemesterStart(now time.Time) string {
	now = now.In(s.loc)
	target := time.September
	if m := int(now.Month()); m >= 3 && m <= 8 {
		target = time.February
	}

	d := time.Date(now.Year(), target, 1, 0, 0, 0, 0, s.loc)
	weekday := isoWeekday(d.Weekday())
	if weekday != 1 {
		d = d.AddDate(0, 0, 8-weekday)
	}
	return d.Format(semesterStartLayout)
}

// ── 内部辅助方法 ──

func (s *timetableService) parseSemesterStart(value string) (time.Time, error) {
	t, err := time.ParseInLocation(semesterStartLayout, value, s.loc)
	if err != nil {
		return time.Time{}, ErrBadStartDate
	}
	return t, nil
}

// buildCourses 原始行 → 课程记录；普通课逐格子构建，实验课走合并器
func (s *timetableService) buildCourses(req *dto.GenerateRequest) ([]model.Course, []dto.SkippedRow) {
	var courses []model.Course
	var skipped []dto.SkippedRow

	for _, cell := range req.Lectures {
		course, err := BuildLecture(cell)
		if err != nil {
			s.logger.Warn("跳过课表格子",
				zap.String("course", cell.Name),
				zap.Error(err),
			)
			skipped = append(skipped, dto.SkippedRow{
				Source: "lecture",
				Name:   cell.Name,
				Reason: err.Error(),
			})
			continue
		}
		courses = append(courses, course)
	}

	merger := NewLabMerger(s.logger)
	for _, row := range req.LabRows {
		merger.Add(row)
	}
	courses = append(courses, merger.Flush()...)
	skipped = append(skipped, merger.Skipped()...)

	return courses, skipped
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		Name:      c.Name,
		Weekday:   c.Weekday,
		Periods:   fmt.Sprintf("%d-%d节", c.StartPeriod, c.EndPeriod),
		WeekRules: c.WeekRules,
		Location:  c.Location,
		Locations: c.Locations,
		Teacher:   c.Teacher,
		IsLab:     c.IsLab,
		LabDetail: c.LabDetail,
		MergeNote: c.MergeNote,
	}
}
