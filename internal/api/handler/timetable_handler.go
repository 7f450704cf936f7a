package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jiale23/ConvertIcs-Script/internal/dto"
	"github.com/Jiale23/ConvertIcs-Script/internal/service"
	"github.com/Jiale23/ConvertIcs-Script/pkg/response"
)

// 下载接口的 MIME 类型
const (
	icsContentType  = "text/calendar; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// Generate 生成并下载 ICS 日历
// POST /api/v1/timetable/ics
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "参数校验失败")
		return
	}

	buf, filename, err := h.timetableSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, icsContentType, buf.Bytes())
}

// Preview 解析课表并返回课程列表与跳过行诊断
// POST /api/v1/timetable/preview
func (h *TimetableHandler) Preview(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "参数校验失败")
		return
	}

	result, err := h.timetableSvc.Preview(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, result)
}

// ExportSheet 导出课表 xlsx
// POST /api/v1/timetable/xlsx
func (h *TimetableHandler) ExportSheet(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "参数校验失败")
		return
	}

	buf, filename, err := h.timetableSvc.ExportSheet(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ParseLabSheet 解析上传的实验课表 xlsx
// POST /api/v1/timetable/lab-sheet (multipart, 字段名 file)
func (h *TimetableHandler) ParseLabSheet(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 21002, "缺少上传文件（字段名 file）")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 21002, "无法读取上传文件")
		return
	}
	defer file.Close()

	rows, err := h.timetableSvc.ParseLabSheet(file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLabSheetNoData),
			errors.Is(err, service.ErrLabSheetTooManyRows),
			errors.Is(err, service.ErrLabSheetBadHeader):
			response.BadRequest(c, 21006, err.Error())
		default:
			response.ErrorWithDetails(c, http.StatusBadRequest, 21006, "文件解析失败", err.Error())
		}
		return
	}

	response.OK(c, rows)
}

// ImportICS 解析现有 ICS 文本为事件预览
// POST /api/v1/timetable/import (body 为 ICS 原文)
func (h *TimetableHandler) ImportICS(c *gin.Context) {
	events, err := h.timetableSvc.ImportICS(c.Request.Body)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 21003, "ICS 解析失败", err.Error())
		return
	}

	response.OK(c, events)
}

// DefaultStart 返回推算的默认学期起始日期
// GET /api/v1/timetable/default-start
func (h *TimetableHandler) DefaultStart(c *gin.Context) {
	response.OK(c, dto.DefaultStartResponse{
		SemesterStart: h.timetableSvc.DefaultSemesterStart(time.Now()),
	})
}

func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBadStartDate):
		response.BadRequest(c, 21004, service.ErrBadStartDate.Error())
	case errors.Is(err, service.ErrNoCourses):
		response.UnprocessableEntity(c, 21005, "未找到课程数据，请确认提交的课表内容")
	default:
		response.InternalError(c)
	}
}
