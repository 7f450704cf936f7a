package service

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Jiale23/ConvertIcs-Script/internal/dto"
	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── 实验课行合并 ──────────────────────────────────────────
//
// 实验课表中同一门课在多个地点开课时会出现多行/多段记录，
// 时间地点栏形如 "星期三 [5-6节 3-8周],星期三 [5-6节 3-8周]"，
// 地点明细栏按逗号对齐列出各段地点。合并器按
// (课程名, 起止周, 星期, 起止节次) 聚合这些记录，地点取并集。
// ───────────────────────────────────────────────────────────

// defaultLabName 实验课名缺失时的占位名
const defaultLabName = "实验课"

// locationJoinSep 多地点显示连接符
const locationJoinSep = "、"

var (
	labWeekdayRe = regexp.MustCompile(`星期([一二三四五六日])`)
	labPeriodRe  = regexp.MustCompile(`\[(\d+)-(\d+)节`)
	labWeekRe    = regexp.MustCompile(`(\d+)(?:-(\d+))?\s*周`)
	locSplitRe   = regexp.MustCompile(`[,，]`)
)

// weekdayMap 中文星期 → ISO 星期（1=周一 … 7=周日）
var weekdayMap = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5, "六": 6, "日": 7,
}

// labKey 合并键：两行实验记录键完全一致才视为同一堂课
type labKey struct {
	name        string
	startWeek   int
	endWeek     int
	weekday     int
	startPeriod int
	endPeriod   int
}

// LabMerger 实验课原始行合并器
//
// Add 逐行喂入，Flush 按首次出现顺序吐出合并后的课程。
// 格式异常的行被跳过并记入诊断，不中断整体处理。
type LabMerger struct {
	logger  *zap.Logger
	pending map[labKey]*model.Course
	order   []labKey
	skipped []dto.SkippedRow
}

// NewLabMerger 创建实验课合并器
func NewLabMerger(logger *zap.Logger) *LabMerger {
	return &LabMerger{
		logger:  logger,
		pending: make(map[labKey]*model.Course),
	}
}

// Add 处理一行实验课记录
func (m *LabMerger) Add(row dto.LabRow) {
	// 1. 拆时间段：仅保留含方括号的段
	segments := splitTimeSegments(row.TimeLocation)
	if len(segments) == 0 {
		m.skip(row, "时间地点为空或无有效时间段")
		return
	}

	// 2. 拆地点明细（支持中英文逗号）
	locParts := splitLocationParts(row.LocationDetail)

	// 3. 按段对齐地点；地点数不足时沿用第一个地点（教务导出的历史口径）
	var segLocations []model.LocationRecord
	for i := range segments {
		var locFull string
		switch {
		case i < len(locParts):
			locFull = locParts[i]
		case len(locParts) > 0:
			locFull = locParts[0]
		}
		if loc, ok := ParseLocation(locFull); ok {
			segLocations = append(segLocations, loc)
		}
	}

	// 4. 只解析首段的星期/节次/周次：多段仅用于枚举地点，时间视为一致
	first := segments[0]

	wm := labWeekdayRe.FindStringSubmatch(first)
	if wm == nil {
		m.skip(row, "无法提取星期: "+first)
		return
	}
	weekday := weekdayMap[wm[1]]

	pm := labPeriodRe.FindStringSubmatch(first)
	if pm == nil {
		m.skip(row, "无法提取节次: "+first)
		return
	}
	startPeriod, _ := strconv.Atoi(pm[1])
	endPeriod, _ := strconv.Atoi(pm[2])

	km := labWeekRe.FindStringSubmatch(first)
	if km == nil {
		m.skip(row, "无法提取周次: "+first)
		return
	}
	startWeek, _ := strconv.Atoi(km[1])
	endWeek := startWeek
	if km[2] != "" {
		endWeek, _ = strconv.Atoi(km[2])
	}

	name := row.CourseName
	if name == "" {
		name = defaultLabName
	}

	// 5. 合并键
	key := labKey{
		name:        name,
		startWeek:   startWeek,
		endWeek:     endWeek,
		weekday:     weekday,
		startPeriod: startPeriod,
		endPeriod:   endPeriod,
	}

	// 6/7. 已有同键课程则并入地点，否则新建
	if existing, ok := m.pending[key]; ok {
		existing.Locations = unionLocations(existing.Locations, segLocations)
		existing.Location = joinFormatted(existing.Locations)
		existing.MergeNote = composeMergeNote(existing.Locations)
		return
	}

	locations := unionLocations(nil, segLocations)
	course := &model.Course{
		Name:        name,
		Weekday:     weekday,
		StartPeriod: startPeriod,
		EndPeriod:   endPeriod,
		WeekRules:   []model.WeekRule{{StartWeek: startWeek, EndWeek: endWeek, Interval: 1}},
		Location:    joinFormatted(locations),
		Locations:   locations,
		Teacher:     row.Teacher,
		IsLab:       true,
		LabDetail:   row.ProjectName,
		MergeNote:   composeMergeNote(locations),
	}
	m.pending[key] = course
	m.order = append(m.order, key)
}

// Flush 按首次出现顺序输出全部合并结果
func (m *LabMerger) Flush() []model.Course {
	result := make([]model.Course, 0, len(m.order))
	for _, key := range m.order {
		result = append(result, *m.pending[key])
	}
	return result
}

// Skipped 返回被跳过行的诊断信息
func (m *LabMerger) Skipped() []dto.SkippedRow {
	return m.skipped
}

func (m *LabMerger) skip(row dto.LabRow, reason string) {
	m.logger.Warn("跳过实验课行",
		zap.String("course", row.CourseName),
		zap.String("reason", reason),
	)
	m.skipped = append(m.skipped, dto.SkippedRow{
		Source: "lab",
		Name:   row.CourseName,
		Reason: reason,
	})
}

// ── 内部辅助 ──

// splitTimeSegments 拆出含方括号的时间段
func splitTimeSegments(timeLocation string) []string {
	if !strings.Contains(timeLocation, "[") {
		return nil
	}
	var segments []string
	for _, s := range strings.Split(timeLocation, ",") {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" && strings.Contains(trimmed, "[") && strings.Contains(trimmed, "]") {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

// splitLocationParts 按中英文逗号拆地点明细，去除空段
func splitLocationParts(detail string) []string {
	if detail == "" {
		return nil
	}
	var parts []string
	for _, p := range locSplitRe.Split(detail, -1) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// unionLocations 并集合并，按 Formatted 去重，保持出现顺序
func unionLocations(existing, incoming []model.LocationRecord) []model.LocationRecord {
	result := existing
	for _, loc := range incoming {
		dup := false
		for _, have := range result {
			if have.Formatted == loc.Formatted {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, loc)
		}
	}
	return result
}

// joinFormatted 多地点显示串：规范值以顿号连接
func joinFormatted(locations []model.LocationRecord) string {
	parts := make([]string, 0, len(locations))
	for _, loc := range locations {
		parts = append(parts, loc.Formatted)
	}
	return strings.Join(parts, locationJoinSep)
}

// composeMergeNote 生成地点合并备注
//
// 无地点 → 空；单地点且有实训室名 → "实验地点：…"；
// 多地点 → "多个实验地点：…" 逐一列出（带实训室名时附括号）。
func composeMergeNote(locations []model.LocationRecord) string {
	switch {
	case len(locations) == 0:
		return ""
	case len(locations) == 1:
		if locations[0].LabName == "" {
			return ""
		}
		return "实验地点：" + formatLocationWithLab(locations[0])
	default:
		parts := make([]string, 0, len(locations))
		for _, loc := range locations {
			parts = append(parts, formatLocationWithLab(loc))
		}
		return "多个实验地点：" + strings.Join(parts, locationJoinSep)
	}
}

func formatLocationWithLab(loc model.LocationRecord) string {
	if loc.LabName != "" {
		return loc.Formatted + "（" + loc.LabName + "）"
	}
	return loc.Formatted
}
