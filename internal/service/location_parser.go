package service

import (
	"regexp"
	"strings"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// ── 地点解析 ──────────────────────────────────────────────
//
// 教务系统的地点字符串有两种形态：
//   - 理论课：单段文本，如 "龙洞校区B6-101"
//   - 实验课：以 "/" 分隔的 "实训室名称/教室号/校区"，段序不保证
// 解析目标是拆出校区、教室号、实训室名，并组合出规范短显示形式。
// ───────────────────────────────────────────────────────────

// fallbackLabLocation 地点各部分均无法识别时的兜底显示
const fallbackLabLocation = "实验室"

var (
	campusRe = regexp.MustCompile(`.*校区`)
	roomRe   = regexp.MustCompile(`B\d{1,2}-\d{1,3}`)
)

// ParseLocation 分解复合地点字符串
//
// 输入为空时返回 ok=false，由调用方处理"无地点"场景。
// 输入非空时保证 Formatted 非空。
func ParseLocation(raw string) (model.LocationRecord, bool) {
	if raw == "" {
		return model.LocationRecord{}, false
	}

	parts := strings.Split(raw, "/")

	// 理论课格式：整段即显示值，尽力抽取校区与教室号
	if len(parts) == 1 {
		return model.LocationRecord{
			Formatted: parts[0],
			Campus:    campusRe.FindString(parts[0]),
			Room:      roomRe.FindString(parts[0]),
			Raw:       parts[0],
		}, true
	}

	var campus, room, labName string

	// 校区：从后向前找第一个含校区标记的段
	for i := len(parts) - 1; i >= 0; i-- {
		if strings.Contains(parts[i], "校区") {
			campus = parts[i]
			break
		}
	}

	// 教室号：从前向后找第一个匹配教室号模式的段
	for _, p := range parts {
		if m := roomRe.FindString(p); m != "" {
			room = m
			break
		}
	}

	// 实训室名称：首段既非校区也非教室号时取首段
	if !strings.Contains(parts[0], "校区") && !roomRe.MatchString(parts[0]) {
		labName = parts[0]
	}

	return model.LocationRecord{
		Formatted: composeFormatted(campus, room, labName),
		Campus:    campus,
		Room:      room,
		LabName:   labName,
		Raw:       raw,
	}, true
}

// composeFormatted 组合规范显示值：校区+教室号 > 教室号 > 校区 > 实训室名 > 兜底
func composeFormatted(campus, room, labName string) string {
	switch {
	case campus != "" && room != "":
		return campus + room
	case room != "":
		return room
	case campus != "":
		return campus
	case labName != "":
		return labName
	default:
		return fallbackLabLocation
	}
}
