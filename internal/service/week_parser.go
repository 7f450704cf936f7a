package service

import (
	"regexp"
	"strconv"

	"github.com/Jiale23/ConvertIcs-Script/internal/model"
)

// weekRuleRe 周次片段模式："N周"、"N-M周"，可带单/双周标记
var weekRuleRe = regexp.MustCompile(`(\d+)(?:-(\d+))?周([单双])?`)

// ParseWeekRules 从任意文本中提取全部周次规则
//
// 从左到右扫描，每个匹配产出一条规则；无匹配时返回空列表，
// 由调用方决定丢弃该课程。单双周统一归为 Interval=2、锚定起始周。
func ParseWeekRules(text string) []model.WeekRule {
	var rules []model.WeekRule
	for _, m := range weekRuleRe.FindAllStringSubmatch(text, -1) {
		start, _ := strconv.Atoi(m[1])
		end := start
		if m[2] != "" {
			end, _ = strconv.Atoi(m[2])
		}
		interval := 1
		if m[3] != "" {
			interval = 2
		}
		rules = append(rules, model.WeekRule{StartWeek: start, EndWeek: end, Interval: interval})
	}
	return rules
}
