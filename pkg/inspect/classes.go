package inspect

import (
	"regexp"
	"strings"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// classTokenRe extracts class-selector tokens from selector text. The
// escaped-character alternative keeps tokens like `.w-\[37px\]` intact.
var classTokenRe = regexp.MustCompile(`\.((?:[A-Za-z0-9_-]|\\.)+)`)

// Utility-class generation patterns. A requested class that matches one of
// these may be produced at build time without appearing literally in any
// static rule, so its absence is not reported as missing. This is a
// best-effort precision/recall trade-off: it can both under- and
// over-report.
var dynamicClassPatterns = []*regexp.Regexp{
	// bracketed arbitrary values, e.g. w-[37px], bg-[#1e293b]
	regexp.MustCompile(`^-?[a-z]+(?:-[a-z]+)*-\[.+\]$`),
	// scale-based naming, e.g. p-4, mt-2, gap-1.5
	regexp.MustCompile(`^-?[a-z]+(?:-[a-z]+)*-\d+(?:\.\d+)?$`),
	// state-variant prefixes, e.g. hover:bg-white, md:flex
	regexp.MustCompile(`^(?:hover|focus|active|disabled|dark|sm|md|lg|xl|2xl):`),
}

func looksGenerated(name string) bool {
	for _, re := range dynamicClassPatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// extractClassTokens returns the unescaped class tokens of one selector.
func extractClassTokens(selector string) []string {
	matches := classTokenRe.FindAllStringSubmatch(selector, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, strings.ReplaceAll(m[1], `\`, ""))
	}
	return tokens
}

// classIndex maps every class token found in accessible sheets to a
// one-line excerpt of the first rule that defined it. Inaccessible sheets
// are skipped rather than failing the whole scan.
func classIndex(sheets []ports.StyleSheet) map[string]string {
	index := make(map[string]string)
	for _, sheet := range sheets {
		if !sheet.Accessible() {
			continue
		}
		for _, rule := range sheet.Rules() {
			for _, token := range extractClassTokens(rule.Selector) {
				if _, seen := index[token]; !seen {
					index[token] = ruleExcerpt(rule)
				}
			}
		}
	}
	return index
}

// ruleExcerpt renders a rule as a single bounded line.
func ruleExcerpt(rule ports.StyleRule) string {
	body := strings.Join(strings.Fields(rule.Text), " ")
	line := rule.Selector + " { " + body + " }"
	if runes := []rune(line); len(runes) > domain.MaxTextLength {
		line = string(runes[:domain.MaxTextLength]) + "…"
	}
	return line
}

// ValidateClasses reports per-class style-rule availability. Found is the
// literal verdict against static rules; classes that look dynamically
// generated are excluded from MissingClasses to avoid false positives.
func ValidateClasses(doc ports.Document, req domain.ClassesRequest) (*domain.ClassReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	index := classIndex(doc.StyleSheets())
	report := &domain.ClassReport{Total: len(req.Classes)}
	for _, name := range req.Classes {
		excerpt, found := index[name]
		status := domain.ClassStatus{Name: name, Found: found, Rule: excerpt}
		report.Classes = append(report.Classes, status)
		if found {
			report.Found++
			continue
		}
		report.Missing++
		if !looksGenerated(name) {
			report.MissingClasses = append(report.MissingClasses, name)
		}
	}
	if report.MissingClasses == nil {
		report.MissingClasses = []string{}
	}
	return report, nil
}
