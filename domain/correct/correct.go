// Package correct cleans up common OCR punctuation artifacts in Chinese text.
package correct

import (
	"strings"
	"unicode"
)

const (
	fullWidthPeriod = '．'
	middleDot       = '·'
	ellipsis        = '…'
	openQuote       = "「"
	closeQuote      = "」"
)

// Rule is one named rewrite step.
type Rule struct {
	Name  string
	Apply func(string) string
}

var rules = []Rule{
	{Name: "full-width-period", Apply: normalizePeriods},
	{Name: "lone-period", Apply: dropLonePeriods},
	{Name: "dot-runs", Apply: collapseDotRuns},
	{Name: "ellipsis", Apply: dropEllipses},
	{Name: "corner-quotes", Apply: balanceQuotes},
}

// Rules returns the pipeline in application order. Later rules depend on the
// output of earlier ones.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Correct runs every rule over s in order.
func Correct(s string) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

func normalizePeriods(s string) string {
	return strings.ReplaceAll(s, string(fullWidthPeriod), ".")
}

// dropLonePeriods removes a '.' when neither side touches non-whitespace.
func dropLonePeriods(s string) string {
	if !strings.ContainsRune(s, '.') {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range rs {
		if r == '.' {
			before := i == 0 || unicode.IsSpace(rs[i-1])
			after := i == len(rs)-1 || unicode.IsSpace(rs[i+1])
			if before && after {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDotLike(r rune) bool {
	return r == '.' || r == middleDot || r == ellipsis
}

// collapseDotRuns only fires when a middle dot is present. A run made only of
// ellipsis glyphs is left for dropEllipses.
func collapseDotRuns(s string) string {
	if !strings.ContainsRune(s, middleDot) {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		if !isDotLike(rs[i]) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		mixed := false
		for j < len(rs) && isDotLike(rs[j]) {
			if rs[j] != ellipsis {
				mixed = true
			}
			j++
		}
		if mixed {
			b.WriteString("...")
		} else {
			b.WriteString(string(rs[i:j]))
		}
		i = j
	}
	return b.String()
}

func dropEllipses(s string) string {
	return strings.ReplaceAll(s, string(ellipsis), "")
}

func balanceQuotes(s string) string {
	missing := strings.Count(s, openQuote) - strings.Count(s, closeQuote)
	if missing <= 0 {
		return s
	}
	return s + strings.Repeat(closeQuote, missing)
}
