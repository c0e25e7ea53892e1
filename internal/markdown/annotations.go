package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// lineAnnotations holds the three disjoint sets of 1-based line numbers a
// fence info string can mark. Precedence when a line appears in more than one
// set: delete > add > highlight.
type lineAnnotations struct {
	del  sets.Set[int]
	add  sets.Set[int]
	mark sets.Set[int]
}

var (
	delPattern  = regexp.MustCompile(`del=\{([^}]+)\}`)
	addPattern  = regexp.MustCompile(`add=\{([^}]+)\}`)
	barePattern = regexp.MustCompile(`\{([^}]+)\}`)
)

// parseAnnotations extracts del={..}, add={..} and bare {..} line ranges from
// a fence info string. The del/add spans are removed before the bare pass so
// their brace groups are never misread as plain highlights.
func parseAnnotations(info string) lineAnnotations {
	ann := lineAnnotations{
		del:  sets.New[int](),
		add:  sets.New[int](),
		mark: sets.New[int](),
	}
	if m := delPattern.FindStringSubmatch(info); m != nil {
		ann.del = parseRanges(m[1])
	}
	if m := addPattern.FindStringSubmatch(info); m != nil {
		ann.add = parseRanges(m[1])
	}
	stripped := delPattern.ReplaceAllString(info, "")
	stripped = addPattern.ReplaceAllString(stripped, "")
	if m := barePattern.FindStringSubmatch(stripped); m != nil {
		ann.mark = parseRanges(m[1])
	}
	return ann
}

// parseRanges parses "1,3-5,8" into a set. Unparseable pieces are skipped.
func parseRanges(expr string) sets.Set[int] {
	result := sets.New[int]()
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, errLo := strconv.Atoi(strings.TrimSpace(lo))
			end, errHi := strconv.Atoi(strings.TrimSpace(hi))
			if errLo != nil || errHi != nil {
				continue
			}
			for i := start; i <= end; i++ {
				result.Add(i)
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			result.Add(n)
		}
	}
	return result
}

// lineClass returns the span class attribute for a 1-based line number, or
// the empty string when the line carries no annotation.
func (a lineAnnotations) lineClass(num int) string {
	switch {
	case a.del.Has(num):
		return ` class="highlight-del"`
	case a.add.Has(num):
		return ` class="highlight-add"`
	case a.mark.Has(num):
		return ` class="highlight"`
	}
	return ""
}
