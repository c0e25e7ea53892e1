package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sentinel parse errors. Callers wrap these with the offending document path.
var (
	ErrMissingFrontmatter      = errors.New("frontmatter block is missing")
	ErrMissingClosingDelimiter = errors.New("frontmatter closing delimiter not found")
)

// delimLine matches a frontmatter delimiter: a line of three or more dashes.
var delimLine = regexp.MustCompile(`^-{3,}\s*$`)

// SplitFrontmatter separates the dash-delimited frontmatter block from the
// Markdown body. Leading whitespace before the opening delimiter is ignored.
func SplitFrontmatter(raw string) (frontmatter string, body string, err error) {
	content := strings.TrimLeft(raw, " \t\r\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || !delimLine.MatchString(strings.TrimRight(lines[0], "\r")) {
		return "", "", ErrMissingFrontmatter
	}
	for i := 1; i < len(lines); i++ {
		if delimLine.MatchString(strings.TrimRight(lines[i], "\r")) {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", ErrMissingClosingDelimiter
}

// ParseFrontmatter parses the YAML frontmatter block and validates the
// mandatory fields: title and date must both be present and strings.
func ParseFrontmatter(frontmatter string) (map[string]any, error) {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(frontmatter), &fields); err != nil {
		return nil, fmt.Errorf("invalid frontmatter YAML: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	// YAML resolves bare scalars like 2024-01-01 to timestamps; authors mean
	// the literal text, so fold those back to strings before validating.
	for k, v := range fields {
		if t, ok := v.(time.Time); ok {
			fields[k] = formatScalarDate(t)
		}
	}

	for _, key := range []string{"title", "date"} {
		v, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("frontmatter is missing required field %q", key)
		}
		if _, ok := v.(string); !ok {
			return nil, fmt.Errorf("frontmatter field %q must be a string", key)
		}
	}
	return fields, nil
}

// formatScalarDate renders a YAML-resolved timestamp back as the form the
// author most plausibly wrote: a bare date when the clock is zero, RFC 3339
// otherwise.
func formatScalarDate(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
