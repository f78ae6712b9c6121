package filter

import (
	"fmt"
	"regexp"
	"strings"
)

type shorthandPattern struct {
	re      *regexp.Regexp
	replace func(matches []string) string
}

var shorthandPatterns = []shorthandPattern{
	// genre:"Drama" or genre!:"Drama"
	{regexp.MustCompile(`genre(!?):"([^"]+)"`), func(m []string) string {
		if m[1] == "!" {
			return fmt.Sprintf(`not hasGenre("%s")`, m[2])
		}
		return fmt.Sprintf(`hasGenre("%s")`, m[2])
	}},

	// name:"budapest" or name!:"budapest"
	{regexp.MustCompile(`name(!?):"([^"]+)"`), func(m []string) string {
		if m[1] == "!" {
			return fmt.Sprintf(`not containsText(Name, "%s")`, m[2])
		}
		return fmt.Sprintf(`containsText(Name, "%s")`, m[2])
	}},

	// released_before:2000
	{regexp.MustCompile(`released_before:(\d+)`), func(m []string) string {
		return fmt.Sprintf(`releasedBefore(%s)`, m[1])
	}},

	// released_after:2000
	{regexp.MustCompile(`released_after:(\d+)`), func(m []string) string {
		return fmt.Sprintf(`releasedAfter(%s)`, m[1])
	}},

	// released:>=2000
	{regexp.MustCompile(`released:([><=]*)(\d+)`), func(m []string) string {
		op := m[1]
		if op == "" || op == "=" {
			op = "=="
		}
		return fmt.Sprintf(`Released %s %s`, op, m[2])
	}},

	// preview:true/false
	{regexp.MustCompile(`preview:(true|false)`), func(m []string) string {
		if m[1] == "false" {
			return `not hasPreview()`
		}
		return `hasPreview()`
	}},
}

var shorthandKeys = []string{
	"genre:", "genre!:",
	"name:", "name!:",
	"released:", "released_before:", "released_after:",
	"preview:",
}

// ConvertShorthand converts key:value shorthand into an expr expression
func ConvertShorthand(shorthand string) string {
	if strings.TrimSpace(shorthand) == "" {
		return ""
	}

	out := strings.ReplaceAll(shorthand, " AND ", " and ")
	out = strings.ReplaceAll(out, " OR ", " or ")
	out = strings.ReplaceAll(out, "NOT ", "not ")

	for _, p := range shorthandPatterns {
		out = p.re.ReplaceAllStringFunc(out, func(match string) string {
			return p.replace(p.re.FindStringSubmatch(match))
		})
	}

	return out
}

// IsShorthand reports whether expression uses the key:value shorthand
func IsShorthand(expression string) bool {
	for _, key := range shorthandKeys {
		if strings.Contains(expression, key) {
			return true
		}
	}
	return false
}
