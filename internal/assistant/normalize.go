package assistant

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// Normalize turns a model reply into an Insight. It tries, in order: a strict
// parse, a parse after removing Markdown code fences, and a repaired parse of
// the outermost {...} span. When all fail the raw text becomes the summary.
func Normalize(raw string) Insight {
	text := strings.TrimSpace(raw)

	if obj, ok := parseObject(text); ok {
		return fromObject(obj)
	}
	if inner, ok := stripCodeFences(text); ok {
		if obj, ok := parseObject(inner); ok {
			return fromObject(obj)
		}
	}
	if span, ok := outerObject(text); ok {
		if obj, ok := parseObject(repairJSON(span)); ok {
			return fromObject(obj)
		}
	}
	return plainText(text)
}

func plainText(text string) Insight {
	return Insight{
		Summary:           text,
		Seriousness:       "See summary",
		NextSteps:         "Follow the guidance above.",
		RedFlags:          "Seek urgent care if severe pain, fever, bleeding, or rapid change.",
		SelfCare:          "Avoid irritants and keep the area clean.",
		FollowUpQuestions: defaultFollowUps(),
	}
}

func parseObject(s string) (map[string]any, bool) {
	if s == "" {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// stripCodeFences removes a ```lang ... ``` wrapper.
func stripCodeFences(s string) (string, bool) {
	if !strings.HasPrefix(s, "```") {
		return "", false
	}
	body := strings.TrimPrefix(s, "```")
	// drop the language tag line
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		return "", false
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body), true
}

func outerObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// repairJSON fixes the two mistakes models make most: trailing commas before a
// closing bracket and raw control characters inside string literals.
func repairJSON(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")

	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			case r == '\n':
				b.WriteString(`\n`)
				continue
			case r == '\r':
				b.WriteString(`\r`)
				continue
			case r == '\t':
				b.WriteString(`\t`)
				continue
			}
		} else if r == '"' {
			inString = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fromObject(obj map[string]any) Insight {
	return Insight{
		Summary:           toText(obj["summary"]),
		Seriousness:       toText(obj["seriousness"]),
		NextSteps:         toText(obj["next_steps"]),
		RedFlags:          toText(obj["red_flags"]),
		SelfCare:          toText(obj["self_care"]),
		FollowUpQuestions: toList(obj["follow_up_questions"]),
	}
}

// toText flattens a JSON value into display text; lists are joined with "; ".
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := toText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// toList wraps a scalar into a one-element list.
func toList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := toText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := toText(t); s != "" {
			return []string{s}
		}
		return []string{}
	}
}
