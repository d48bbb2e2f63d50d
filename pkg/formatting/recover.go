package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when no JSON value can be recovered.
var ErrParseFailed = errors.New("failed to parse response")

var (
	fenceMarker   = regexp.MustCompile("```[A-Za-z]*")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// Recover extracts the first balanced JSON object or array from model output.
//
// Code fences are stripped, the first balanced top-level span is located
// (brackets inside string literals are ignored), and the span is validated.
// When strict validation fails, trailing commas before a closing bracket are
// removed and the span is validated again. As a last resort the text between
// the first opening and last closing bracket is tried with the same repair.
// Returns ErrParseFailed when no structured value can be recovered.
func Recover(content string) (result json.RawMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrParseFailed, r)
		}
	}()

	cleaned := strings.TrimSpace(fenceMarker.ReplaceAllString(content, ""))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty content", ErrParseFailed)
	}

	var candidates []string
	if span, ok := balancedSpan(cleaned); ok {
		candidates = append(candidates, span)
	}
	if span, ok := outerSpan(cleaned); ok {
		candidates = append(candidates, span)
	}

	for _, c := range candidates {
		if raw, ok := validate(c); ok {
			return raw, nil
		}
		if raw, ok := validate(repair(c)); ok {
			return raw, nil
		}
	}

	return nil, fmt.Errorf("%w: no JSON value found", ErrParseFailed)
}

// RecoverAs recovers a JSON value from content and unmarshals it into T.
func RecoverAs[T any](content string) (T, error) {
	var result T

	raw, err := Recover(content)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	return result, nil
}

func validate(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}

func repair(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

// balancedSpan scans from the first '{' or '[' and returns the text up to the
// bracket that closes it.
func balancedSpan(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

func outerSpan(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	end := strings.LastIndexAny(s, "}]")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
