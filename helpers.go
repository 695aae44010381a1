package storybook

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAge coerces v to an integer age with base-10 parseInt semantics:
//   - strings: leading whitespace and an optional sign, then the longest run
//     of decimal digits; trailing text is ignored
//   - numbers: truncated toward zero
//   - anything else, no digits, non-finite or out-of-range values: NaNAge
func ParseAge(v any) Age {
	switch n := v.(type) {
	case nil:
		return NaNAge
	case Age:
		return n
	case int:
		return AgeOf(int64(n))
	case int32:
		return AgeOf(int64(n))
	case int64:
		return AgeOf(n)
	case float32:
		return ageFromFloat(float64(n))
	case float64:
		return ageFromFloat(n)
	case json.Number:
		return ageFromNumber(n)
	case string:
		return parseAgeString(n)
	case fmt.Stringer:
		return parseAgeString(n.String())
	default:
		return NaNAge
	}
}

// ageFromNumber coerces a decoded JSON number. Exponent and fraction forms
// are numbers, not text, so "1e3" is 1000.
func ageFromNumber(n json.Number) Age {
	if i, err := n.Int64(); err == nil {
		return AgeOf(i)
	}
	if f, err := n.Float64(); err == nil {
		return ageFromFloat(f)
	}
	return parseAgeString(n.String())
}

func ageFromFloat(f float64) Age {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NaNAge
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return NaNAge
	}
	return AgeOf(int64(f))
}

func parseAgeString(s string) Age {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return NaNAge
	}

	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return NaNAge
	}
	return AgeOf(v)
}

// FormatAuthor renders the attribution line shown under a story, e.g. "— Elena, 2024"
func FormatAuthor(story Story) string {
	year := "NaN"
	if !story.CreatedAt.IsZero() {
		year = strconv.Itoa(story.CreatedAt.UTC().Year())
	}
	return fmt.Sprintf("— %s, %s", story.Name, year)
}
