package mood

import "strings"

// NormalizeDateKey maps a stored date display string onto the canonical
// "MM-DD" key. Recognized shapes:
//
//	"11/7/2025, 10:00:00 AM" -> "11-07" (US month/day first)
//	"2025-11-07T10:00:00"    -> "11-07" (year first, longer than 7 chars)
//
// Anything else, including already canonical keys, is returned unchanged so
// the caller sees a gap instead of an error.
func NormalizeDateKey(raw string) string {
	switch {
	case strings.Contains(raw, "/"):
		parts := strings.Split(raw, "/")
		month, okM := leadingDigits(parts[0])
		day, okD := leadingDigits(parts[1])
		if !okM || !okD {
			return raw
		}
		return pad2(month) + "-" + pad2(day)
	case strings.Contains(raw, "-") && len(raw) > 7:
		parts := strings.Split(raw, "-")
		if len(parts) < 3 {
			return raw
		}
		dayPart := parts[2]
		if len(dayPart) > 2 {
			dayPart = dayPart[:2]
		}
		month, okM := leadingDigits(parts[1])
		day, okD := leadingDigits(dayPart)
		if !okM || !okD {
			return raw
		}
		return pad2(month) + "-" + pad2(day)
	default:
		return raw
	}
}

func leadingDigits(s string) (string, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return "", false
	}
	return s[:end], true
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
