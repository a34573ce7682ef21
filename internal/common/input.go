package common

import "strings"

// promptUnsafe are characters rejected in usernames and passwords because
// they are echoed back into prompts and listings verbatim.
const promptUnsafe = " \t\n;|&<>*\""

// ParseChoice interprets a received line as a menu selection. Leading digits
// are parsed as a decimal number; anything else yields 0, which no menu maps
// to a valid option. Mirrors atoi semantics: "12x" is 12, "x12" is 0.
func ParseChoice(line string) int {
	line = strings.TrimSpace(line)
	n := 0
	ok := false
	for _, r := range line {
		if r < '0' || r > '9' {
			break
		}
		ok = true
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return 0
		}
	}
	if !ok {
		return 0
	}
	return n
}

// IsDigits reports whether s is non-empty and consists solely of ASCII
// digits. Used for numeric profile fields where partial parses are not
// acceptable.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SafeForPrompt reports whether s may be echoed back into menus and prompts
// without being able to break their layout or smuggle shell metacharacters.
func SafeForPrompt(s string) bool {
	return !strings.ContainsAny(s, promptUnsafe)
}

// SafeForRecord reports whether s may be stored as a field of a
// space-delimited record line. The set differs from SafeForPrompt on
// purpose: it is the file-format restriction, not the display one, and both
// are applied at registration time.
func SafeForRecord(s string) bool {
	return !strings.ContainsAny(s, "\n\r: ")
}
