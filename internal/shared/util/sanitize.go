package util

import (
	"errors"
	"strings"
)

// SanitizeFileName keeps the last path element of a client-supplied name and
// rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if strings.Contains(s, "..") {
		return "", errors.New("invalid file name")
	}
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		s = s[i+1:]
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
