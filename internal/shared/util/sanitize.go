package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFileNameRunes = 128

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces a client supplied upload name to a safe base name.
// Directory parts are dropped, control characters removed and long names
// shortened with the extension kept. Names with ".." segments are rejected.
func SanitizeFileName(name string) (string, error) {
	slashed := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", ErrInvalidFileName
		}
	}

	base := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, path.Base(slashed))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "", ErrInvalidFileName
	}

	if utf8.RuneCountInString(base) > maxFileNameRunes {
		ext := path.Ext(base)
		if utf8.RuneCountInString(ext) >= maxFileNameRunes {
			ext = ""
		}
		stem := []rune(strings.TrimSuffix(base, ext))
		base = string(stem[:maxFileNameRunes-utf8.RuneCountInString(ext)]) + ext
	}
	return base, nil
}
