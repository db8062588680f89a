package runner

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds a command line, in runes. Guide names and the
	// longest command fit comfortably.
	DefaultMaxInputSize = 256
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "VESTIBULE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// ansiSequence matches CSI escape sequences such as colours and cursor moves.
var ansiSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// SanitizeInput turns one line of visitor input into something ParseCommand can
// read. Oversized or malformed input is rejected. Escape sequences and other
// control characters are dropped, and whitespace runs collapse to one space so
// "tap\tVela" reads like "tap Vela".
func SanitizeInput(input string) (string, error) {
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	limit := maxInputSize()
	if n := utf8.RuneCountInString(input); n > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, n, limit)
	}

	input = ansiSequence.ReplaceAllString(input, "")

	var b strings.Builder
	b.Grow(len(input))
	pending := false
	for _, r := range input {
		switch {
		case unicode.IsSpace(r):
			pending = b.Len() > 0
		case unicode.IsControl(r):
		default:
			if pending {
				b.WriteByte(' ')
				pending = false
			}
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
