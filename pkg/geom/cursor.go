package geom

import (
	"fmt"
	"strconv"

	"github.com/kasuganosora/spatialexec/pkg/api"
)

// cursor scans a WKT input string. Optional matches return false without
// moving; required matches fail with a structured error whose message
// carries the diagnostic context of the current position.
type cursor struct {
	input string
	pos   int
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// errorContext renders the byte offset and up to 32 bytes of preceding
// input, with "..." elision when truncated and a terminal arrow marker.
func (c *cursor) errorContext() string {
	const window = 32
	msgStart := c.pos - window
	if msgStart < 0 {
		msgStart = 0
	}
	msgEnd := c.pos + 1
	if msgEnd > len(c.input) {
		msgEnd = len(c.input)
	}
	msg := c.input[msgStart:msgEnd]
	if msgStart != 0 {
		msg = "..." + msg
	}
	return fmt.Sprintf("at position %d near: '%s'|<---", c.pos, msg)
}

func (c *cursor) skipWhitespace() {
	for c.pos < len(c.input) && isSpace(c.input[c.pos]) {
		c.pos++
	}
}

// match consumes ch and trailing whitespace if ch is next; otherwise the
// cursor does not move.
func (c *cursor) match(ch byte) bool {
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		c.skipWhitespace()
		return true
	}
	return false
}

// matchCI is a case-insensitive multi-byte match. On mismatch the cursor
// is restored to its pre-match position; on success trailing whitespace
// is skipped. No word boundary is required after the keyword.
func (c *cursor) matchCI(keyword string) bool {
	pos := c.pos
	for i := 0; i < len(keyword); i++ {
		if c.pos >= len(c.input) || lowerByte(c.input[c.pos]) != lowerByte(keyword[i]) {
			c.pos = pos
			return false
		}
		c.pos++
	}
	c.skipWhitespace()
	return true
}

// expect is match with a fatal error on mismatch.
func (c *cursor) expect(ch byte) error {
	if !c.match(ch) {
		msg := fmt.Sprintf("WKT Parser: Expected character '%c' %s", ch, c.errorContext())
		return api.NewError(api.ErrCodeInvalidWKT, msg, nil)
	}
	return nil
}

// tryParseDouble consumes a decimal floating-point literal (sign,
// integer part, optional fraction, optional exponent). The scan is
// bounded by the input length and never admits NaN or Inf spellings. On
// success trailing whitespace is skipped.
func (c *cursor) tryParseDouble() (float64, bool) {
	i := c.pos
	n := len(c.input)
	if i < n && (c.input[i] == '+' || c.input[i] == '-') {
		i++
	}
	digits := 0
	for i < n && isDigit(c.input[i]) {
		i++
		digits++
	}
	if i < n && c.input[i] == '.' {
		i++
		for i < n && isDigit(c.input[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < n && (c.input[i] == 'e' || c.input[i] == 'E') {
		j := i + 1
		if j < n && (c.input[j] == '+' || c.input[j] == '-') {
			j++
		}
		expDigits := 0
		for j < n && isDigit(c.input[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	value, err := strconv.ParseFloat(c.input[c.pos:i], 64)
	if err != nil {
		return 0, false
	}
	c.pos = i
	c.skipWhitespace()
	return value, true
}

// parseDouble is tryParseDouble with a fatal error on rejection.
func (c *cursor) parseDouble() (float64, error) {
	value, ok := c.tryParseDouble()
	if !ok {
		msg := "WKT Parser: Expected double " + c.errorContext()
		return 0, api.NewError(api.ErrCodeInvalidWKT, msg, nil)
	}
	return value, nil
}

// parseWord consumes a run of ASCII letters and digits.
func (c *cursor) parseWord() string {
	start := c.pos
	for c.pos < len(c.input) && isAlnum(c.input[c.pos]) {
		c.pos++
	}
	return c.input[start:c.pos]
}
