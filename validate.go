package mdmath

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if the input is not valid UTF-8 or appears
// binary.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	var v validator
	rest, err := v.addBytes(src)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return ErrInvalidUTF8
	}
	return nil
}

// validator tracks the share of control runes across chunks of a stream.
type validator struct {
	total   int
	control int
}

// addBytes validates the complete runes of b and returns the incomplete
// tail.
func (v *validator) addBytes(b []byte) ([]byte, error) {
	i := 0
	for i < len(b) {
		if !utf8.FullRune(b[i:]) {
			break
		}
		r, size := utf8.DecodeRune(b[i:])
		if err := v.addRune(r, size); err != nil {
			return nil, err
		}
		i += size
	}
	return b[i:], nil
}

// observe counts the complete runes of b toward binary detection and
// returns the incomplete tail. Invalid bytes are skipped rather than
// reported, matching what sanitizeBytes drops.
func (v *validator) observe(b []byte) ([]byte, error) {
	i := 0
	for i < len(b) {
		if !utf8.FullRune(b[i:]) {
			break
		}
		r, size := utf8.DecodeRune(b[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if err := v.addRune(r, size); err != nil {
			return nil, err
		}
	}
	return b[i:], nil
}

func (v *validator) addRune(r rune, size int) error {
	if r == utf8.RuneError && size == 1 {
		return ErrInvalidUTF8
	}
	if r == 0 {
		return ErrBinaryInput
	}
	v.total += size
	if isControlRune(r) {
		v.control++
		if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
			return ErrBinaryInput
		}
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return false
}

// sanitizeBytes copies the complete, valid, non-control runes of src to dst
// and returns the incomplete tail of src.
func sanitizeBytes(dst []byte, src []byte) ([]byte, []byte) {
	di := 0
	i := 0
	for i < len(src) {
		if !utf8.FullRune(src[i:]) {
			break
		}
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if isControlRune(r) {
			i += size
			continue
		}
		copy(dst[di:], src[i:i+size])
		di += size
		i += size
	}
	return dst[:di], src[i:]
}

// sanitizeText normalizes line endings to \n and drops a leading byte order
// mark, control runes and invalid UTF-8.
func sanitizeText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || r == '\r' || isControlRune(r) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
		case r == '\r':
			b.WriteByte('\n')
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case isControlRune(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
