package jot

import (
	"errors"
	"fmt"
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

// ValidationError locates the byte at which input was rejected.
type ValidationError struct {
	Offset int
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("byte %d: %v", e.Offset, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateInput returns an error if src is not valid UTF-8 or looks binary.
// The error wraps ErrInvalidUTF8 or ErrBinaryInput.
func ValidateInput(src []byte) error {
	var v validator
	rest, err := v.addBytes(src)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return &ValidationError{Offset: len(src) - len(rest), Err: ErrInvalidUTF8}
	}
	return nil
}

// validator applies the ValidateInput checks incrementally.
type validator struct {
	offset  int
	total   int
	control int
}

func (v *validator) reset() {
	*v = validator{}
}

// addBytes validates the complete runes of b and returns the trailing partial
// rune, if any.
func (v *validator) addBytes(b []byte) ([]byte, error) {
	i := 0
	for i < len(b) {
		if !utf8.FullRune(b[i:]) {
			break
		}
		r, size := utf8.DecodeRune(b[i:])
		if err := v.addRune(r, size); err != nil {
			return nil, &ValidationError{Offset: v.offset, Err: err}
		}
		v.offset += size
		i += size
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
	return r < 0x20 || r == 0x7F
}

// sanitizeBytes copies the complete runes of src into dst, dropping invalid
// bytes and control runes. It returns the copy and the trailing partial rune.
// dst must be at least as long as src.
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
