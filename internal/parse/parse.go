// Package parse decodes raw record lines of the form name;value.
package parse

import (
	"errors"

	"onebrc/internal/fingerprint"
	"onebrc/internal/fixed"
)

// Record is one decoded line. Name aliases the scanned buffer; callers
// that retain it past the buffer's lifetime must copy it.
type Record struct {
	Key   uint64
	Name  []byte
	Value fixed.Value
}

// ErrMalformed reports a line that has no delimiter in a legal position
// or whose value fails to parse. Callers recover by dropping the line.
var ErrMalformed = errors.New("malformed line")

// Line decodes a single line, which must not include its terminator.
//
// The value is 3 to 5 bytes (d.d through -dd.d), so the ';' can only sit
// at one of three offsets from the end of the line. Checking those is
// cheaper than scanning forward through the name, whose length is
// unbounded in comparison.
func Line(b []byte, fp fingerprint.Func) (Record, error) {
	var cut int
	switch n := len(b); {
	case n >= 4 && b[n-4] == ';':
		cut = n - 4
	case n >= 5 && b[n-5] == ';':
		cut = n - 5
	case n >= 6 && b[n-6] == ';':
		cut = n - 6
	default:
		return Record{}, ErrMalformed
	}

	v, err := fixed.Parse(b[cut+1:])
	if err != nil {
		return Record{}, ErrMalformed
	}

	name := b[:cut]
	return Record{Key: fp(name), Name: name, Value: v}, nil
}
