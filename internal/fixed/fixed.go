// Package fixed implements tenth-scaled fixed-point values. Every record
// value carries exactly one fractional digit, so storing it as an integer
// count of tenths keeps all accumulation exact; floats never appear.
package fixed

import (
	"errors"
	"strconv"
)

// Value is a measurement in tenths, e.g. -3.4 is stored as -34.
type Value int32

// ErrMalformed reports a value that does not match the grammar:
// optional '-', one or two integer digits, '.', exactly one digit.
var ErrMalformed = errors.New("malformed value")

// Parse decodes the value portion of a record. Valid shapes are d.d,
// dd.d, -d.d and -dd.d; digits come straight from ASCII and compose as
// sign*(100*d2 + 10*d1 + d0).
func Parse(b []byte) (Value, error) {
	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}

	var v Value
	switch len(b) {
	case 3: // d.d
		if b[1] != '.' || !isDigit(b[0]) || !isDigit(b[2]) {
			return 0, ErrMalformed
		}
		v = 10*Value(b[0]-'0') + Value(b[2]-'0')
	case 4: // dd.d
		if b[2] != '.' || !isDigit(b[0]) || !isDigit(b[1]) || !isDigit(b[3]) {
			return 0, ErrMalformed
		}
		v = 100*Value(b[0]-'0') + 10*Value(b[1]-'0') + Value(b[3]-'0')
	default:
		return 0, ErrMalformed
	}

	if neg {
		v = -v
	}
	return v, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// DivRound divides a tenth-scaled sum by a count, rounding to the nearest
// tenth with ties toward positive infinity. This is how display means are
// produced from exact integer sums.
func DivRound(sum, count int64) Value {
	q := sum / count
	r := sum % count

	if r < 0 {
		q--
		r += count
	}
	if 2*r >= count {
		q++
	}

	return Value(q)
}

// Append appends the value formatted with one fractional digit to dst.
func (v Value) Append(dst []byte) []byte {
	n := int32(v)
	if n < 0 {
		dst = append(dst, '-')
		n = -n
	}
	dst = strconv.AppendInt(dst, int64(n/10), 10)
	return append(dst, '.', byte(n%10)+'0')
}

// String formats the value with exactly one fractional digit. It inverts
// Parse for every canonical valid input.
func (v Value) String() string {
	var buf [8]byte
	return string(v.Append(buf[:0]))
}
