package bencode

import "math"

// ParseUnsigned reads a decimal number from the start of b.
//
// It returns the value, the number of bytes consumed and an error. The byte
// count is reported on failure too: on overflow it covers every digit up to
// and including the one that overflowed.
//
// A leading '0' followed by anything is read as the single digit zero, so
// "0123" yields 0 with one byte consumed. Sign characters are never accepted.
func ParseUnsigned(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrSyntax
	}
	if len(b) >= 2 && b[0] == '0' {
		return 0, 1, nil
	}

	var n uint64
	consumed := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		consumed++
		d := uint64(c - '0')
		if n > (math.MaxUint64-d)/10 {
			return 0, consumed, ErrOverflow
		}
		n = n*10 + d
	}
	if consumed == 0 {
		return 0, 0, ErrSyntax
	}
	return n, consumed, nil
}

// ParseSigned reads an optionally negative decimal number from the start of
// b. A '+' sign is not accepted and "-0" is rejected. The full int64 range,
// including math.MinInt64, is representable.
func ParseSigned(b []byte) (int64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrSyntax
	}

	if b[0] != '-' {
		u, n, err := ParseUnsigned(b)
		if err != nil {
			return 0, n, err
		}
		if u > math.MaxInt64 {
			return 0, n, ErrOverflow
		}
		return int64(u), n, nil
	}

	u, n, err := ParseUnsigned(b[1:])
	n++ // '-'
	if err != nil {
		return 0, n, err
	}
	switch {
	case u == 0:
		return 0, n, ErrSyntax
	case u == 1<<63:
		return math.MinInt64, n, nil
	case u > 1<<63:
		return 0, n, ErrOverflow
	}
	return -int64(u), n, nil
}
