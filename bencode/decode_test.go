package bencode

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"0:", String{}},
		{"5:a cde", String("a cde")},
		{"i0e", Int(0)},
		{"i-10e", Int(-10)},
		{"i1234e", Int(1234)},
		{"le", List{}},
		{"li1ei2ee", List{Int(1), Int(2)}},
		{"li1e2:ablee", List{Int(1), String("ab"), List{}}},
		{"de", Dict{}},
		{"d1:a1:be", Dict{"a": String("b")}},
		{"d1:a1:b1:bde1:cli1234e2:abee", Dict{
			"a": String("b"),
			"b": Dict{},
			"c": List{Int(1234), String("ab")},
		}},
		{"4:\x00\xff\x01e", String("\x00\xff\x01e")},
	}

	for _, tt := range tests {
		got, err := Decode([]byte(tt.in))
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDecodeStrictFailures(t *testing.T) {
	tests := []struct {
		in   string
		kind error
	}{
		{"", ErrTruncated},
		{"5:abcdef", ErrTrailingData},
		{"10:abcdef", ErrTruncated},
		{"5", ErrTruncated},
		{"5abcde", ErrSyntax},
		{"01:a", ErrSyntax},
		{"i-0e", ErrSyntax},
		{"i0123e", ErrSyntax},
		{"ie", ErrTruncated},
		{"i12", ErrTruncated},
		{"i12x", ErrSyntax},
		{"i+1e", ErrSyntax},
		{"i9223372036854775808e", ErrOverflow},
		{"i-9223372036854775809e", ErrOverflow},
		{"99999999999999999999999:a", ErrOverflow},
		{"e", ErrSyntax},
		{"x", ErrSyntax},
		{"l", ErrTruncated},
		{"li1e", ErrTruncated},
		{"lxe", ErrSyntax},
		{"d", ErrTruncated},
		{"d1:a", ErrTruncated},
		{"d1:ai1e", ErrTruncated},
		{"di1ei2ee", ErrSyntax},
		{"dle1:ae", ErrSyntax},
		{"d2:\xff\xfei1ee", ErrInvalidUTF8},
		{"i1ei2e", ErrTrailingData},
	}

	for _, tt := range tests {
		v, err := Decode([]byte(tt.in))
		assert.Nil(t, v, tt.in)
		assert.ErrorIs(t, err, tt.kind, "input %q: %v", tt.in, err)

		var serr *SyntaxError
		assert.True(t, errors.As(err, &serr), "input %q", tt.in)
	}
}

func TestSyntaxErrorOffset(t *testing.T) {
	_, err := Decode([]byte("li1ei2e5:abe"))
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, 9, serr.Offset)
	assert.Contains(t, err.Error(), "offset 9")

	_, err = Decode([]byte("d1:ai1e2:\xc3\x28i2ee"))
	require.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, 7, serr.Offset)
}

func TestDecodePrefix(t *testing.T) {
	v, n, err := DecodePrefix([]byte("5:abcdef"))
	require.NoError(t, err)
	assert.Equal(t, String("abcde"), v)
	assert.Equal(t, 7, n)

	v, n, err = DecodePrefix([]byte("li1eei2e"))
	require.NoError(t, err)
	assert.Equal(t, List{Int(1)}, v)
	assert.Equal(t, 5, n)

	_, _, err = DecodePrefix([]byte("10:abcdef"))
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = DecodePrefix([]byte("e"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestDecoderFraming(t *testing.T) {
	d := NewDecoder([]byte("i1e3:abcle"))

	var got []Value
	for d.More() {
		v, err := d.Decode()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []Value{Int(1), String("abc"), List{}}, got)
	assert.Equal(t, 10, d.Offset())
}

func TestDecoderCursorUnchangedOnError(t *testing.T) {
	d := NewDecoder([]byte("i1eli2e"))
	_, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, 3, d.Offset())

	_, err = d.Decode()
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, 3, d.Offset())
}

func TestDecodeDuplicateKeys(t *testing.T) {
	doc := []byte("d1:ai1e1:ai2ee")

	v, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, Dict{"a": Int(2)}, v)

	d := NewDecoder(doc)
	d.RejectDuplicateKeys = true
	_, err = d.DecodeStrict()
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDecodeMaxDepth(t *testing.T) {
	nested := func(n int) []byte {
		return []byte(strings.Repeat("l", n) + strings.Repeat("e", n))
	}

	_, err := Decode(nested(DefaultMaxDepth))
	require.NoError(t, err)

	_, err = Decode(nested(DefaultMaxDepth + 1))
	assert.ErrorIs(t, err, ErrTooDeep)

	d := NewDecoder([]byte("d1:ald1:bleeee"))
	d.MaxDepth = 2
	_, err = d.DecodeStrict()
	assert.ErrorIs(t, err, ErrTooDeep)

	d = NewDecoder([]byte("d1:ald1:bleeee"))
	d.MaxDepth = 4
	_, err = d.DecodeStrict()
	assert.NoError(t, err)

	d = NewDecoder(nested(10000))
	d.MaxDepth = 0
	_, err = d.DecodeStrict()
	assert.NoError(t, err)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	buf := []byte("l3:abcd1:k2:xyee")
	v, err := Decode(buf)
	require.NoError(t, err)

	for i := range buf {
		buf[i] = '!'
	}
	assert.Equal(t, List{String("abc"), Dict{"k": String("xy")}}, v)
}

func TestDecodeIdempotent(t *testing.T) {
	doc := []byte("d8:announce3:url4:infod4:name1:x6:lengthi1eee")
	a, err := Decode(doc)
	require.NoError(t, err)
	b, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeStripped(t *testing.T) {
	doc := []byte("d\n  1:a i1e\r\n  1:b l 1:x 1:y e\te ")

	_, err := Decode(doc)
	assert.Error(t, err)

	v, err := DecodeStripped(doc)
	require.NoError(t, err)
	assert.Equal(t, Dict{"a": Int(1), "b": List{String("x"), String("y")}}, v)

	v, n, err := DecodePrefixStripped([]byte(" i7e  junk"))
	require.NoError(t, err)
	assert.Equal(t, Int(7), v)
	assert.Equal(t, 3, n)

	// Payload whitespace is removed too, breaking the length prefix.
	_, err = DecodeStripped([]byte("5:a cde"))
	assert.ErrorIs(t, err, ErrTruncated)
}
