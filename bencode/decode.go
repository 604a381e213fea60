package bencode

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxDepth bounds list/dictionary nesting for decoders created with
// NewDecoder.
const DefaultMaxDepth = 512

// Decoder for bencoded data. It walks an in-memory buffer with a cursor and
// never retains the buffer in the values it returns.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	// MaxDepth is the deepest list/dictionary nesting accepted. Zero or
	// negative disables the check.
	MaxDepth int
	// RejectDuplicateKeys makes a repeated dictionary key an error instead
	// of letting the last occurrence win.
	RejectDuplicateKeys bool

	data  []byte
	pos   int
	depth int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data, MaxDepth: DefaultMaxDepth}
}

// Offset is the cursor position: the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.pos
}

// More reports whether unread bytes remain after the cursor.
func (d *Decoder) More() bool {
	return d.pos < len(d.data)
}

// Decode reads one value at the cursor and advances past it. Bytes after the
// value are left unread. On failure the cursor does not move.
func (d *Decoder) Decode() (Value, error) {
	start := d.pos
	d.depth = 0
	v, err := d.decodeValue()
	if err != nil {
		d.pos = start
		return nil, err
	}
	return v, nil
}

// DecodeStrict reads one value that must span every remaining byte.
func (d *Decoder) DecodeStrict() (Value, error) {
	v, err := d.Decode()
	if err != nil {
		return nil, err
	}
	if d.More() {
		return nil, d.errorf(ErrTrailingData, "%d unread bytes", len(d.data)-d.pos)
	}
	return v, nil
}

func (d *Decoder) decodeValue() (Value, error) {
	if d.pos >= len(d.data) {
		return nil, d.errorf(ErrTruncated, "expected a value")
	}

	switch c := d.data[d.pos]; c {
	case 'i':
		return d.decodeInt()
	case 'l':
		return d.decodeList()
	case 'd':
		return d.decodeDict()
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return d.decodeString()
	default:
		return nil, d.errorf(ErrSyntax, "invalid lead byte %q", c)
	}
}

func (d *Decoder) decodeInt() (Int, error) {
	if len(d.data)-d.pos < 3 {
		return 0, d.errorf(ErrTruncated, "integer needs at least 3 bytes")
	}
	d.pos++ // skip 'i'

	n, consumed, err := ParseSigned(d.data[d.pos:])
	d.pos += consumed
	if err != nil {
		return 0, d.errorf(err, "malformed integer")
	}
	if d.pos >= len(d.data) {
		return 0, d.errorf(ErrTruncated, "unterminated integer")
	}
	if d.data[d.pos] != 'e' {
		return 0, d.errorf(ErrSyntax, "expected 'e' after integer, got %q", d.data[d.pos])
	}
	d.pos++ // skip 'e'
	return Int(n), nil
}

func (d *Decoder) decodeString() (String, error) {
	length, consumed, err := ParseUnsigned(d.data[d.pos:])
	d.pos += consumed
	if err != nil {
		return nil, d.errorf(err, "malformed string length")
	}
	if d.pos >= len(d.data) {
		return nil, d.errorf(ErrTruncated, "missing ':' after string length")
	}
	if d.data[d.pos] != ':' {
		return nil, d.errorf(ErrSyntax, "expected ':' after string length, got %q", d.data[d.pos])
	}
	d.pos++ // skip ':'

	if length > uint64(len(d.data)-d.pos) {
		return nil, d.errorf(ErrTruncated, "string length %d exceeds %d remaining bytes", length, len(d.data)-d.pos)
	}
	str := make(String, length)
	copy(str, d.data[d.pos:])
	d.pos += int(length)
	return str, nil
}

func (d *Decoder) decodeList() (List, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	d.pos++ // skip 'l'
	list := List{}
	for d.pos < len(d.data) && d.data[d.pos] != 'e' {
		val, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		list = append(list, val)
	}
	if d.pos >= len(d.data) {
		return nil, d.errorf(ErrTruncated, "unterminated list")
	}
	d.pos++ // skip 'e'
	return list, nil
}

func (d *Decoder) decodeDict() (Dict, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	d.pos++ // skip 'd'
	dict := make(Dict)
	for d.pos < len(d.data) && d.data[d.pos] != 'e' {
		keyStart := d.pos
		if c := d.data[d.pos]; c < '0' || c > '9' {
			return nil, d.errorf(ErrSyntax, "dictionary key must be a string, got lead byte %q", c)
		}
		raw, err := d.decodeString()
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(raw) {
			return nil, d.errorAt(keyStart, ErrInvalidUTF8, "key %q", raw)
		}
		key := string(raw)
		if _, seen := dict[key]; seen && d.RejectDuplicateKeys {
			return nil, d.errorAt(keyStart, ErrDuplicateKey, "key %q", key)
		}

		val, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		dict[key] = val
	}
	if d.pos >= len(d.data) {
		return nil, d.errorf(ErrTruncated, "unterminated dictionary")
	}
	d.pos++ // skip 'e'
	return dict, nil
}

func (d *Decoder) enter() error {
	d.depth++
	if d.MaxDepth > 0 && d.depth > d.MaxDepth {
		return d.errorf(ErrTooDeep, "limit is %d", d.MaxDepth)
	}
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}

func (d *Decoder) errorf(kind error, format string, args ...interface{}) error {
	return d.errorAt(d.pos, kind, format, args...)
}

func (d *Decoder) errorAt(off int, kind error, format string, args ...interface{}) error {
	return &SyntaxError{Offset: off, Err: kind, msg: fmt.Sprintf(format, args...)}
}

// Decode decodes data, which must hold exactly one value and nothing else.
func Decode(data []byte) (Value, error) {
	return NewDecoder(data).DecodeStrict()
}

// DecodePrefix decodes the value at the start of data and ignores whatever
// follows it. The second result is the number of bytes the value occupied.
// Use it when framing is handled by the caller.
func DecodePrefix(data []byte) (Value, int, error) {
	d := NewDecoder(data)
	v, err := d.Decode()
	if err != nil {
		return nil, 0, err
	}
	return v, d.Offset(), nil
}

// DecodeStripped is Decode applied to StripWhitespace(data). See
// StripWhitespace for what this does to byte-string payloads.
func DecodeStripped(data []byte) (Value, error) {
	return Decode(StripWhitespace(data))
}

// DecodePrefixStripped is DecodePrefix applied to StripWhitespace(data). The
// byte count refers to the stripped buffer, not to data.
func DecodePrefixStripped(data []byte) (Value, int, error) {
	return DecodePrefix(StripWhitespace(data))
}
