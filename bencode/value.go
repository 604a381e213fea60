package bencode

import (
	"sort"
	"unicode/utf8"
)

// Kind identifies which production a Value came from.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	}
	return "unknown"
}

// Value is a decoded bencode node. The set of implementations is closed:
// String, Int, List and Dict.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a byte string (can contain binary data)
type String []byte

// Int is an integer
type Int int64

// List is an ordered list
type List []Value

// Dict is a dictionary with UTF-8 string keys
type Dict map[string]Value

func (String) Kind() Kind { return KindString }
func (Int) Kind() Kind    { return KindInt }
func (List) Kind() Kind   { return KindList }
func (Dict) Kind() Kind   { return KindDict }

func (String) isValue() {}
func (Int) isValue()    {}
func (List) isValue()   {}
func (Dict) isValue()   {}

// Keys returns the dictionary keys in byte order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// The As* projections never panic. A nil Value, which is what indexing a
// Dict with a missing key yields, projects to false like any other mismatch.

// AsBytes returns the payload of a byte string.
func AsBytes(v Value) ([]byte, bool) {
	s, ok := v.(String)
	return []byte(s), ok
}

// AsString returns a byte string that holds valid UTF-8.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	if !ok || !utf8.Valid(s) {
		return "", false
	}
	return string(s), true
}

// AsInt returns an integer value.
func AsInt(v Value) (int64, bool) {
	i, ok := v.(Int)
	return int64(i), ok
}

// AsUint returns the bit pattern of an integer as uint64. Negative integers
// come back as large values; check with AsInt first if that matters.
func AsUint(v Value) (uint64, bool) {
	i, ok := v.(Int)
	return uint64(i), ok
}

// AsList returns the elements of a list.
func AsList(v Value) (List, bool) {
	l, ok := v.(List)
	return l, ok
}

// AsStrings returns a list whose every element is a UTF-8 byte string.
// One bad element fails the whole projection.
func AsStrings(v Value) ([]string, bool) {
	l, ok := v.(List)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(l))
	for _, e := range l {
		s, ok := AsString(e)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// AsDict returns a dictionary.
func AsDict(v Value) (Dict, bool) {
	d, ok := v.(Dict)
	return d, ok
}

// Native converts v into plain Go values: string, int64, []interface{} and
// map[string]interface{}. A nil Value converts to nil.
func Native(v Value) interface{} {
	switch v := v.(type) {
	case String:
		return string(v)
	case Int:
		return int64(v)
	case List:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = Native(e)
		}
		return out
	case Dict:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = Native(e)
		}
		return out
	}
	return nil
}
