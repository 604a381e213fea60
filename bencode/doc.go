// Package bencode decodes the bencode serialization format into a tree of
// Values.
//
// The format has four productions, selected by the first byte:
//
//	<len>:<bytes>     byte string, e.g. 4:spam
//	i<int>e           signed 64-bit integer, e.g. i-3e
//	l<value>*e        list, e.g. l4:spami42ee
//	d(<str><value>)*e dictionary, e.g. d3:bar4:spame
//
// Integers may not carry a '+' sign, leading zeros or a negative zero, and
// must fit in an int64. Dictionary keys must be valid UTF-8.
//
// Decode requires the buffer to hold exactly one value; DecodePrefix stops
// after the first one. Both are all-or-nothing: on error no partial tree is
// returned, and the error wraps one of the Err* values together with the
// offset at which decoding stopped.
//
// Encoding is not provided.
package bencode
