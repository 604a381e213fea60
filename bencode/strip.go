package bencode

// StripWhitespace returns a copy of data without any space, tab, carriage
// return or newline bytes. It knows nothing about the grammar: whitespace
// inside byte-string payloads is removed as well, which changes their content
// and usually invalidates their length prefixes. Only use it on hand-written,
// pretty-printed documents that carry no binary payloads.
func StripWhitespace(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		out = append(out, c)
	}
	return out
}
