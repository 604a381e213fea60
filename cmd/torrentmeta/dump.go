package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mindsgn-studio/torrentmeta/bencode"
)

// Binary strings longer than this are shown as a length and a hex preview.
const maxBinaryPreview = 16

func dumpValue(w io.Writer, v bencode.Value, indent int) {
	pad := strings.Repeat("  ", indent)
	switch v := v.(type) {
	case bencode.String:
		fmt.Fprintln(w, formatString(v))
	case bencode.Int:
		fmt.Fprintln(w, int64(v))
	case bencode.List:
		fmt.Fprintf(w, "list (%d)\n", len(v))
		for _, e := range v {
			fmt.Fprintf(w, "%s  - ", pad)
			dumpValue(w, e, indent+1)
		}
	case bencode.Dict:
		fmt.Fprintf(w, "dict (%d)\n", len(v))
		for _, k := range v.Keys() {
			fmt.Fprintf(w, "%s  %q: ", pad, k)
			dumpValue(w, v[k], indent+1)
		}
	}
}

func formatString(s bencode.String) string {
	if utf8.Valid(s) {
		return fmt.Sprintf("%q", string(s))
	}
	if len(s) <= maxBinaryPreview {
		return fmt.Sprintf("<%d bytes> %x", len(s), []byte(s))
	}
	return fmt.Sprintf("<%d bytes> %x...", len(s), []byte(s[:maxBinaryPreview]))
}
