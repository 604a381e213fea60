package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, []byte("abct"), StripWhitespace([]byte("a b c   t")))
	assert.Equal(t, []byte("abc"), StripWhitespace([]byte("a \r b \n c")))
	assert.Equal(t, []byte("x\v\fy"), StripWhitespace([]byte("x\v\f\ty")))
	assert.Equal(t, []byte{}, StripWhitespace(nil))

	in := []byte("d 1:a i1e e")
	StripWhitespace(in)
	assert.Equal(t, []byte("d 1:a i1e e"), in)
}
