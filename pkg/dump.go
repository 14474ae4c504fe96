package pkg

import (
	"fmt"
	"strings"
)

// previewLen is the maximum number of bytes rendered by HexPreview.
const previewLen = 15

// HexPreview formats the leading bytes of b for debug logging: the
// printable characters in single quotes followed by the hex values.
// At most 15 bytes are rendered.
func HexPreview(b []byte) string {
	n := len(b)
	if n > previewLen {
		n = previewLen
	}

	var sb strings.Builder
	sb.WriteByte('\'')
	for _, c := range b[:n] {
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteString("' ")
	for i, c := range b[:n] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
