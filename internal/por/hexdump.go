package por

import "fmt"

// HexDump renders p in the traditional 16-bytes-per-row offset/hex/ASCII
// layout, for diagnostic logging around a parse failure.
func HexDump(p []byte) string {
	var out []byte
	offset := 0
	for len(p) > 0 {
		n := len(p)
		if n > 16 {
			n = 16
		}
		out = append(out, []byte(fmt.Sprintf("  %03x: ", offset))...)
		for i := 0; i < n; i++ {
			out = append(out, []byte(fmt.Sprintf(" %02x", p[i]))...)
		}
		for i := n; i < 16; i++ {
			out = append(out, "   "...)
		}
		out = append(out, "  "...)
		for i := 0; i < n; i++ {
			if p[i] >= 0x20 && p[i] <= 0x7E {
				out = append(out, p[i])
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
		p = p[n:]
		offset += n
	}
	return string(out)
}
