package por

// TextCodec decodes/encodes raw string-cell payload bytes into/from Go
// strings. Per spec §9 "Character encoding", this is independent of the
// in-file byte-translation table (component D): it names a byte<->codepoint
// map the way an external collaborator (e.g. a Cp1252 table) would supply
// it. This module only needs a pluggable seam, not a codepage database, so
// the default is a Latin-1-style identity map (byte value == code point).
type TextCodec interface {
	Name() string
	Decode(raw []byte) string
	Encode(s string) []byte
}

type latin1Codec struct{}

func (latin1Codec) Name() string { return "latin1" }

func (latin1Codec) Decode(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

func (latin1Codec) Encode(s string) []byte {
	runes := []rune(s)
	out := make([]byte, 0, len(runes))
	for _, r := range runes {
		if r > 255 {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

// DefaultTextCodec is the Latin-1 stand-in used when no text_encoding is
// configured.
func DefaultTextCodec() TextCodec { return latin1Codec{} }
