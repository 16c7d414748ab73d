package por

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func readAll(t *testing.T, lr *LineReader, n int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < n; i++ {
		b, err := lr.ReadByte()
		require.Nil(t, err)
		require.NotEqual(t, -1, b)
		sb.WriteByte(byte(b))
	}
	return sb.String()
}

func Test_LineReader_PadsShortLineWithSpaces(t *testing.T) {
	cfg := LineReaderConfig{LineLength: 5, MaxStringLength: DefaultMaxStringLength, StreamBufferSize: DefaultStreamBufSize}
	lr := NewLineReader(strings.NewReader("AB\nCD\n"), cfg, nil, nil, nil)

	// "AB" padded with 3 spaces to fill the 5-column line.
	got := readAll(t, lr, 5)
	assert.Equal(t, "AB   ", got)

	got2 := readAll(t, lr, 5)
	assert.Equal(t, "CD   ", got2)
}

func Test_LineReader_StripsCR(t *testing.T) {
	cfg := DefaultLineReaderConfig()
	lr := NewLineReader(strings.NewReader("AB\r\n"), cfg, nil, nil, nil)
	got := readAll(t, lr, DefaultLineLength)
	assert.Equal(t, "AB"+strings.Repeat(" ", DefaultLineLength-2), got)
}

func Test_LineReader_EOF(t *testing.T) {
	cfg := LineReaderConfig{LineLength: 2, MaxStringLength: DefaultMaxStringLength, StreamBufferSize: DefaultStreamBufSize}
	lr := NewLineReader(strings.NewReader(""), cfg, nil, nil, nil)
	b, err := lr.ReadByte()
	require.Nil(t, err)
	assert.Equal(t, -1, b)
}

func Test_LineReader_LineTooLong(t *testing.T) {
	cfg := LineReaderConfig{LineLength: 3, MaxStringLength: DefaultMaxStringLength, StreamBufferSize: DefaultStreamBufSize}
	lr := NewLineReader(strings.NewReader("ABCD\n"), cfg, nil, nil, nil)
	for i := 0; i < 3; i++ {
		_, err := lr.ReadByte()
		require.Nil(t, err)
	}
	_, err := lr.ReadByte()
	require.NotNil(t, err)
	assert.Equal(t, ErrLineTooLong, err.Kind)
}

func Test_LineReader_AllowLongerLines(t *testing.T) {
	cfg := LineReaderConfig{LineLength: 3, AllowLongerLines: true, MaxStringLength: DefaultMaxStringLength, StreamBufferSize: DefaultStreamBufSize}
	lr := NewLineReader(strings.NewReader("ABCD"), cfg, nil, nil, nil)
	got := readAll(t, lr, 4)
	assert.Equal(t, "ABCD", got)
}

func Test_LineReader_ReadUnsignedInt(t *testing.T) {
	r := base30(t)
	p := NewNumberParser(r, nil)
	cfg := DefaultLineReaderConfig()
	lr := NewLineReader(strings.NewReader("5/"+strings.Repeat(" ", DefaultLineLength-2)), cfg, nil, nil, p)

	v, err := lr.ReadUnsignedInt()
	require.Nil(t, err)
	assert.Equal(t, int32(5), v)
}

func Test_LineReader_ReadString(t *testing.T) {
	r := base30(t)
	p := NewNumberParser(r, nil)
	cfg := DefaultLineReaderConfig()
	payload := "5/ABCDE"
	padded := payload + strings.Repeat(" ", DefaultLineLength-len(payload))
	lr := NewLineReader(strings.NewReader(padded), cfg, nil, nil, p)

	s, err := lr.ReadString()
	require.Nil(t, err)
	assert.Equal(t, "ABCDE", s)
}

func Test_LineReader_PaddingEquivalence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lineLength := rapid.IntRange(1, 40).Draw(t, "lineLength")
		contentLen := rapid.IntRange(0, lineLength).Draw(t, "contentLen")
		raw := rapid.SliceOfN(rapid.Byte(), contentLen, contentLen).Draw(t, "content")
		content := make([]byte, len(raw))
		for i, b := range raw {
			content[i] = 32 + b%95 // keep it printable, away from CR/LF
		}

		cfg := LineReaderConfig{LineLength: lineLength, MaxStringLength: DefaultMaxStringLength, StreamBufferSize: DefaultStreamBufSize}
		lr := NewLineReader(bytes.NewReader(append(content, '\n')), cfg, nil, nil, nil)

		var got strings.Builder
		for i := 0; i < lineLength; i++ {
			b, err := lr.ReadByte()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b == -1 {
				t.Fatalf("unexpected EOF at byte %d", i)
			}
			got.WriteByte(byte(b))
		}
		want := string(content) + strings.Repeat(" ", lineLength-contentLen)
		if got.String() != want {
			t.Fatalf("padding mismatch: lineLength=%d content=%q got=%q want=%q", lineLength, content, got.String(), want)
		}
	})
}

func Test_LineReader_WriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	cfg := LineWriterConfig{LineLength: 10, EOL: EOLLF, MaxStringLength: DefaultMaxStringLength}
	lw := NewLineWriter(&buf, cfg, nil, nil, nil)
	for _, b := range []byte("abcdefghij") {
		require.Nil(t, lw.WriteByte(b))
	}
	require.Nil(t, lw.Flush())

	// A full 10-column line was written, so the writer already emitted the
	// EOL; the reader should hand the exact 10 bytes back unpadded.
	rcfg := LineReaderConfig{LineLength: 10, MaxStringLength: DefaultMaxStringLength, StreamBufferSize: DefaultStreamBufSize}
	lr := NewLineReader(strings.NewReader(buf.String()), rcfg, nil, nil, nil)
	got := readAll(t, lr, 10)
	assert.Equal(t, "abcdefghij", got)
}
