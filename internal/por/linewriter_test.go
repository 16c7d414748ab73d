package por

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LineWriter_NoEOLBeforeLineLength(t *testing.T) {
	var buf bytes.Buffer
	cfg := LineWriterConfig{LineLength: 5, EOL: EOLLF, MaxStringLength: DefaultMaxStringLength}
	lw := NewLineWriter(&buf, cfg, nil, nil, nil)

	require.Nil(t, lw.WriteByte('A'))
	require.Nil(t, lw.WriteByte('B'))
	require.Nil(t, lw.Flush())

	// Only 2 of 5 columns written; no EOL should have been emitted yet.
	assert.Equal(t, "AB", buf.String())
}

func Test_LineWriter_EmitsEOLAtLineLength(t *testing.T) {
	var buf bytes.Buffer
	cfg := LineWriterConfig{LineLength: 3, EOL: EOLLF, MaxStringLength: DefaultMaxStringLength}
	lw := NewLineWriter(&buf, cfg, nil, nil, nil)

	for _, b := range []byte("ABCDEF") {
		require.Nil(t, lw.WriteByte(b))
	}
	require.Nil(t, lw.Flush())

	assert.Equal(t, "ABC\nDEF\n", buf.String())
}

func Test_LineWriter_CRLFStyle(t *testing.T) {
	var buf bytes.Buffer
	cfg := LineWriterConfig{LineLength: 2, EOL: EOLCRLF, MaxStringLength: DefaultMaxStringLength}
	lw := NewLineWriter(&buf, cfg, nil, nil, nil)

	require.Nil(t, lw.WriteByte('X'))
	require.Nil(t, lw.WriteByte('Y'))
	require.Nil(t, lw.Flush())

	assert.Equal(t, "XY\r\n", buf.String())
}

func Test_LineWriter_WriteEOFMarkers_PadsToLineBoundary(t *testing.T) {
	var buf bytes.Buffer
	cfg := LineWriterConfig{LineLength: 4, EOL: EOLLF, MaxStringLength: DefaultMaxStringLength}
	lw := NewLineWriter(&buf, cfg, nil, nil, nil)

	require.Nil(t, lw.WriteByte('A'))
	require.Nil(t, lw.WriteEOFMarkers())
	require.Nil(t, lw.Flush())

	assert.Equal(t, "AZZZ\n", buf.String())
}

func Test_LineWriter_WriteString_TooLong(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLineWriterConfig()
	cfg.MaxStringLength = 4
	r := base30(t)
	fmtr := NewNumberFormatter(r, nil, 11)
	lw := NewLineWriter(&buf, cfg, nil, nil, fmtr)

	err := lw.WriteString("too long for the limit")
	require.NotNil(t, err)
	assert.Equal(t, ErrStringTooLong, err.Kind)
}

func Test_LineWriter_WriteString_Truncates(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLineWriterConfig()
	cfg.MaxStringLength = 3
	cfg.TruncateLongStrings = true
	r := base30(t)
	fmtr := NewNumberFormatter(r, nil, 11)
	lw := NewLineWriter(&buf, cfg, nil, nil, fmtr)

	require.Nil(t, lw.WriteString("abcdef"))
	require.Nil(t, lw.Flush())
	assert.True(t, strings.Contains(buf.String(), "abc"))
	assert.False(t, strings.Contains(buf.String(), "abcd"))
}
