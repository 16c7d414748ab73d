package por

import (
	"bufio"
	"io"
)

type EOLStyle int

const (
	EOLCRLF EOLStyle = iota
	EOLLF
)

// LineWriterConfig carries the enumerated writer options of spec §6.
type LineWriterConfig struct {
	LineLength          int
	EOL                 EOLStyle
	MaxStringLength     int
	TruncateLongStrings bool
}

func DefaultLineWriterConfig() LineWriterConfig {
	return LineWriterConfig{
		LineLength:      DefaultLineLength,
		EOL:             EOLCRLF,
		MaxStringLength: DefaultMaxStringLength,
	}
}

// LineWriter is the component-F byte-granular writer: translation,
// automatic end-of-line insertion, and EOF padding.
type LineWriter struct {
	cfg   LineWriterConfig
	dst   *bufio.Writer
	xlate *TranslationTable
	codec TextCodec
	fmt   *NumberFormatter

	line   int
	column int
}

func NewLineWriter(w io.Writer, cfg LineWriterConfig, xlate *TranslationTable, codec TextCodec, fmtr *NumberFormatter) *LineWriter {
	if cfg.LineLength <= 0 {
		cfg.LineLength = DefaultLineLength
	}
	if cfg.MaxStringLength <= 0 {
		cfg.MaxStringLength = DefaultMaxStringLength
	}
	if xlate == nil {
		xlate = NewIdentityTranslationTable()
	}
	if codec == nil {
		codec = DefaultTextCodec()
	}
	return &LineWriter{
		cfg:   cfg,
		dst:   bufio.NewWriter(w),
		xlate: xlate,
		codec: codec,
		fmt:   fmtr,
	}
}

func (lw *LineWriter) Pos() Pos {
	return Pos{Line: lw.line, Column: lw.column}
}

// WriteByte translates b and writes it, inserting an EOL once the
// configured line length is reached.
func (lw *LineWriter) WriteByte(b byte) *Error {
	if err := lw.dst.WriteByte(lw.xlate.Encode(b)); err != nil {
		return newErr(ErrIO, "underlying write failed").withPos(lw.Pos())
	}
	lw.column++
	if lw.column == lw.cfg.LineLength {
		if err := lw.writeEOL(); err != nil {
			return err
		}
		lw.column = 0
		lw.line++
	}
	return nil
}

func (lw *LineWriter) writeEOL() *Error {
	var eol []byte
	if lw.cfg.EOL == EOLCRLF {
		eol = []byte{'\r', '\n'}
	} else {
		eol = []byte{'\n'}
	}
	if _, err := lw.dst.Write(eol); err != nil {
		return newErr(ErrIO, "underlying write failed").withPos(lw.Pos())
	}
	return nil
}

func (lw *LineWriter) writeBytes(b []byte) *Error {
	for _, c := range b {
		if err := lw.WriteByte(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteInt serialises v via the NumberFormatter and terminates it with the
// number separator.
func (lw *LineWriter) WriteInt(v int64) *Error {
	if err := lw.writeBytes(lw.fmt.FormatInt(v)); err != nil {
		return err
	}
	return lw.WriteByte(numberSeparator)
}

// WriteDouble serialises v via FormatDouble and terminates it with the
// number separator.
func (lw *LineWriter) WriteDouble(v float64) *Error {
	if err := lw.writeBytes(lw.fmt.FormatDouble(v)); err != nil {
		return err
	}
	return lw.WriteByte(numberSeparator)
}

// WriteReformattedNumber reformats an already-formatted digit string to
// the formatter's configured precision and writes the result.
func (lw *LineWriter) WriteReformattedNumber(text []byte) *Error {
	scratch := make([]byte, len(text))
	copy(scratch, text)
	out := lw.fmt.Reformat(scratch, len(scratch), lw.fmt.precision)
	if err := lw.writeBytes(out); err != nil {
		return err
	}
	return lw.WriteByte(numberSeparator)
}

// WriteString encodes s via codec, enforces MaxStringLength, and emits the
// length prefix followed by the raw encoded bytes.
func (lw *LineWriter) WriteString(s string) *Error {
	raw := lw.codec.Encode(s)
	if len(raw) > lw.cfg.MaxStringLength {
		if !lw.cfg.TruncateLongStrings {
			return newErr(ErrStringTooLong, "string exceeds configured maximum length").withPos(lw.Pos())
		}
		raw = raw[:lw.cfg.MaxStringLength]
	}
	if err := lw.WriteInt(int64(len(raw))); err != nil {
		return err
	}
	return lw.writeBytes(raw)
}

// WriteSysmiss emits the system-missing marker followed by sep (default
// '.').
func (lw *LineWriter) WriteSysmiss(sep byte) *Error {
	if err := lw.WriteByte(sysmissMarker); err != nil {
		return err
	}
	return lw.WriteByte(sep)
}

// WriteEOFMarkers emits the end-of-data 'Z' byte and pads the remainder of
// the current line with further 'Z' bytes, per spec §4.F / §6.
func (lw *LineWriter) WriteEOFMarkers() *Error {
	Logger.Debug("emitting end-of-data marker", "line", lw.line, "column", lw.column)
	if err := lw.WriteByte('Z'); err != nil {
		return err
	}
	for lw.column != 0 {
		if err := lw.WriteByte('Z'); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying buffered writer.
func (lw *LineWriter) Flush() *Error {
	if err := lw.dst.Flush(); err != nil {
		return newErr(ErrIO, "flush failed").withPos(lw.Pos())
	}
	return nil
}
