package por

import (
	"bufio"
	"io"
)

const (
	DefaultLineLength      = 80
	DefaultMaxStringLength = 255
	DefaultStreamBufSize   = 16 * 1024
	numberSeparator        = '/'
	sysmissMarker          = '*'
)

// LineReaderConfig carries the enumerated reader options of spec §6.
type LineReaderConfig struct {
	LineLength         int
	AllowLongerLines   bool
	MaxStringLength    int
	AllowLongerStrings bool
	StreamBufferSize   int
}

func DefaultLineReaderConfig() LineReaderConfig {
	return LineReaderConfig{
		LineLength:       DefaultLineLength,
		MaxStringLength:  DefaultMaxStringLength,
		StreamBufferSize: DefaultStreamBufSize,
	}
}

// LineReader is the component-E byte-granular reader: line padding, CR
// skip, per-line-length enforcement, and byte-translation.
type LineReader struct {
	cfg   LineReaderConfig
	src   *bufio.Reader
	xlate *TranslationTable
	codec TextCodec
	num   *NumberParser

	line      int
	column    int
	offset    int64
	lastWasLF bool
	padLogged bool
	bound     bool
}

// NewLineReader constructs a reader over r, bound immediately (spec §5's
// "bound on bind()"; there is no separate two-phase bind step needed in Go
// since the io.Reader is supplied at construction, but Close releases it
// the same way unbind() would).
func NewLineReader(r io.Reader, cfg LineReaderConfig, xlate *TranslationTable, codec TextCodec, numParser *NumberParser) *LineReader {
	if cfg.LineLength <= 0 {
		cfg.LineLength = DefaultLineLength
	}
	if cfg.MaxStringLength <= 0 {
		cfg.MaxStringLength = DefaultMaxStringLength
	}
	if cfg.StreamBufferSize <= 0 {
		cfg.StreamBufferSize = DefaultStreamBufSize
	}
	if xlate == nil {
		xlate = NewIdentityTranslationTable()
	}
	if codec == nil {
		codec = DefaultTextCodec()
	}
	return &LineReader{
		cfg:   cfg,
		src:   bufio.NewReaderSize(r, cfg.StreamBufferSize),
		xlate: xlate,
		codec: codec,
		num:   numParser,
		bound: true,
	}
}

// Close releases the bound stream. Safe to call more than once.
func (lr *LineReader) Close() error {
	lr.bound = false
	return nil
}

func (lr *LineReader) Pos() Pos {
	return Pos{Line: lr.line, Column: lr.column, Offset: lr.offset}
}

// ReadByte returns the next translated byte, or -1 at end of file.
func (lr *LineReader) ReadByte() (int, *Error) {
	for {
		if lr.lastWasLF {
			if lr.column < lr.cfg.LineLength {
				if !lr.padLogged {
					Logger.Debug("padding short line", "line", lr.line, "from", lr.column, "to", lr.cfg.LineLength)
					lr.padLogged = true
				}
				lr.column++
				return int(' '), nil
			}
			lr.line++
			lr.column = 0
			lr.lastWasLF = false
			lr.padLogged = false
			continue
		}

		b, err := lr.src.ReadByte()
		if err == io.EOF {
			return -1, nil
		}
		if err != nil {
			return 0, newErr(ErrIO, "underlying read failed").withPos(lr.Pos())
		}

		if b == '\r' {
			continue
		}
		if b == '\n' {
			lr.lastWasLF = true
			continue
		}

		lr.column++
		if lr.column > lr.cfg.LineLength && !lr.cfg.AllowLongerLines {
			return 0, newErr(ErrLineTooLong, "physical line exceeds configured line length").withPos(lr.Pos())
		}
		lr.offset++
		return int(lr.xlate.Decode(b)), nil
	}
}

// ReadBytes fills out completely, treating premature EOF as
// ErrUnexpectedEOF.
func (lr *LineReader) ReadBytes(out []byte) *Error {
	for i := range out {
		b, err := lr.ReadByte()
		if err != nil {
			return err
		}
		if b == -1 {
			return newErr(ErrUnexpectedEOF, "stream ended while reading raw bytes").withPos(lr.Pos())
		}
		out[i] = byte(b)
	}
	return nil
}

// ReadUnsignedInt skips leading spaces, then feeds digits to a NumberParser
// until the number separator is consumed, and verifies the result is a
// non-negative integer representable in 32 bits. Used for string-cell
// length prefixes.
func (lr *LineReader) ReadUnsignedInt() (int32, *Error) {
	for {
		b, err := lr.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == -1 {
			return 0, newErr(ErrUnexpectedEOF, "stream ended reading integer").withPos(lr.Pos())
		}
		if b == int(' ') {
			continue
		}
		if b == sysmissMarker {
			return 0, newErr(ErrUnexpectedSysmiss, "sysmiss marker where integer required").withPos(lr.Pos())
		}
		lr.num.Reset()
		st := lr.num.Consume(b)
		for st == StatusUnfinished {
			nb, berr := lr.ReadByte()
			if berr != nil {
				return 0, berr
			}
			if nb == -1 {
				return 0, newErr(ErrUnexpectedEOF, "stream ended reading integer").withPos(lr.Pos())
			}
			if nb == numberSeparator {
				st = lr.num.Consume(-1)
				break
			}
			st = lr.num.Consume(nb)
		}
		if st != StatusAccepted {
			nerr := lr.num.Err()
			if nerr == nil {
				nerr = newErr(ErrSyntax, "malformed integer")
			}
			return 0, nerr.withPos(lr.Pos())
		}
		v := lr.num.Result()
		if v < 0 || v != float64(int32(v)) {
			return 0, newErr(ErrSyntax, "value is not a non-negative 32-bit integer").withPos(lr.Pos())
		}
		return int32(v), nil
	}
}

// ReadString reads a length-prefixed string cell: an unsigned integer L
// followed by '/', followed by exactly L raw bytes, decoded through codec.
func (lr *LineReader) ReadString() (string, *Error) {
	length, err := lr.ReadUnsignedInt()
	if err != nil {
		return "", err
	}
	n := int(length)
	if n > lr.cfg.MaxStringLength {
		if !lr.cfg.AllowLongerStrings {
			return "", newErr(ErrStringTooLong, "string length exceeds configured maximum").withPos(lr.Pos())
		}
	}
	raw := make([]byte, n)
	if err := lr.ReadBytes(raw); err != nil {
		return "", err
	}
	return lr.codec.Decode(raw), nil
}
