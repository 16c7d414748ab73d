package por

import "io"

// Reader composes the line-framed reader (E) with the matrix parser (G)
// into the read-path pipeline spec §2 describes: raw bytes -> E -> G ->
// typed cell events.
type Reader struct {
	lr *LineReader
	mp *MatrixParser
}

// NewReader builds a Reader. xlate may be nil for an identity table (no
// declared translation); visitor receives the typed cell events.
func NewReader(r io.Reader, cfg Config, xlate *TranslationTable, types []ColumnType, visitor MatrixVisitor) (*Reader, error) {
	radix, err := cfg.BuildRadix()
	if err != nil {
		return nil, err
	}
	numCtx := cfg.BuildNumericContext()
	parser := NewNumberParser(radix, numCtx)
	lr := NewLineReader(r, cfg.BuildLineReaderConfig(), xlate, nil, parser)
	mp := NewMatrixParser(types, cfg.LineLength, 0, parser, visitor)
	return &Reader{lr: lr, mp: mp}, nil
}

// Run drives the reader until the matrix parser accepts (end-of-data
// marker reached) or an error is encountered.
func (rd *Reader) Run() *Error {
	for {
		b, err := rd.lr.ReadByte()
		if err != nil {
			return err
		}
		if b == -1 {
			return newErr(ErrUnexpectedEOF, "stream ended before end-of-data marker").withPos(rd.lr.Pos())
		}
		st := rd.mp.Consume(byte(b))
		switch st {
		case StatusAccepted:
			return nil
		case StatusRejected:
			return rd.mp.Err()
		}
	}
}

// Writer composes the line-framed writer (F) with the matrix emitter (H):
// a MatrixVisitor implementation a caller drives directly with its own
// BeginMatrix/BeginRow/.../EndMatrix calls.
type Writer struct {
	*MatrixEmitter
	lw *LineWriter
}

func NewWriter(w io.Writer, cfg Config, xlate *TranslationTable) (*Writer, error) {
	radix, err := cfg.BuildRadix()
	if err != nil {
		return nil, err
	}
	numCtx := cfg.BuildNumericContext()
	formatter := NewNumberFormatter(radix, numCtx, cfg.Precision)
	lw := NewLineWriter(w, cfg.BuildLineWriterConfig(), xlate, nil, formatter)
	return &Writer{MatrixEmitter: NewMatrixEmitter(lw), lw: lw}, nil
}

// Flush flushes the underlying line writer's buffer.
func (w *Writer) Flush() *Error { return w.lw.Flush() }
