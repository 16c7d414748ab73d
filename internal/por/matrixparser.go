package por

type cellState int

const (
	cStart cellState = iota
	cNewRow
	cNewColumn
	cNumericEmpty
	cNumericUnempty
	cNumericReady
	cSysmissDummy
	cSysmissReady
	cStrlenReady
	cStringContents
	cStringReady
	cNextColumn
	cNextRow
	cAccept
	cError
)

const eofMarker = 'Z'

// MatrixParser is the push-driven component-G state machine: it consumes
// the translated byte stream cell-by-cell in row-major order and dispatches
// typed events to a MatrixVisitor. Construct with NewMatrixParser, then
// feed it every translated byte (including literal CR/LF) via Consume.
type MatrixParser struct {
	types    []ColumnType
	rowWidth int
	num      *NumberParser
	visitor  MatrixVisitor

	xdim int
	ydim int

	matrixColumn int // position within the current row, for LF padding

	state cellState
	x, y  int

	vbuffer []byte
	vbase   int

	strLen  int32
	strRead int

	started bool
	err     *Error
}

// NewMatrixParser builds a parser for the given column types. startColumn
// seeds matrixColumn, for the case the matrix begins mid-line.
func NewMatrixParser(types []ColumnType, rowWidth int, startColumn int, num *NumberParser, visitor MatrixVisitor) *MatrixParser {
	return &MatrixParser{
		types:        types,
		rowWidth:     rowWidth,
		num:          num,
		visitor:      visitor,
		xdim:         len(types),
		matrixColumn: startColumn,
		state:        cStart,
	}
}

// Xdim returns the configured column count.
func (mp *MatrixParser) Xdim() int { return mp.xdim }

// Ydim returns the number of rows discovered once Consume has returned
// StatusAccepted; undefined before then.
func (mp *MatrixParser) Ydim() int { return mp.ydim }

func (mp *MatrixParser) Err() *Error { return mp.err }

func (mp *MatrixParser) fail(kind ErrorKind, msg string) ParseStatus {
	mp.state = cError
	mp.err = newErr(kind, msg)
	return StatusRejected
}

// Consume feeds one raw byte to the matrix parser. It returns Unfinished
// while still mid-stream, Accepted once the end-of-data marker has been
// recognised at a row boundary, Rejected on a fatal parse error.
func (mp *MatrixParser) Consume(b byte) ParseStatus {
	if mp.state == cAccept {
		return StatusAccepted
	}
	if mp.state == cError {
		return StatusRejected
	}
	if !mp.started {
		mp.started = true
		mp.visitor.BeginMatrix()
	}

	switch b {
	case '\r':
		return StatusUnfinished
	case '\n':
		for mp.matrixColumn < mp.rowWidth {
			mp.matrixColumn++
			if st := mp.eat(' '); st != StatusUnfinished {
				return st
			}
		}
		mp.matrixColumn = 0
		return StatusUnfinished
	default:
		mp.matrixColumn++
		return mp.eat(b)
	}
}

// eat drives the inner cell state machine for one consumed byte, looping
// through epsilon-transitions until a byte is genuinely needed again or a
// terminal state is reached.
func (mp *MatrixParser) eat(b byte) ParseStatus {
	for {
		switch mp.state {
		case cStart:
			mp.state = cNewRow
			continue

		case cNewRow:
			if b == eofMarker {
				mp.ydim = mp.y
				mp.state = cAccept
				mp.visitor.EndMatrix()
				return StatusAccepted
			}
			mp.visitor.BeginRow()
			mp.state = cNewColumn
			continue

		case cNewColumn:
			mp.num.Reset()
			mp.vbuffer = mp.vbuffer[:0]
			mp.vbase = 0
			mp.state = cNumericEmpty
			continue

		case cNumericEmpty:
			if b == ' ' {
				return StatusUnfinished
			}
			if b == sysmissMarker {
				if mp.curType() == ColumnString {
					return mp.fail(ErrSyntax, "sysmiss marker in string column")
				}
				mp.state = cSysmissDummy
				return StatusUnfinished
			}
			if b == numberSeparator && len(mp.vbuffer) == 0 {
				return mp.fail(ErrSyntax, "empty numeric field")
			}
			// Any other byte (digit, sign, point) starts the number;
			// NUMERIC_UNEMPTY hands it to the number parser directly.
			mp.state = cNumericUnempty
			continue

		case cNumericUnempty:
			if b == numberSeparator {
				mp.vbase = len(mp.vbuffer)
				if mp.curType() == ColumnString {
					mp.state = cStrlenReady
				} else {
					mp.state = cNumericReady
				}
				continue
			}
			if b == sysmissMarker && mp.curType() == ColumnString {
				return mp.fail(ErrSyntax, "sysmiss marker in string column")
			}
			mp.vbuffer = append(mp.vbuffer, b)
			st := mp.num.Consume(int(b))
			if st == StatusRejected {
				return mp.fail(mp.num.Err().Kind, mp.num.Err().Message)
			}
			return StatusUnfinished

		case cNumericReady:
			st := mp.num.Consume(-1)
			switch st {
			case StatusAccepted:
				mp.visitor.Numeric(mp.num.Result())
				mp.state = cNextColumn
				continue
			case StatusRejected:
				k := mp.num.Err().Kind
				if k == ErrOverflow || k == ErrUnderflow {
					Logger.Debug("numeric overflow converted to sysmiss", "row", mp.y, "column", mp.x, "kind", k)
					mp.visitor.Sysmiss(append([]byte(nil), mp.vbuffer...))
					mp.state = cNextColumn
					continue
				}
				return mp.fail(k, mp.num.Err().Message)
			}
			return StatusUnfinished

		case cSysmissDummy:
			mp.state = cSysmissReady
			continue

		case cSysmissReady:
			mp.visitor.Sysmiss(nil)
			mp.state = cNextColumn
			continue

		case cStrlenReady:
			st := mp.num.Consume(-1)
			if st != StatusAccepted {
				if mp.num.Err() != nil {
					return mp.fail(mp.num.Err().Kind, mp.num.Err().Message)
				}
				return mp.fail(ErrSyntax, "malformed string length")
			}
			v := mp.num.Result()
			if v <= 0 || v > 255 {
				if v > 255 {
					return mp.fail(ErrStringTooLong, "string length exceeds 255")
				}
				return mp.fail(ErrSyntax, "string length must be in (0, 255]")
			}
			mp.strLen = int32(v)
			mp.strRead = 0
			mp.vbuffer = mp.vbuffer[:0]
			mp.state = cStringContents
			// We already consumed the separator; the *next* byte begins
			// the payload, so wait for it.
			return StatusUnfinished

		case cStringContents:
			mp.vbuffer = append(mp.vbuffer, b)
			mp.strRead++
			if mp.strRead >= int(mp.strLen) {
				mp.state = cStringReady
				continue
			}
			return StatusUnfinished

		case cStringReady:
			mp.visitor.String(append([]byte(nil), mp.vbuffer...))
			mp.state = cNextColumn
			continue

		case cNextColumn:
			mp.x++
			if mp.x == mp.xdim {
				mp.state = cNextRow
			} else {
				mp.state = cNewColumn
			}
			// The byte that got us here was already consumed by the cell
			// we just finished (it was its terminating separator);
			// cNewColumn/cNewRow must inspect a genuinely new byte, not
			// this stale one.
			return StatusUnfinished

		case cNextRow:
			mp.visitor.EndRow()
			mp.y++
			mp.x = 0
			mp.state = cNewRow
			continue
		}
	}
}

func (mp *MatrixParser) curType() ColumnType {
	return mp.types[mp.x]
}
