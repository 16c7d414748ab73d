package por

// MatrixEmitter is the component-H visitor implementation that drives a
// LineWriter + NumberFormatter to serialise a visitor-style stream of typed
// cells. Its methods are meant to be called in the same order a
// MatrixParser would deliver them: BeginMatrix, then per row BeginRow,
// cells, EndRow, finally EndMatrix.
type MatrixEmitter struct {
	w            *LineWriter
	sysmissSep   byte
	err          *Error
}

func NewMatrixEmitter(w *LineWriter) *MatrixEmitter {
	return &MatrixEmitter{w: w, sysmissSep: '.'}
}

func (e *MatrixEmitter) Err() *Error { return e.err }

func (e *MatrixEmitter) setErr(err *Error) {
	if e.err == nil {
		e.err = err
	}
}

// BeginMatrix does nothing: any surrounding file framing is the caller's
// responsibility (spec §4.H).
func (e *MatrixEmitter) BeginMatrix() {}

func (e *MatrixEmitter) BeginRow() {}

func (e *MatrixEmitter) Numeric(v float64) {
	if err := e.w.WriteDouble(v); err != nil {
		e.setErr(err)
	}
}

func (e *MatrixEmitter) Sysmiss(_ []byte) {
	if err := e.w.WriteSysmiss(e.sysmissSep); err != nil {
		e.setErr(err)
	}
}

func (e *MatrixEmitter) String(b []byte) {
	if err := e.w.WriteInt(int64(len(b))); err != nil {
		e.setErr(err)
		return
	}
	for _, c := range b {
		if err := e.w.WriteByte(c); err != nil {
			e.setErr(err)
			return
		}
	}
}

// EndRow does nothing: the next cell continues on the same logical line.
func (e *MatrixEmitter) EndRow() {}

func (e *MatrixEmitter) EndMatrix() {
	if err := e.w.WriteEOFMarkers(); err != nil {
		e.setErr(err)
	}
}

var _ MatrixVisitor = (*MatrixEmitter)(nil)
