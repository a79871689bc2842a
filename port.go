package eloquent

import (
	"bytes"
	"io"
)

// byteSource is the minimal read surface Port needs: anything that can
// hand back one byte at a time. MemReader below is the in-memory
// implementation Eloquent ships, with an optional Seek an embedder's
// own source may or may not support; an embedder wiring a real file or
// socket can pass its own *bufio.Reader directly, since that already
// satisfies io.ByteReader.
type byteSource interface {
	io.ByteReader
}

// MemReader is an in-memory byte buffer with a cursor, exposing
// ReadByte.
type MemReader struct {
	data []byte
	pos  int
}

func NewMemReader(data []byte) *MemReader { return &MemReader{data: data} }

func (r *MemReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *MemReader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart || offset < 0 || int(offset) > len(r.data) {
		return 0, faultf("invalid seek")
	}
	r.pos = int(offset)
	return offset, nil
}

// Port is a character-oriented input stream tracking line and column
// (spec §4.1 "Input: a character-oriented port tracking line and
// column"), grounded on base_parser.go's cursor/line/column
// bookkeeping and vm_input.go's Peek/Read split.
type Port struct {
	src    byteSource
	name   string
	peeked bool
	pb     byte
	line   int
	column int
}

func NewPort(src byteSource, name string) *Port {
	return &Port{src: src, name: name, line: 1, column: 1}
}

func (p *Port) Name() string { return p.name }

func (p *Port) Line() int   { return p.line }
func (p *Port) Column() int { return p.column }

// PeekByte returns the next byte without consuming it.
func (p *Port) PeekByte() (byte, error) {
	if p.peeked {
		return p.pb, nil
	}
	b, err := p.src.ReadByte()
	if err != nil {
		return 0, err
	}
	p.pb = b
	p.peeked = true
	return b, nil
}

// ReadByte consumes and returns the next byte, advancing line/column
// bookkeeping the same way base_parser.go's Any() does.
func (p *Port) ReadByte() (byte, error) {
	b, err := p.PeekByte()
	if err != nil {
		return 0, err
	}
	p.peeked = false
	if b == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	return b, nil
}

// UnreadByte pushes b back so the next PeekByte/ReadByte sees it
// again. Only a single byte of pushback is supported, matching the
// reader's one-token-of-lookahead needs.
func (p *Port) UnreadByte(b byte) {
	p.peeked = true
	p.pb = b
}

var _ io.ByteReader = (*Port)(nil)

// NewStringPort is a convenience constructor for tests and REPL
// one-liners.
func NewStringPort(s string) *Port {
	return NewPort(NewMemReader([]byte(s)), "<string>")
}

// StringOutput is a minimal in-memory output port, used by tests and
// by the "string output port" the spec's reader surface never
// mandates but primitives_ports.go wires up for `with-output-to-string`
// -style usage.
type StringOutput struct {
	buf bytes.Buffer
}

func (s *StringOutput) WriteString(str string) (int, error) { return s.buf.WriteString(str) }
func (s *StringOutput) String() string                      { return s.buf.String() }

// writerPort adapts a plain io.Writer (os.Stdout, os.Stderr) to the
// WriteString-based sink OutputPort expects.
type writerPort struct{ w io.Writer }

func (p writerPort) WriteString(s string) (int, error) { return io.WriteString(p.w, s) }
