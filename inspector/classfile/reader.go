package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic is returned when data does not start with 0xCAFEBABE
	ErrInvalidMagic = errors.New("classfile: invalid magic")
	// ErrTruncated is returned when data ends before a structure is complete
	ErrTruncated = errors.New("classfile: truncated data")
	// ErrConstantPool is returned for malformed or mistyped constant pool references
	ErrConstantPool = errors.New("classfile: invalid constant pool")
	// ErrUnknownOpcode is returned for an instruction outside the JVM instruction set
	ErrUnknownOpcode = errors.New("classfile: unknown opcode")
)

// reader is a big-endian cursor; the first overrun sticks in err and further reads return zero
type reader struct {
	data []byte
	pos  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.pos, len(r.data)-r.pos)
		return false
	}
	return true
}

func (r *reader) u1() int {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return int(v)
}

func (r *reader) u2() int {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return int(v)
}

func (r *reader) u4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v
}
