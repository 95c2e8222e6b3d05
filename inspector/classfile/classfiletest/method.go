package classfiletest

import (
	"bytes"

	"github.com/viant/classdep/inspector/bytecode"
)

// Method assembles a method body
type Method struct {
	builder    *Builder
	access     int
	name       string
	descriptor string
	code       bytes.Buffer
	maxStack   int
	maxLocals  int
	handlers   [][4]int
	lines      [][2]int
	abstract   bool
}

// Offset returns offset of the next instruction
func (m *Method) Offset() int {
	return m.code.Len()
}

// Abstract declares method without a Code attribute
func (m *Method) Abstract() *Method {
	m.abstract = true
	return m
}

// Maxs sets max stack and locals
func (m *Method) Maxs(maxStack, maxLocals int) *Method {
	m.maxStack, m.maxLocals = maxStack, maxLocals
	return m
}

// Raw appends raw bytecode
func (m *Method) Raw(data ...byte) *Method {
	m.code.Write(data)
	return m
}

// Insn appends an instruction without operands
func (m *Method) Insn(opcode int) *Method {
	m.code.WriteByte(byte(opcode))
	return m
}

// Var appends a load, store or ret with a one byte local index
func (m *Method) Var(opcode, index int) *Method {
	m.code.WriteByte(byte(opcode))
	m.code.WriteByte(byte(index))
	return m
}

// Push appends bipush
func (m *Method) Push(value int8) *Method {
	m.code.WriteByte(bytecode.Bipush)
	m.code.WriteByte(byte(value))
	return m
}

// Invoke appends a method call; invokeinterface references an InterfaceMethodref
func (m *Method) Invoke(opcode int, owner, name, descriptor string) *Method {
	m.code.WriteByte(byte(opcode))
	if opcode == bytecode.Invokeinterface {
		u2(&m.code, m.builder.InterfaceMethodRef(owner, name, descriptor))
		m.code.WriteByte(1)
		m.code.WriteByte(0)
		return m
	}
	u2(&m.code, m.builder.MethodRef(owner, name, descriptor))
	return m
}

// Field appends a field instruction
func (m *Method) Field(opcode int, owner, name, descriptor string) *Method {
	m.code.WriteByte(byte(opcode))
	u2(&m.code, m.builder.FieldRef(owner, name, descriptor))
	return m
}

// Type appends new, anewarray, checkcast or instanceof
func (m *Method) Type(opcode int, name string) *Method {
	m.code.WriteByte(byte(opcode))
	u2(&m.code, m.builder.Class(name))
	return m
}

// LdcString appends ldc_w of a String constant
func (m *Method) LdcString(text string) *Method {
	m.code.WriteByte(bytecode.LdcW)
	u2(&m.code, m.builder.String(text))
	return m
}

// LdcInt appends ldc_w of an Integer constant
func (m *Method) LdcInt(value int32) *Method {
	m.code.WriteByte(bytecode.LdcW)
	u2(&m.code, m.builder.Integer(value))
	return m
}

// Ldc appends ldc_w of any loadable constant pool entry
func (m *Method) Ldc(index int) *Method {
	m.code.WriteByte(bytecode.LdcW)
	u2(&m.code, index)
	return m
}

// InvokeDynamic appends invokedynamic bootstrapped by handle with the given static arguments
func (m *Method) InvokeDynamic(name, descriptor string, handle int, arguments ...int) *Method {
	bootstrap := m.builder.Bootstrap(handle, arguments...)
	m.code.WriteByte(bytecode.Invokedynamic)
	u2(&m.code, m.builder.InvokeDynamicRef(bootstrap, name, descriptor))
	m.code.WriteByte(0)
	m.code.WriteByte(0)
	return m
}

// Jump appends a two byte branch to an absolute target offset
func (m *Method) Jump(opcode, target int) *Method {
	offset := m.Offset()
	m.code.WriteByte(byte(opcode))
	u2(&m.code, int(uint16(int16(target-offset))))
	return m
}

// Line maps the next instruction to a source line
func (m *Method) Line(line int) *Method {
	m.lines = append(m.lines, [2]int{m.Offset(), line})
	return m
}

// Catch adds an exception table entry; empty typ declares a finally handler
func (m *Method) Catch(start, end, handler int, typ string) *Method {
	typeIndex := 0
	if typ != "" {
		typeIndex = m.builder.Class(typ)
	}
	m.handlers = append(m.handlers, [4]int{start, end, handler, typeIndex})
	return m
}

// Class returns the enclosing class builder
func (m *Method) Class() *Builder {
	return m.builder
}

func (m *Method) write(out *bytes.Buffer) {
	b := m.builder
	u2(out, m.access)
	u2(out, b.UTF8(m.name))
	u2(out, b.UTF8(m.descriptor))
	if m.abstract {
		u2(out, 0)
		return
	}
	u2(out, 1)
	codeAttr := &bytes.Buffer{}
	u2(codeAttr, m.maxStack)
	u2(codeAttr, m.maxLocals)
	u4(codeAttr, m.code.Len())
	codeAttr.Write(m.code.Bytes())
	u2(codeAttr, len(m.handlers))
	for _, h := range m.handlers {
		for _, v := range h {
			u2(codeAttr, v)
		}
	}
	if len(m.lines) > 0 {
		u2(codeAttr, 1)
		u2(codeAttr, b.UTF8("LineNumberTable"))
		u4(codeAttr, 2+4*len(m.lines))
		u2(codeAttr, len(m.lines))
		for _, line := range m.lines {
			u2(codeAttr, line[0])
			u2(codeAttr, line[1])
		}
	} else {
		u2(codeAttr, 0)
	}
	u2(out, b.UTF8("Code"))
	u4(out, codeAttr.Len())
	out.Write(codeAttr.Bytes())
}
