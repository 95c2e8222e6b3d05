// Package classfiletest assembles small class files for tests
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/viant/classdep/inspector/bytecode"
)

// Builder assembles a class file
type Builder struct {
	pool       [][]byte
	index      map[string]int
	name       string
	super      string
	access     int
	interfaces []string
	source     string
	fields     []field
	methods    []*Method
	bootstrap  [][]int // handle index followed by argument indexes
}

type field struct {
	access           int
	name, descriptor string
}

// New creates a builder for a public class extending java/lang/Object
func New(name string) *Builder {
	return &Builder{
		pool:   [][]byte{nil},
		index:  map[string]int{},
		name:   name,
		super:  "java/lang/Object",
		access: bytecode.AccPublic | bytecode.AccSuper,
	}
}

// Super sets super class; empty means none
func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

// Access sets class access flags
func (b *Builder) Access(access int) *Builder {
	b.access = access
	return b
}

// Implements adds interfaces
func (b *Builder) Implements(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

// Source sets SourceFile attribute
func (b *Builder) Source(source string) *Builder {
	b.source = source
	return b
}

// Field declares a field
func (b *Builder) Field(access int, name, descriptor string) *Builder {
	b.fields = append(b.fields, field{access: access, name: name, descriptor: descriptor})
	return b
}

// Method declares a method and returns its code assembler
func (b *Builder) Method(access int, name, descriptor string) *Method {
	m := &Method{builder: b, access: access, name: name, descriptor: descriptor, maxStack: 4, maxLocals: 4}
	b.methods = append(b.methods, m)
	return m
}

// Bytes returns assembled class file
func (b *Builder) Bytes() []byte {
	thisIndex := b.Class(b.name)
	superIndex := 0
	if b.super != "" {
		superIndex = b.Class(b.super)
	}
	var interfaces []int
	for _, name := range b.interfaces {
		interfaces = append(interfaces, b.Class(name))
	}
	body := &bytes.Buffer{}
	u2(body, b.access)
	u2(body, thisIndex)
	u2(body, superIndex)
	u2(body, len(interfaces))
	for _, index := range interfaces {
		u2(body, index)
	}
	u2(body, len(b.fields))
	for _, f := range b.fields {
		u2(body, f.access)
		u2(body, b.UTF8(f.name))
		u2(body, b.UTF8(f.descriptor))
		u2(body, 0)
	}
	u2(body, len(b.methods))
	for _, m := range b.methods {
		m.write(body)
	}
	attributes := &bytes.Buffer{}
	count := 0
	if b.source != "" {
		count++
		u2(attributes, b.UTF8("SourceFile"))
		u4(attributes, 2)
		u2(attributes, b.UTF8(b.source))
	}
	if len(b.bootstrap) > 0 {
		count++
		table := &bytes.Buffer{}
		u2(table, len(b.bootstrap))
		for _, method := range b.bootstrap {
			u2(table, method[0])
			u2(table, len(method)-1)
			for _, argument := range method[1:] {
				u2(table, argument)
			}
		}
		u2(attributes, b.UTF8("BootstrapMethods"))
		u4(attributes, table.Len())
		attributes.Write(table.Bytes())
	}
	u2(body, count)
	body.Write(attributes.Bytes())

	out := &bytes.Buffer{}
	u4(out, 0xCAFEBABE)
	u2(out, 0)
	u2(out, 52)
	u2(out, len(b.pool))
	for _, e := range b.pool[1:] {
		out.Write(e)
	}
	out.Write(body.Bytes())
	return out.Bytes()
}

func (b *Builder) add(key string, data []byte) int {
	if index, ok := b.index[key]; ok {
		return index
	}
	b.pool = append(b.pool, data)
	index := len(b.pool) - 1
	b.index[key] = index
	return index
}

// UTF8 returns constant pool index of a Utf8 entry (ASCII only)
func (b *Builder) UTF8(text string) int {
	data := &bytes.Buffer{}
	data.WriteByte(1)
	u2(data, len(text))
	data.WriteString(text)
	return b.add("utf8:"+text, data.Bytes())
}

// Class returns constant pool index of a Class entry
func (b *Builder) Class(name string) int {
	nameIndex := b.UTF8(name)
	return b.add("class:"+name, ref(7, nameIndex))
}

// String returns constant pool index of a String entry
func (b *Builder) String(text string) int {
	textIndex := b.UTF8(text)
	return b.add("string:"+text, ref(8, textIndex))
}

// Integer returns constant pool index of an Integer entry
func (b *Builder) Integer(value int32) int {
	data := &bytes.Buffer{}
	data.WriteByte(3)
	u4(data, int(uint32(value)))
	return b.add(fmt.Sprintf("int:%d", value), data.Bytes())
}

// NameAndType returns constant pool index of a NameAndType entry
func (b *Builder) NameAndType(name, descriptor string) int {
	nameIndex, descIndex := b.UTF8(name), b.UTF8(descriptor)
	return b.add("nat:"+name+":"+descriptor, ref(12, nameIndex, descIndex))
}

// FieldRef returns constant pool index of a Fieldref entry
func (b *Builder) FieldRef(owner, name, descriptor string) int {
	return b.memberRef(9, owner, name, descriptor)
}

// MethodRef returns constant pool index of a Methodref entry
func (b *Builder) MethodRef(owner, name, descriptor string) int {
	return b.memberRef(10, owner, name, descriptor)
}

// InterfaceMethodRef returns constant pool index of an InterfaceMethodref entry
func (b *Builder) InterfaceMethodRef(owner, name, descriptor string) int {
	return b.memberRef(11, owner, name, descriptor)
}

// MethodHandle returns constant pool index of a MethodHandle entry; field kinds reference a Fieldref
func (b *Builder) MethodHandle(kind int, owner, name, descriptor string, isInterface bool) int {
	var refIndex int
	switch {
	case kind <= bytecode.HandlePutStatic:
		refIndex = b.FieldRef(owner, name, descriptor)
	case isInterface:
		refIndex = b.InterfaceMethodRef(owner, name, descriptor)
	default:
		refIndex = b.MethodRef(owner, name, descriptor)
	}
	data := &bytes.Buffer{}
	data.WriteByte(15)
	data.WriteByte(byte(kind))
	u2(data, refIndex)
	return b.add(fmt.Sprintf("handle:%d:%d", kind, refIndex), data.Bytes())
}

// MethodType returns constant pool index of a MethodType entry
func (b *Builder) MethodType(descriptor string) int {
	descIndex := b.UTF8(descriptor)
	return b.add("methodType:"+descriptor, ref(16, descIndex))
}

// Bootstrap appends a BootstrapMethods entry and returns its index
func (b *Builder) Bootstrap(handle int, arguments ...int) int {
	b.bootstrap = append(b.bootstrap, append([]int{handle}, arguments...))
	return len(b.bootstrap) - 1
}

// BootstrapArgument appends an argument to a BootstrapMethods entry
func (b *Builder) BootstrapArgument(bootstrap, argument int) *Builder {
	b.bootstrap[bootstrap] = append(b.bootstrap[bootstrap], argument)
	return b
}

// Dynamic returns constant pool index of a Dynamic entry
func (b *Builder) Dynamic(bootstrap int, name, descriptor string) int {
	natIndex := b.NameAndType(name, descriptor)
	return b.add(fmt.Sprintf("dynamic:%d:%d", bootstrap, natIndex), ref(17, bootstrap, natIndex))
}

// InvokeDynamicRef returns constant pool index of an InvokeDynamic entry
func (b *Builder) InvokeDynamicRef(bootstrap int, name, descriptor string) int {
	natIndex := b.NameAndType(name, descriptor)
	return b.add(fmt.Sprintf("indy:%d:%d", bootstrap, natIndex), ref(18, bootstrap, natIndex))
}

func (b *Builder) memberRef(tag byte, owner, name, descriptor string) int {
	classIndex, natIndex := b.Class(owner), b.NameAndType(name, descriptor)
	return b.add(fmt.Sprintf("ref%d:%s.%s:%s", tag, owner, name, descriptor), ref(tag, classIndex, natIndex))
}

func ref(tag byte, indexes ...int) []byte {
	data := &bytes.Buffer{}
	data.WriteByte(tag)
	for _, index := range indexes {
		u2(data, index)
	}
	return data.Bytes()
}

func u2(buf *bytes.Buffer, v int) {
	_ = binary.Write(buf, binary.BigEndian, uint16(v))
}

func u4(buf *bytes.Buffer, v int) {
	_ = binary.Write(buf, binary.BigEndian, uint32(v))
}
