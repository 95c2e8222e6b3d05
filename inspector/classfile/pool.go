package classfile

import (
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/viant/classdep/inspector/bytecode"
)

// constant pool tags
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

type entry struct {
	tag   byte
	a, b  int
	text  string
	value interface{}
}

type constantPool struct {
	entries   []entry
	bootstrap []bootstrapMethod
	dynamic   map[int]bytecode.DynamicRef
}

type bootstrapMethod struct {
	handle    int
	arguments []int
}

func readConstantPool(r *reader) (*constantPool, error) {
	count := r.u2()
	pool := &constantPool{entries: make([]entry, count)}
	for i := 1; i < count; i++ {
		tag := r.u1()
		e := entry{tag: byte(tag)}
		switch tag {
		case tagUtf8:
			raw := r.bytes(r.u2())
			if r.err != nil {
				break
			}
			text, err := decodeModifiedUTF8(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d: %v", ErrConstantPool, i, err)
			}
			e.text = text
		case tagInteger:
			e.value = int32(r.u4())
		case tagFloat:
			e.value = math.Float32frombits(r.u4())
		case tagLong, tagDouble:
			bits := uint64(r.u4())<<32 | uint64(r.u4())
			if tag == tagLong {
				e.value = int64(bits)
			} else {
				e.value = math.Float64frombits(bits)
			}
			pool.entries[i] = e
			i++ // 8-byte constants take two slots
			continue
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			e.a = r.u2()
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			e.a = r.u2()
			e.b = r.u2()
		case tagMethodHandle:
			e.a = r.u1()
			e.b = r.u2()
		default:
			if r.err != nil {
				break
			}
			return nil, fmt.Errorf("%w: entry %d: unknown tag %d", ErrConstantPool, i, tag)
		}
		if r.err != nil {
			return nil, r.err
		}
		pool.entries[i] = e
	}
	return pool, r.err
}

func (p *constantPool) get(index int, tags ...byte) (*entry, error) {
	if index <= 0 || index >= len(p.entries) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrConstantPool, index)
	}
	e := &p.entries[index]
	for _, tag := range tags {
		if e.tag == tag {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: index %d has tag %d, expected %v", ErrConstantPool, index, e.tag, tags)
}

func (p *constantPool) utf8(index int) (string, error) {
	e, err := p.get(index, tagUtf8)
	if err != nil {
		return "", err
	}
	return e.text, nil
}

// optionalUTF8 treats index 0 as absent
func (p *constantPool) optionalUTF8(index int) (string, error) {
	if index == 0 {
		return "", nil
	}
	return p.utf8(index)
}

func (p *constantPool) className(index int) (string, error) {
	e, err := p.get(index, tagClass)
	if err != nil {
		return "", err
	}
	return p.utf8(e.a)
}

func (p *constantPool) optionalClassName(index int) (string, error) {
	if index == 0 {
		return "", nil
	}
	return p.className(index)
}

func (p *constantPool) nameAndType(index int) (name string, descriptor string, err error) {
	e, err := p.get(index, tagNameAndType)
	if err != nil {
		return "", "", err
	}
	if name, err = p.utf8(e.a); err != nil {
		return "", "", err
	}
	descriptor, err = p.utf8(e.b)
	return name, descriptor, err
}

type memberRef struct {
	owner       string
	name        string
	descriptor  string
	isInterface bool
}

func (p *constantPool) memberRef(index int, tags ...byte) (*memberRef, error) {
	e, err := p.get(index, tags...)
	if err != nil {
		return nil, err
	}
	ref := &memberRef{isInterface: e.tag == tagInterfaceMethodref}
	if ref.owner, err = p.className(e.a); err != nil {
		return nil, err
	}
	if ref.name, ref.descriptor, err = p.nameAndType(e.b); err != nil {
		return nil, err
	}
	return ref, nil
}

func (p *constantPool) handle(index int) (*bytecode.Handle, error) {
	e, err := p.get(index, tagMethodHandle)
	if err != nil {
		return nil, err
	}
	ref, err := p.memberRef(e.b, tagFieldref, tagMethodref, tagInterfaceMethodref)
	if err != nil {
		return nil, err
	}
	return &bytecode.Handle{
		Kind:        e.a,
		Owner:       ref.owner,
		Name:        ref.name,
		Descriptor:  ref.descriptor,
		IsInterface: ref.isInterface,
	}, nil
}

// loadable resolves a constant usable by ldc or as a bootstrap argument
func (p *constantPool) loadable(index int) (interface{}, error) {
	return p.resolveLoadable(index, map[int]bool{})
}

// resolveLoadable tracks dynamic constants on the current resolution path in pending
func (p *constantPool) resolveLoadable(index int, pending map[int]bool) (interface{}, error) {
	e, err := p.get(index, tagInteger, tagFloat, tagLong, tagDouble, tagString, tagClass, tagMethodType, tagMethodHandle, tagDynamic)
	if err != nil {
		return nil, err
	}
	switch e.tag {
	case tagString:
		return p.utf8(e.a)
	case tagClass:
		name, err := p.utf8(e.a)
		return bytecode.ClassRef(name), err
	case tagMethodType:
		descriptor, err := p.utf8(e.a)
		return bytecode.MethodTypeRef(descriptor), err
	case tagMethodHandle:
		return p.handle(index)
	case tagDynamic:
		if resolved, ok := p.dynamic[index]; ok {
			return resolved, nil
		}
		if pending[index] {
			return nil, fmt.Errorf("%w: circular dynamic constant %d", ErrConstantPool, index)
		}
		pending[index] = true
		defer delete(pending, index)
		name, descriptor, err := p.nameAndType(e.b)
		if err != nil {
			return nil, err
		}
		bootstrap, arguments, err := p.bootstrapMethod(e.a, pending)
		if err != nil {
			return nil, err
		}
		resolved := bytecode.DynamicRef{Name: name, Descriptor: descriptor, Bootstrap: bootstrap, Arguments: arguments}
		if p.dynamic == nil {
			p.dynamic = map[int]bytecode.DynamicRef{}
		}
		p.dynamic[index] = resolved
		return resolved, nil
	}
	return e.value, nil
}

func (p *constantPool) bootstrapMethod(index int, pending map[int]bool) (*bytecode.Handle, []interface{}, error) {
	if index < 0 || index >= len(p.bootstrap) {
		return nil, nil, fmt.Errorf("%w: bootstrap method %d out of range", ErrConstantPool, index)
	}
	method := p.bootstrap[index]
	handle, err := p.handle(method.handle)
	if err != nil {
		return nil, nil, err
	}
	arguments := make([]interface{}, 0, len(method.arguments))
	for _, argument := range method.arguments {
		value, err := p.resolveLoadable(argument, pending)
		if err != nil {
			return nil, nil, err
		}
		arguments = append(arguments, value)
	}
	return handle, arguments, nil
}

func (p *constantPool) invokeDynamic(index int) (name, descriptor string, bootstrap *bytecode.Handle, arguments []interface{}, err error) {
	e, err := p.get(index, tagInvokeDynamic)
	if err != nil {
		return "", "", nil, nil, err
	}
	if name, descriptor, err = p.nameAndType(e.b); err != nil {
		return "", "", nil, nil, err
	}
	bootstrap, arguments, err = p.bootstrapMethod(e.a, map[int]bool{})
	return name, descriptor, bootstrap, arguments, err
}

// decodeModifiedUTF8 decodes the JVM modified UTF-8 encoding (two byte NUL, surrogate pairs)
func decodeModifiedUTF8(data []byte) (string, error) {
	ascii := true
	for _, c := range data {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(data), nil
	}
	units := make([]uint16, 0, len(data))
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(data) {
				return "", fmt.Errorf("truncated sequence at %d", i)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(data[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(data) {
				return "", fmt.Errorf("truncated sequence at %d", i)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(data[i+1]&0x3F)<<6|uint16(data[i+2]&0x3F))
			i += 3
		default:
			return "", fmt.Errorf("invalid byte 0x%x at %d", c, i)
		}
	}
	return string(utf16.Decode(units)), nil
}
