package classfile

import (
	"fmt"

	"github.com/viant/classdep/inspector/bytecode"
)

const magic = 0xCAFEBABE

// ClassFile represents a decoded class ready to be replayed to a visitor chain
type ClassFile struct {
	Header     bytecode.ClassHeader
	Source     string
	Fields     []*bytecode.FieldDecl
	Methods    []*Method
	Attributes []*bytecode.Attribute // class attributes without a dedicated event

	pool *constantPool
}

// Method represents a decoded method with its optional code
type Method struct {
	Decl bytecode.MethodDecl
	Code *Code
}

// Code represents a Code attribute
type Code struct {
	MaxStack  int
	MaxLocals int
	Bytes     []byte
	Handlers  []Handler
	Lines     []LineNumber
}

// Handler represents an exception table entry
type Handler struct {
	Start, End, Handler int
	Type                string // empty for finally blocks
}

// LineNumber represents a LineNumberTable entry
type LineNumber struct {
	Start int
	Line  int
}

// Parse decodes class file bytes
func Parse(data []byte) (*ClassFile, error) {
	r := newReader(data)
	if r.u4() != magic {
		if r.err != nil {
			return nil, r.err
		}
		return nil, ErrInvalidMagic
	}
	minor := r.u2()
	major := r.u2()
	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	ret := &ClassFile{pool: pool}
	ret.Header.Version = minor<<16 | major
	ret.Header.Access = r.u2()
	thisClass, superClass := r.u2(), r.u2()
	if r.err != nil {
		return nil, r.err
	}
	if ret.Header.Name, err = pool.className(thisClass); err != nil {
		return nil, fmt.Errorf("this class: %w", err)
	}
	if ret.Header.SuperName, err = pool.optionalClassName(superClass); err != nil {
		return nil, fmt.Errorf("super class: %w", err)
	}
	interfaceCount := r.u2()
	for i := 0; i < interfaceCount && r.err == nil; i++ {
		name, err := pool.className(r.u2())
		if err != nil && r.err == nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		ret.Header.Interfaces = append(ret.Header.Interfaces, name)
	}
	if r.err != nil {
		return nil, r.err
	}
	if err = ret.readFields(r); err != nil {
		return nil, err
	}
	if err = ret.readMethods(r); err != nil {
		return nil, err
	}
	if err = ret.readAttributes(r); err != nil {
		return nil, err
	}
	return ret, nil
}

// Name returns the internal name of the class
func (c *ClassFile) Name() string {
	return c.Header.Name
}

func (c *ClassFile) readFields(r *reader) error {
	count := r.u2()
	for i := 0; i < count; i++ {
		field := &bytecode.FieldDecl{Access: r.u2()}
		nameIndex, descIndex := r.u2(), r.u2()
		if r.err != nil {
			return r.err
		}
		var err error
		if field.Name, err = c.pool.utf8(nameIndex); err != nil {
			return fmt.Errorf("field %d name: %w", i, err)
		}
		if field.Descriptor, err = c.pool.utf8(descIndex); err != nil {
			return fmt.Errorf("field %v descriptor: %w", field.Name, err)
		}
		err = c.eachAttribute(r, func(name string, data *reader) error {
			switch name {
			case "ConstantValue":
				field.Value, err = c.pool.loadable(data.u2())
				return err
			case "Signature":
				field.Signature, err = c.pool.utf8(data.u2())
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("field %v: %w", field.Name, err)
		}
		c.Fields = append(c.Fields, field)
	}
	return r.err
}

func (c *ClassFile) readMethods(r *reader) error {
	count := r.u2()
	for i := 0; i < count; i++ {
		method := &Method{Decl: bytecode.MethodDecl{Access: r.u2()}}
		nameIndex, descIndex := r.u2(), r.u2()
		if r.err != nil {
			return r.err
		}
		var err error
		if method.Decl.Name, err = c.pool.utf8(nameIndex); err != nil {
			return fmt.Errorf("method %d name: %w", i, err)
		}
		if method.Decl.Descriptor, err = c.pool.utf8(descIndex); err != nil {
			return fmt.Errorf("method %v descriptor: %w", method.Decl.Name, err)
		}
		err = c.eachAttribute(r, func(name string, data *reader) error {
			switch name {
			case "Code":
				method.Code, err = c.readCode(data)
				return err
			case "Exceptions":
				n := data.u2()
				for j := 0; j < n && data.err == nil; j++ {
					exception, err := c.pool.className(data.u2())
					if err != nil {
						return err
					}
					method.Decl.Exceptions = append(method.Decl.Exceptions, exception)
				}
				return data.err
			case "Signature":
				method.Decl.Signature, err = c.pool.utf8(data.u2())
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("method %v%v: %w", method.Decl.Name, method.Decl.Descriptor, err)
		}
		c.Methods = append(c.Methods, method)
	}
	return r.err
}

func (c *ClassFile) readCode(r *reader) (*Code, error) {
	code := &Code{MaxStack: r.u2(), MaxLocals: r.u2()}
	code.Bytes = r.bytes(int(r.u4()))
	handlers := r.u2()
	for i := 0; i < handlers && r.err == nil; i++ {
		handler := Handler{Start: r.u2(), End: r.u2(), Handler: r.u2()}
		var err error
		if handler.Type, err = c.pool.optionalClassName(r.u2()); err != nil && r.err == nil {
			return nil, fmt.Errorf("exception handler %d: %w", i, err)
		}
		code.Handlers = append(code.Handlers, handler)
	}
	if r.err != nil {
		return nil, r.err
	}
	err := c.eachAttribute(r, func(name string, data *reader) error {
		if name != "LineNumberTable" {
			return nil
		}
		n := data.u2()
		for i := 0; i < n && data.err == nil; i++ {
			code.Lines = append(code.Lines, LineNumber{Start: data.u2(), Line: data.u2()})
		}
		return data.err
	})
	return code, err
}

func (c *ClassFile) readAttributes(r *reader) error {
	return c.eachAttribute(r, func(name string, data *reader) error {
		var err error
		switch name {
		case "SourceFile":
			c.Source, err = c.pool.utf8(data.u2())
		case "Signature":
			c.Header.Signature, err = c.pool.utf8(data.u2())
		case "BootstrapMethods":
			n := data.u2()
			for i := 0; i < n && data.err == nil; i++ {
				method := bootstrapMethod{handle: data.u2()}
				args := data.u2()
				for j := 0; j < args && data.err == nil; j++ {
					method.arguments = append(method.arguments, data.u2())
				}
				c.pool.bootstrap = append(c.pool.bootstrap, method)
			}
			err = data.err
		default:
			c.Attributes = append(c.Attributes, &bytecode.Attribute{Name: name, Data: data.data})
		}
		return err
	})
}

// eachAttribute reads an attribute table, handing each attribute body to fn as its own reader
func (c *ClassFile) eachAttribute(r *reader, fn func(name string, data *reader) error) error {
	count := r.u2()
	for i := 0; i < count; i++ {
		nameIndex := r.u2()
		data := r.bytes(int(r.u4()))
		if r.err != nil {
			return r.err
		}
		name, err := c.pool.utf8(nameIndex)
		if err != nil {
			return fmt.Errorf("attribute %d: %w", i, err)
		}
		if err = fn(name, newReader(data)); err != nil {
			return fmt.Errorf("attribute %v: %w", name, err)
		}
	}
	return r.err
}
