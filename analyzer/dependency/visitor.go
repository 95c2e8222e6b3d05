package dependency

import (
	"errors"

	"github.com/viant/classdep/inspector/bytecode"
)

// ErrUndeclaredClass is returned when a class declaration carries no class name
var ErrUndeclaredClass = errors.New("dependency: class visited without a declared name")

// ClassVisitor is a pass-through stage extracting member dependencies of a single class traversal
type ClassVisitor struct {
	next     bytecode.ClassVisitor
	receiver Receiver
}

// NewClassVisitor creates a stage forwarding to next (nil terminates the chain) and
// reporting every edge but those to RootObject members to receiver
func NewClassVisitor(next bytecode.ClassVisitor, receiver Receiver) *ClassVisitor {
	if next == nil {
		next = bytecode.Discard
	}
	if receiver == nil {
		receiver = func(Access) error { return nil }
	}
	return &ClassVisitor{next: next, receiver: FilterRootObject(receiver)}
}

// Visit forwards the class declaration and returns a body visitor bound to the declared class
func (v *ClassVisitor) Visit(header *bytecode.ClassHeader) (bytecode.ClassBodyVisitor, error) {
	if header == nil || header.Name == "" {
		return nil, ErrUndeclaredClass
	}
	next, err := v.next.Visit(header)
	if err != nil {
		return nil, err
	}
	return &classBody{
		ClassBodyForwarder: bytecode.ClassBodyForwarder{Next: next},
		owner:              header.Name,
		receiver:           v.receiver,
	}, nil
}

type classBody struct {
	bytecode.ClassBodyForwarder
	owner    string
	receiver Receiver
}

// VisitMethod scopes a method visitor to owner.name; the declaration itself yields no edge
func (b *classBody) VisitMethod(method *bytecode.MethodDecl) (bytecode.MethodVisitor, error) {
	next, err := b.ClassBodyForwarder.VisitMethod(method)
	if err != nil {
		return nil, err
	}
	return &methodVisitor{
		MethodForwarder: bytecode.MethodForwarder{Next: next},
		member:          Member{Owner: b.owner, Name: method.Name},
		receiver:        b.receiver,
	}, nil
}

type methodVisitor struct {
	bytecode.MethodForwarder
	member   Member
	receiver Receiver
}

func (m *methodVisitor) VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) error {
	if err := m.receiver(Access{Source: m.member, Dest: Member{Owner: owner, Name: name}}); err != nil {
		return err
	}
	return m.MethodForwarder.VisitMethodInsn(opcode, owner, name, descriptor, isInterface)
}

func (m *methodVisitor) VisitFieldInsn(opcode int, owner, name, descriptor string) error {
	if err := m.receiver(Access{Source: m.member, Dest: Member{Owner: owner, Name: name}}); err != nil {
		return err
	}
	return m.MethodForwarder.VisitFieldInsn(opcode, owner, name, descriptor)
}
