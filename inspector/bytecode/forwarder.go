package bytecode

// ClassForwarder is a pass-through stage; a nil Next terminates the chain
type ClassForwarder struct {
	Next ClassVisitor
}

// Visit forwards the class declaration to the next stage
func (f *ClassForwarder) Visit(header *ClassHeader) (ClassBodyVisitor, error) {
	if f.Next == nil {
		return Discard.Visit(header)
	}
	return f.Next.Visit(header)
}

// ClassBodyForwarder is an embeddable class body stage that forwards every event to Next.
// Stages override only the events they analyse.
type ClassBodyForwarder struct {
	Next ClassBodyVisitor
}

func (f *ClassBodyForwarder) VisitSource(source string) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitSource(source)
}

func (f *ClassBodyForwarder) VisitField(field *FieldDecl) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitField(field)
}

// VisitMethod returns the downstream method visitor, nil when the chain ends here
func (f *ClassBodyForwarder) VisitMethod(method *MethodDecl) (MethodVisitor, error) {
	if f.Next == nil {
		return nil, nil
	}
	return f.Next.VisitMethod(method)
}

func (f *ClassBodyForwarder) VisitAttribute(attribute *Attribute) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitAttribute(attribute)
}

func (f *ClassBodyForwarder) VisitEnd() error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitEnd()
}

// MethodForwarder is an embeddable method stage that forwards every event to Next.
// A nil Next swallows events, which lets an analysis stage run without a downstream method visitor.
type MethodForwarder struct {
	Next MethodVisitor
}

func (f *MethodForwarder) VisitCode() error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitCode()
}

func (f *MethodForwarder) VisitInsn(opcode int) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitInsn(opcode)
}

func (f *MethodForwarder) VisitIntInsn(opcode int, operand int) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitIntInsn(opcode, operand)
}

func (f *MethodForwarder) VisitVarInsn(opcode int, index int) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitVarInsn(opcode, index)
}

func (f *MethodForwarder) VisitTypeInsn(opcode int, typ string) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitTypeInsn(opcode, typ)
}

func (f *MethodForwarder) VisitFieldInsn(opcode int, owner, name, descriptor string) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitFieldInsn(opcode, owner, name, descriptor)
}

func (f *MethodForwarder) VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitMethodInsn(opcode, owner, name, descriptor, isInterface)
}

func (f *MethodForwarder) VisitInvokeDynamicInsn(name, descriptor string, bootstrap *Handle, arguments []interface{}) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitInvokeDynamicInsn(name, descriptor, bootstrap, arguments)
}

func (f *MethodForwarder) VisitJumpInsn(opcode int, target Label) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitJumpInsn(opcode, target)
}

func (f *MethodForwarder) VisitLabel(label Label) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitLabel(label)
}

func (f *MethodForwarder) VisitLdcInsn(value interface{}) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitLdcInsn(value)
}

func (f *MethodForwarder) VisitIincInsn(index int, increment int) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitIincInsn(index, increment)
}

func (f *MethodForwarder) VisitTableSwitchInsn(min, max int, dflt Label, labels []Label) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitTableSwitchInsn(min, max, dflt, labels)
}

func (f *MethodForwarder) VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitLookupSwitchInsn(dflt, keys, labels)
}

func (f *MethodForwarder) VisitMultiANewArrayInsn(descriptor string, dimensions int) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitMultiANewArrayInsn(descriptor, dimensions)
}

func (f *MethodForwarder) VisitTryCatchBlock(start, end, handler Label, typ string) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitTryCatchBlock(start, end, handler, typ)
}

func (f *MethodForwarder) VisitLineNumber(line int, start Label) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitLineNumber(line, start)
}

func (f *MethodForwarder) VisitMaxs(maxStack, maxLocals int) error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitMaxs(maxStack, maxLocals)
}

func (f *MethodForwarder) VisitEnd() error {
	if f.Next == nil {
		return nil
	}
	return f.Next.VisitEnd()
}
