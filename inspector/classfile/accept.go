package classfile

import (
	"fmt"
	"sort"

	"github.com/viant/classdep/inspector/bytecode"
)

// Accept replays the class as structural events to visitor.
// Any error returned by the chain aborts the replay and is returned unchanged.
func (c *ClassFile) Accept(visitor bytecode.ClassVisitor) error {
	header := c.Header
	header.Interfaces = append([]string(nil), c.Header.Interfaces...)
	body, err := visitor.Visit(&header)
	if err != nil {
		return err
	}
	if body == nil {
		return nil
	}
	if c.Source != "" {
		if err = body.VisitSource(c.Source); err != nil {
			return err
		}
	}
	for _, attribute := range c.Attributes {
		if err = body.VisitAttribute(&bytecode.Attribute{Name: attribute.Name, Data: attribute.Data}); err != nil {
			return err
		}
	}
	for _, field := range c.Fields {
		decl := *field
		if err = body.VisitField(&decl); err != nil {
			return err
		}
	}
	for _, method := range c.Methods {
		decl := method.Decl
		decl.Exceptions = append([]string(nil), method.Decl.Exceptions...)
		methodVisitor, err := body.VisitMethod(&decl)
		if err != nil {
			return err
		}
		if methodVisitor == nil {
			continue
		}
		if err = c.acceptMethod(method, methodVisitor); err != nil {
			return err
		}
	}
	return body.VisitEnd()
}

func (c *ClassFile) acceptMethod(method *Method, visitor bytecode.MethodVisitor) error {
	if method.Code != nil {
		if err := c.acceptCode(method.Code, visitor); err != nil {
			return fmt.Errorf("method %v%v: %w", method.Decl.Name, method.Decl.Descriptor, err)
		}
	}
	return visitor.VisitEnd()
}

func (c *ClassFile) acceptCode(code *Code, visitor bytecode.MethodVisitor) error {
	labels := map[int]bool{}
	for _, handler := range code.Handlers {
		labels[handler.Start], labels[handler.End], labels[handler.Handler] = true, true, true
	}
	lines := map[int][]int{}
	for _, line := range code.Lines {
		labels[line.Start] = true
		lines[line.Start] = append(lines[line.Start], line.Line)
	}
	err := decodeInstructions(code.Bytes, func(insn *instruction) error {
		for _, target := range insn.branchTargets() {
			labels[target] = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err = visitor.VisitCode(); err != nil {
		return err
	}
	for _, handler := range code.Handlers {
		if err = visitor.VisitTryCatchBlock(bytecode.Label(handler.Start), bytecode.Label(handler.End), bytecode.Label(handler.Handler), handler.Type); err != nil {
			return err
		}
	}
	err = decodeInstructions(code.Bytes, func(insn *instruction) error {
		if labels[insn.offset] {
			if err := visitor.VisitLabel(bytecode.Label(insn.offset)); err != nil {
				return err
			}
			for _, line := range lines[insn.offset] {
				if err := visitor.VisitLineNumber(line, bytecode.Label(insn.offset)); err != nil {
					return err
				}
			}
		}
		return c.acceptInstruction(insn, visitor)
	})
	if err != nil {
		return err
	}
	// labels past the last instruction, e.g. the exclusive end of a trailing handler range
	var trailing []int
	for offset := range labels {
		if offset >= len(code.Bytes) {
			trailing = append(trailing, offset)
		}
	}
	sort.Ints(trailing)
	for _, offset := range trailing {
		if err = visitor.VisitLabel(bytecode.Label(offset)); err != nil {
			return err
		}
	}
	return visitor.VisitMaxs(code.MaxStack, code.MaxLocals)
}

func (c *ClassFile) acceptInstruction(insn *instruction, visitor bytecode.MethodVisitor) error {
	switch insn.kind {
	case kindInsn:
		return visitor.VisitInsn(insn.opcode)
	case kindInt:
		return visitor.VisitIntInsn(insn.opcode, insn.operand)
	case kindVar:
		return visitor.VisitVarInsn(insn.opcode, insn.operand)
	case kindIinc:
		return visitor.VisitIincInsn(insn.operand, insn.extra)
	case kindType:
		typ, err := c.pool.className(insn.operand)
		if err != nil {
			return c.operandError(insn, err)
		}
		return visitor.VisitTypeInsn(insn.opcode, typ)
	case kindField:
		ref, err := c.pool.memberRef(insn.operand, tagFieldref)
		if err != nil {
			return c.operandError(insn, err)
		}
		return visitor.VisitFieldInsn(insn.opcode, ref.owner, ref.name, ref.descriptor)
	case kindMethod:
		ref, err := c.pool.memberRef(insn.operand, tagMethodref, tagInterfaceMethodref)
		if err != nil {
			return c.operandError(insn, err)
		}
		return visitor.VisitMethodInsn(insn.opcode, ref.owner, ref.name, ref.descriptor, ref.isInterface)
	case kindInvokeDynamic:
		name, descriptor, bootstrap, arguments, err := c.pool.invokeDynamic(insn.operand)
		if err != nil {
			return c.operandError(insn, err)
		}
		return visitor.VisitInvokeDynamicInsn(name, descriptor, bootstrap, arguments)
	case kindLdc:
		value, err := c.pool.loadable(insn.operand)
		if err != nil {
			return c.operandError(insn, err)
		}
		return visitor.VisitLdcInsn(value)
	case kindJump:
		return visitor.VisitJumpInsn(insn.opcode, bytecode.Label(insn.target))
	case kindTableSwitch:
		return visitor.VisitTableSwitchInsn(insn.low, insn.high, bytecode.Label(insn.target), toLabels(insn.targets))
	case kindLookupSwitch:
		return visitor.VisitLookupSwitchInsn(bytecode.Label(insn.target), insn.keys, toLabels(insn.targets))
	case kindMultiANewArray:
		typ, err := c.pool.className(insn.operand)
		if err != nil {
			return c.operandError(insn, err)
		}
		return visitor.VisitMultiANewArrayInsn(typ, insn.extra)
	}
	return fmt.Errorf("%w: %d at %d", ErrUnknownOpcode, insn.opcode, insn.offset)
}

func (c *ClassFile) operandError(insn *instruction, err error) error {
	return fmt.Errorf("%v at %d: %w", bytecode.Mnemonic(insn.opcode), insn.offset, err)
}

func toLabels(offsets []int) []bytecode.Label {
	ret := make([]bytecode.Label, len(offsets))
	for i, offset := range offsets {
		ret[i] = bytecode.Label(offset)
	}
	return ret
}
