package classfile

import (
	"fmt"

	"github.com/viant/classdep/inspector/bytecode"
)

type kind int

const (
	kindInsn kind = iota
	kindInt
	kindVar
	kindType
	kindField
	kindMethod
	kindInvokeDynamic
	kindJump
	kindLdc
	kindIinc
	kindTableSwitch
	kindLookupSwitch
	kindMultiANewArray
)

// instruction is a decoded instruction; opcode is normalised (xload_n, wide, goto_w, ldc_w)
type instruction struct {
	offset  int
	opcode  int
	kind    kind
	operand int // immediate, local index, constant pool index or dimensions
	extra   int // iinc increment
	target  int // jump target or switch default
	low     int
	high    int
	keys    []int
	targets []int
}

// branchTargets returns every offset the instruction may transfer control to
func (i *instruction) branchTargets() []int {
	switch i.kind {
	case kindJump:
		return []int{i.target}
	case kindTableSwitch, kindLookupSwitch:
		return append([]int{i.target}, i.targets...)
	}
	return nil
}

// decodeInstructions calls fn for every instruction of code in program order
func decodeInstructions(code []byte, fn func(insn *instruction) error) error {
	r := newReader(code)
	for r.pos < len(code) {
		insn := &instruction{offset: r.pos}
		op := r.u1()
		insn.opcode = op
		switch {
		case op <= bytecode.Dconst1,
			op >= bytecode.Iaload && op <= bytecode.Saload,
			op >= bytecode.Iastore && op <= bytecode.Lxor,
			op >= bytecode.I2l && op <= bytecode.Dcmpg,
			op >= bytecode.Ireturn && op <= bytecode.Return,
			op == bytecode.Arraylength, op == bytecode.Athrow,
			op == bytecode.Monitorenter, op == bytecode.Monitorexit:
			insn.kind = kindInsn
		case op == bytecode.Bipush:
			insn.kind = kindInt
			insn.operand = int(int8(r.u1()))
		case op == bytecode.Sipush:
			insn.kind = kindInt
			insn.operand = int(int16(r.u2()))
		case op == bytecode.Newarray:
			insn.kind = kindInt
			insn.operand = r.u1()
		case op == bytecode.Ldc:
			insn.kind = kindLdc
			insn.operand = r.u1()
		case op == bytecode.LdcW, op == bytecode.Ldc2W:
			insn.kind = kindLdc
			insn.opcode = bytecode.Ldc
			insn.operand = r.u2()
		case op >= bytecode.Iload && op <= bytecode.Aload,
			op >= bytecode.Istore && op <= bytecode.Astore,
			op == bytecode.Ret:
			insn.kind = kindVar
			insn.operand = r.u1()
		case op >= bytecode.Iload0 && op <= bytecode.Aload3:
			insn.kind = kindVar
			insn.opcode = bytecode.Iload + (op-bytecode.Iload0)/4
			insn.operand = (op - bytecode.Iload0) % 4
		case op >= bytecode.Istore0 && op <= bytecode.Astore3:
			insn.kind = kindVar
			insn.opcode = bytecode.Istore + (op-bytecode.Istore0)/4
			insn.operand = (op - bytecode.Istore0) % 4
		case op == bytecode.Iinc:
			insn.kind = kindIinc
			insn.operand = r.u1()
			insn.extra = int(int8(r.u1()))
		case op >= bytecode.Ifeq && op <= bytecode.Jsr,
			op == bytecode.Ifnull, op == bytecode.Ifnonnull:
			insn.kind = kindJump
			insn.target = insn.offset + int(int16(r.u2()))
		case op == bytecode.GotoW, op == bytecode.JsrW:
			insn.kind = kindJump
			insn.opcode = bytecode.Goto + (op - bytecode.GotoW)
			insn.target = insn.offset + int(int32(r.u4()))
		case op == bytecode.Tableswitch:
			insn.kind = kindTableSwitch
			r.bytes(padding(insn.offset))
			insn.target = insn.offset + int(int32(r.u4()))
			insn.low = int(int32(r.u4()))
			insn.high = int(int32(r.u4()))
			if r.err == nil && insn.high < insn.low {
				return fmt.Errorf("tableswitch at %d: high %d < low %d", insn.offset, insn.high, insn.low)
			}
			for i := insn.low; i <= insn.high && r.err == nil; i++ {
				insn.targets = append(insn.targets, insn.offset+int(int32(r.u4())))
			}
		case op == bytecode.Lookupswitch:
			insn.kind = kindLookupSwitch
			r.bytes(padding(insn.offset))
			insn.target = insn.offset + int(int32(r.u4()))
			pairs := int(int32(r.u4()))
			if r.err == nil && pairs < 0 {
				return fmt.Errorf("lookupswitch at %d: negative pair count", insn.offset)
			}
			for i := 0; i < pairs && r.err == nil; i++ {
				insn.keys = append(insn.keys, int(int32(r.u4())))
				insn.targets = append(insn.targets, insn.offset+int(int32(r.u4())))
			}
		case op >= bytecode.Getstatic && op <= bytecode.Putfield:
			insn.kind = kindField
			insn.operand = r.u2()
		case op >= bytecode.Invokevirtual && op <= bytecode.Invokestatic:
			insn.kind = kindMethod
			insn.operand = r.u2()
		case op == bytecode.Invokeinterface:
			insn.kind = kindMethod
			insn.operand = r.u2()
			r.bytes(2) // count, 0
		case op == bytecode.Invokedynamic:
			insn.kind = kindInvokeDynamic
			insn.operand = r.u2()
			r.bytes(2)
		case op == bytecode.New, op == bytecode.Anewarray,
			op == bytecode.Checkcast, op == bytecode.Instanceof:
			insn.kind = kindType
			insn.operand = r.u2()
		case op == bytecode.Wide:
			insn.opcode = r.u1()
			switch {
			case insn.opcode == bytecode.Iinc:
				insn.kind = kindIinc
				insn.operand = r.u2()
				insn.extra = int(int16(r.u2()))
			case insn.opcode >= bytecode.Iload && insn.opcode <= bytecode.Aload,
				insn.opcode >= bytecode.Istore && insn.opcode <= bytecode.Astore,
				insn.opcode == bytecode.Ret:
				insn.kind = kindVar
				insn.operand = r.u2()
			default:
				if r.err != nil {
					return r.err
				}
				return fmt.Errorf("%w: wide %d at %d", ErrUnknownOpcode, insn.opcode, insn.offset)
			}
		case op == bytecode.Multianewarray:
			insn.kind = kindMultiANewArray
			insn.operand = r.u2()
			insn.extra = r.u1()
		default:
			return fmt.Errorf("%w: %d at %d", ErrUnknownOpcode, op, insn.offset)
		}
		if r.err != nil {
			return fmt.Errorf("instruction %v at %d: %w", bytecode.Mnemonic(op), insn.offset, r.err)
		}
		if err := fn(insn); err != nil {
			return err
		}
	}
	return nil
}

// padding returns the number of bytes aligning switch operands to a 4 byte boundary
func padding(offset int) int {
	return (4 - (offset+1)%4) % 4
}
