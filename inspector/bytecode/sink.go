package bytecode

import (
	"fmt"
	"strings"
)

// Discard is a terminal stage that accepts and drops every event
var Discard ClassVisitor = discard{}

type discard struct{}

func (discard) Visit(*ClassHeader) (ClassBodyVisitor, error) {
	return &ClassBodyForwarder{}, nil
}

// Event represents a single recorded structural event
type Event struct {
	Kind string
	Args []interface{}
}

// String returns event in Kind(arg1, arg2) form
func (e Event) String() string {
	args := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		switch actual := arg.(type) {
		case *ClassHeader:
			args = append(args, derefString(actual))
		case *FieldDecl:
			args = append(args, derefString(actual))
		case *MethodDecl:
			args = append(args, derefString(actual))
		case *Handle:
			args = append(args, derefString(actual))
		default:
			args = append(args, fmt.Sprintf("%v", arg))
		}
	}
	return e.Kind + "(" + strings.Join(args, ", ") + ")"
}

func derefString[T any](value *T) string {
	if value == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%+v", *value)
}

// Recorder is a terminal stage capturing every event it receives in order
type Recorder struct {
	Events []Event
}

func (r *Recorder) add(kind string, args ...interface{}) error {
	r.Events = append(r.Events, Event{Kind: kind, Args: args})
	return nil
}

// Visit records the class declaration
func (r *Recorder) Visit(header *ClassHeader) (ClassBodyVisitor, error) {
	_ = r.add("Visit", header)
	return &recordingBody{recorder: r}, nil
}

// Kinds returns recorded event kinds
func (r *Recorder) Kinds() []string {
	var result = make([]string, 0, len(r.Events))
	for _, event := range r.Events {
		result = append(result, event.Kind)
	}
	return result
}

type recordingBody struct {
	recorder *Recorder
}

func (b *recordingBody) VisitSource(source string) error {
	return b.recorder.add("VisitSource", source)
}

func (b *recordingBody) VisitField(field *FieldDecl) error {
	return b.recorder.add("VisitField", field)
}

func (b *recordingBody) VisitMethod(method *MethodDecl) (MethodVisitor, error) {
	_ = b.recorder.add("VisitMethod", method)
	return &recordingMethod{recorder: b.recorder}, nil
}

func (b *recordingBody) VisitAttribute(attribute *Attribute) error {
	return b.recorder.add("VisitAttribute", attribute)
}

func (b *recordingBody) VisitEnd() error {
	return b.recorder.add("VisitEnd")
}

type recordingMethod struct {
	recorder *Recorder
}

func (m *recordingMethod) VisitCode() error {
	return m.recorder.add("VisitCode")
}

func (m *recordingMethod) VisitInsn(opcode int) error {
	return m.recorder.add("VisitInsn", opcode)
}

func (m *recordingMethod) VisitIntInsn(opcode int, operand int) error {
	return m.recorder.add("VisitIntInsn", opcode, operand)
}

func (m *recordingMethod) VisitVarInsn(opcode int, index int) error {
	return m.recorder.add("VisitVarInsn", opcode, index)
}

func (m *recordingMethod) VisitTypeInsn(opcode int, typ string) error {
	return m.recorder.add("VisitTypeInsn", opcode, typ)
}

func (m *recordingMethod) VisitFieldInsn(opcode int, owner, name, descriptor string) error {
	return m.recorder.add("VisitFieldInsn", opcode, owner, name, descriptor)
}

func (m *recordingMethod) VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) error {
	return m.recorder.add("VisitMethodInsn", opcode, owner, name, descriptor, isInterface)
}

func (m *recordingMethod) VisitInvokeDynamicInsn(name, descriptor string, bootstrap *Handle, arguments []interface{}) error {
	return m.recorder.add("VisitInvokeDynamicInsn", name, descriptor, bootstrap, arguments)
}

func (m *recordingMethod) VisitJumpInsn(opcode int, target Label) error {
	return m.recorder.add("VisitJumpInsn", opcode, target)
}

func (m *recordingMethod) VisitLabel(label Label) error {
	return m.recorder.add("VisitLabel", label)
}

func (m *recordingMethod) VisitLdcInsn(value interface{}) error {
	return m.recorder.add("VisitLdcInsn", value)
}

func (m *recordingMethod) VisitIincInsn(index int, increment int) error {
	return m.recorder.add("VisitIincInsn", index, increment)
}

func (m *recordingMethod) VisitTableSwitchInsn(min, max int, dflt Label, labels []Label) error {
	return m.recorder.add("VisitTableSwitchInsn", min, max, dflt, labels)
}

func (m *recordingMethod) VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error {
	return m.recorder.add("VisitLookupSwitchInsn", dflt, keys, labels)
}

func (m *recordingMethod) VisitMultiANewArrayInsn(descriptor string, dimensions int) error {
	return m.recorder.add("VisitMultiANewArrayInsn", descriptor, dimensions)
}

func (m *recordingMethod) VisitTryCatchBlock(start, end, handler Label, typ string) error {
	return m.recorder.add("VisitTryCatchBlock", start, end, handler, typ)
}

func (m *recordingMethod) VisitLineNumber(line int, start Label) error {
	return m.recorder.add("VisitLineNumber", line, start)
}

func (m *recordingMethod) VisitMaxs(maxStack, maxLocals int) error {
	return m.recorder.add("VisitMaxs", maxStack, maxLocals)
}

func (m *recordingMethod) VisitEnd() error {
	return m.recorder.add("VisitMethodEnd")
}
