package bytecode

// Label identifies a position in a method body by its bytecode offset
type Label int

// ClassHeader represents the class-declared event
type ClassHeader struct {
	Version    int      // minor<<16 | major
	Access     int      // access flags
	Name       string   // internal name, e.g. com/x/Foo
	Signature  string   // generic signature, if any
	SuperName  string   // internal name of the super class, empty for java/lang/Object
	Interfaces []string // internal names of implemented interfaces
}

// FieldDecl represents a declared field
type FieldDecl struct {
	Access     int
	Name       string
	Descriptor string
	Signature  string
	Value      interface{} // ConstantValue, if any
}

// MethodDecl represents a declared method
type MethodDecl struct {
	Access     int
	Name       string
	Descriptor string
	Signature  string
	Exceptions []string
}

// Attribute represents a class attribute passed through without interpretation
type Attribute struct {
	Name string
	Data []byte
}

// Handle represents a method handle constant
type Handle struct {
	Kind        int
	Owner       string
	Name        string
	Descriptor  string
	IsInterface bool
}

// ClassRef represents a class literal constant (ldc of CONSTANT_Class)
type ClassRef string

// MethodTypeRef represents a method type constant
type MethodTypeRef string

// DynamicRef represents a dynamically computed constant
type DynamicRef struct {
	Name       string
	Descriptor string
	Bootstrap  *Handle
	Arguments  []interface{}
}

// ClassVisitor receives the class-declared event. The returned body visitor
// receives every subsequent class level event, so no member can be visited
// before its class has been declared.
type ClassVisitor interface {
	Visit(header *ClassHeader) (ClassBodyVisitor, error)
}

// ClassBodyVisitor receives class level events that follow the class declaration
type ClassBodyVisitor interface {
	VisitSource(source string) error
	VisitField(field *FieldDecl) error
	// VisitMethod returns the visitor for the method body; nil skips the body
	VisitMethod(method *MethodDecl) (MethodVisitor, error)
	VisitAttribute(attribute *Attribute) error
	VisitEnd() error
}

// MethodVisitor receives the events of a single method body in program order
type MethodVisitor interface {
	VisitCode() error
	VisitInsn(opcode int) error
	VisitIntInsn(opcode int, operand int) error
	VisitVarInsn(opcode int, index int) error
	VisitTypeInsn(opcode int, typ string) error
	VisitFieldInsn(opcode int, owner, name, descriptor string) error
	VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) error
	VisitInvokeDynamicInsn(name, descriptor string, bootstrap *Handle, arguments []interface{}) error
	VisitJumpInsn(opcode int, target Label) error
	VisitLabel(label Label) error
	VisitLdcInsn(value interface{}) error
	VisitIincInsn(index int, increment int) error
	VisitTableSwitchInsn(min, max int, dflt Label, labels []Label) error
	VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error
	VisitMultiANewArrayInsn(descriptor string, dimensions int) error
	VisitTryCatchBlock(start, end, handler Label, typ string) error
	VisitLineNumber(line int, start Label) error
	VisitMaxs(maxStack, maxLocals int) error
	VisitEnd() error
}
