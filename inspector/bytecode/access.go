package bytecode

// Access flags shared by classes, fields and methods
const (
	AccPublic    = 0x0001
	AccPrivate   = 0x0002
	AccProtected = 0x0004
	AccStatic    = 0x0008
	AccFinal     = 0x0010
	AccSuper     = 0x0020
	AccInterface = 0x0200
	AccAbstract  = 0x0400
	AccSynthetic = 0x1000
)

// Method handle kinds
const (
	HandleGetField = iota + 1
	HandleGetStatic
	HandlePutField
	HandlePutStatic
	HandleInvokeVirtual
	HandleInvokeStatic
	HandleInvokeSpecial
	HandleNewInvokeSpecial
	HandleInvokeInterface
)
