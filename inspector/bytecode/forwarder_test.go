package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwarder(t *testing.T) {
	recorder := &Recorder{}
	body, err := (&ClassForwarder{Next: recorder}).Visit(&ClassHeader{Name: "com/x/Foo"})
	require.NoError(t, err)
	forwarder := &ClassBodyForwarder{Next: body}
	require.NoError(t, forwarder.VisitSource("Foo.java"))
	require.NoError(t, forwarder.VisitField(&FieldDecl{Name: "count", Descriptor: "I"}))
	next, err := forwarder.VisitMethod(&MethodDecl{Name: "run", Descriptor: "()V"})
	require.NoError(t, err)

	method := &MethodForwarder{Next: next}
	require.NoError(t, method.VisitCode())
	require.NoError(t, method.VisitLabel(0))
	require.NoError(t, method.VisitLineNumber(3, 0))
	require.NoError(t, method.VisitVarInsn(Aload, 0))
	require.NoError(t, method.VisitFieldInsn(Getfield, "com/x/Foo", "count", "I"))
	require.NoError(t, method.VisitMethodInsn(Invokestatic, "com/x/Baz", "qux", "(I)V", false))
	require.NoError(t, method.VisitInsn(Return))
	require.NoError(t, method.VisitMaxs(2, 1))
	require.NoError(t, method.VisitEnd())
	require.NoError(t, forwarder.VisitAttribute(&Attribute{Name: "Custom", Data: []byte{1}}))
	require.NoError(t, forwarder.VisitEnd())

	assert.Equal(t, []string{
		"Visit", "VisitSource", "VisitField", "VisitMethod",
		"VisitCode", "VisitLabel", "VisitLineNumber", "VisitVarInsn", "VisitFieldInsn", "VisitMethodInsn", "VisitInsn", "VisitMaxs", "VisitMethodEnd",
		"VisitAttribute", "VisitEnd",
	}, recorder.Kinds())
	assert.Equal(t, "VisitMethodInsn(184, com/x/Baz, qux, (I)V, false)", recorder.Events[9].String())
}

func TestForwarder_NilNext(t *testing.T) {
	body, err := (&ClassForwarder{}).Visit(&ClassHeader{Name: "com/x/Foo"})
	require.NoError(t, err)
	method, err := body.VisitMethod(&MethodDecl{Name: "run"})
	require.NoError(t, err)
	assert.Nil(t, method)
	assert.NoError(t, body.VisitEnd())

	forwarder := &MethodForwarder{}
	assert.NoError(t, forwarder.VisitInsn(Nop))
	assert.NoError(t, forwarder.VisitTableSwitchInsn(0, 1, 10, []Label{4, 8}))
}

func TestMnemonic(t *testing.T) {
	assert.Equal(t, "invokevirtual", Mnemonic(Invokevirtual))
	assert.Equal(t, "jsr_w", Mnemonic(JsrW))
	assert.Equal(t, "", Mnemonic(202))
	assert.Equal(t, "", Mnemonic(-1))
}
