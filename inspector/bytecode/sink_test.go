package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_String(t *testing.T) {
	var testCases = []struct {
		description string
		event       Event
		expect      string
	}{
		{
			description: "no arguments",
			event:       Event{Kind: "VisitCode"},
			expect:      "VisitCode()",
		},
		{
			description: "declaration",
			event:       Event{Kind: "VisitField", Args: []interface{}{&FieldDecl{Name: "count", Descriptor: "I"}}},
			expect:      "VisitField({Access:0 Name:count Descriptor:I Signature: Value:<nil>})",
		},
		{
			description: "handle",
			event:       Event{Kind: "VisitLdcInsn", Args: []interface{}{&Handle{Kind: HandleInvokeStatic, Owner: "com/x/Boot", Name: "make", Descriptor: "()V"}}},
			expect:      "VisitLdcInsn({Kind:6 Owner:com/x/Boot Name:make Descriptor:()V IsInterface:false})",
		},
		{
			description: "nil class header",
			event:       Event{Kind: "Visit", Args: []interface{}{(*ClassHeader)(nil)}},
			expect:      "Visit(<nil>)",
		},
		{
			description: "nil field and method declarations",
			event:       Event{Kind: "Visit", Args: []interface{}{(*FieldDecl)(nil), (*MethodDecl)(nil)}},
			expect:      "Visit(<nil>, <nil>)",
		},
		{
			description: "nil handle",
			event:       Event{Kind: "VisitInvokeDynamicInsn", Args: []interface{}{"run", "()V", (*Handle)(nil)}},
			expect:      "VisitInvokeDynamicInsn(run, ()V, <nil>)",
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.event.String(), testCase.description)
	}
}
