package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRootObject(t *testing.T) {
	source := Member{Owner: "com/x/Foo", Name: "bar"}
	tests := []struct {
		description string
		dest        Member
		forwarded   bool
	}{
		{description: "root object method", dest: Member{Owner: RootObject, Name: "hashCode"}, forwarded: false},
		{description: "root object constructor", dest: Member{Owner: RootObject, Name: "<init>"}, forwarded: false},
		{description: "other class", dest: Member{Owner: "com/x/Baz", Name: "qux"}, forwarded: true},
		{description: "similar owner name", dest: Member{Owner: "java/lang/ObjectUtils", Name: "hashCode"}, forwarded: true},
		{description: "other java/lang class", dest: Member{Owner: "java/lang/String", Name: "valueOf"}, forwarded: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var received []Access
			receiver := FilterRootObject(Collect(&received))
			access := Access{Source: source, Dest: tc.dest}
			assert.NoError(t, receiver(access))
			if tc.forwarded {
				assert.Equal(t, []Access{access}, received)
				return
			}
			assert.Empty(t, received)
		})
	}
}

func TestAccess_String(t *testing.T) {
	access := Access{Source: Member{Owner: "com/x/Foo", Name: "bar"}, Dest: Member{Owner: "com/x/Baz", Name: "val"}}
	assert.Equal(t, "com/x/Foo.bar -> com/x/Baz.val", access.String())
}
