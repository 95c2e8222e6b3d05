package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		description string
		input       []byte
		expected    string
		expectErr   bool
	}{
		{description: "ascii", input: []byte("com/x/Foo"), expected: "com/x/Foo"},
		{description: "two byte NUL", input: []byte{'a', 0xC0, 0x80, 'b'}, expected: "a\x00b"},
		{description: "two byte sequence", input: []byte{0xC3, 0xA9}, expected: "é"},
		{description: "surrogate pair", input: []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, expected: "😀"},
		{description: "truncated sequence", input: []byte{'a', 0xE2, 0x82}, expectErr: true},
		{description: "invalid lead byte", input: []byte{0xF0, 0x9F, 0x98, 0x80}, expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := decodeModifiedUTF8(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestPadding(t *testing.T) {
	for offset, expected := range map[int]int{0: 3, 1: 2, 2: 1, 3: 0, 4: 3} {
		assert.Equal(t, expected, padding(offset), "offset %d", offset)
	}
}
