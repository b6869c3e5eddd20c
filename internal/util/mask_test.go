package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "****", MaskSecret("abcd"))
	assert.Equal(t, "****efgh", MaskSecret("abcdefgh"))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", MaskToken("  abcd "))
	assert.Equal(t, "eyJh…wxyz", MaskToken("eyJhbGciOiJIUzI1NiJ9.payload.wxyz"))
}
