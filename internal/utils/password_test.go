package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSenha(t *testing.T) {
	hash, err := HashSenha("super123")
	require.NoError(t, err)
	assert.NotEqual(t, "super123", hash)

	assert.True(t, VerificarSenha(hash, "super123"))
	assert.False(t, VerificarSenha(hash, "super124"))
	assert.False(t, VerificarSenha("", "super123"))
}
