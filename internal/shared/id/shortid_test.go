package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	for _, length := range []int{1, 8, 12, 32} {
		got, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, got, length)
	}
}

func TestGenerate_DefaultLength(t *testing.T) {
	got, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)
}

func TestGenerate_Alphabet(t *testing.T) {
	got, err := Generate(64)
	require.NoError(t, err)
	for _, c := range got {
		assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q", c)
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixPool, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "pool_"))

	require.NoError(t, ValidatePrefix(got, PrefixPool))
	assert.Error(t, ValidatePrefix(got, PrefixGrant))
}

func TestParsePrefixedID(t *testing.T) {
	prefix, shortID, err := ParsePrefixedID("grant_aB3xY9")
	require.NoError(t, err)
	assert.Equal(t, "grant", prefix)
	assert.Equal(t, "aB3xY9", shortID)

	_, _, err = ParsePrefixedID("noprefix")
	assert.Error(t, err)

	_, _, err = ParsePrefixedID("_empty")
	assert.Error(t, err)
}
