package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := Identity{UserID: 42, AuthUserID: "5f0c7c1e-0000-4000-8000-000000000001", OrgID: 3, BranchID: 9, Type: "admin"}

	tok, err := Generate("secreto", "pos-test", 5, id)
	require.NoError(t, err)

	got, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate("secreto", "pos-test", 5, Identity{UserID: 1})
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate("secreto", "pos-test", -1, Identity{UserID: 1})
	require.NoError(t, err)

	_, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "pos-test", 5, Identity{UserID: 1})
	assert.Error(t, err)
}
