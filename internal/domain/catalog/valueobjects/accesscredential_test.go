package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountCredential(t *testing.T) {
	cred, err := NewAccountCredential("share@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, AccessTypeAccount, cred.AccessType())
	assert.Equal(t, "share@example.com", cred.Email())
	assert.Equal(t, "s3cret", cred.Secret())
	assert.Empty(t, cred.InviteLink())
	assert.False(t, cred.IsZero())
}

func TestNewAccountCredential_MissingFields(t *testing.T) {
	_, err := NewAccountCredential("", "s3cret")
	assert.Error(t, err)

	_, err = NewAccountCredential("share@example.com", "")
	assert.Error(t, err)
}

func TestNewInvitationCredential(t *testing.T) {
	cred, err := NewInvitationCredential("https://svc.example.com/invite/abc")
	require.NoError(t, err)
	assert.Equal(t, AccessTypeInvitation, cred.AccessType())
	assert.Equal(t, "https://svc.example.com/invite/abc", cred.InviteLink())
	assert.Empty(t, cred.Email())
	assert.Empty(t, cred.Secret())
}

func TestNewInvitationCredential_MissingLink(t *testing.T) {
	_, err := NewInvitationCredential("")
	assert.Error(t, err)
}

func TestReconstructAccessCredential(t *testing.T) {
	cred, err := ReconstructAccessCredential(AccessTypeAccount, "a@b.c", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, AccessTypeAccount, cred.AccessType())

	cred, err = ReconstructAccessCredential(AccessTypeInvitation, "", "", "https://x/y")
	require.NoError(t, err)
	assert.Equal(t, AccessTypeInvitation, cred.AccessType())

	_, err = ReconstructAccessCredential("magic", "", "", "")
	assert.Error(t, err)
}

func TestAccessCredential_IsZero(t *testing.T) {
	var zero AccessCredential
	assert.True(t, zero.IsZero())
}
