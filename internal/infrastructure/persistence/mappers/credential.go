package mappers

import (
	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
)

// credentialToColumns splits a credential into its nullable column
// representation.
func credentialToColumns(cred vo.AccessCredential) (accessType string, email, secret, inviteLink *string) {
	accessType = cred.AccessType().String()
	switch cred.AccessType() {
	case vo.AccessTypeAccount:
		e, s := cred.Email(), cred.Secret()
		email, secret = &e, &s
	case vo.AccessTypeInvitation:
		l := cred.InviteLink()
		inviteLink = &l
	}
	return accessType, email, secret, inviteLink
}

// CredentialFromColumns rebuilds a credential from its nullable column
// representation.
func CredentialFromColumns(accessType string, email, secret, inviteLink *string) (vo.AccessCredential, error) {
	return vo.ReconstructAccessCredential(
		vo.AccessType(accessType),
		deref(email),
		deref(secret),
		deref(inviteLink),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
