package valueobjects

import "fmt"

// AccessType discriminates how purchasers access a shared pool.
type AccessType string

const (
	// AccessTypeAccount means purchasers share a login pair.
	AccessTypeAccount AccessType = "account"
	// AccessTypeInvitation means purchasers join through an invitation link.
	AccessTypeInvitation AccessType = "invitation"
)

var ValidAccessTypes = map[AccessType]bool{
	AccessTypeAccount:    true,
	AccessTypeInvitation: true,
}

func (t AccessType) String() string {
	return string(t)
}

// AccessCredential is a tagged union: exactly one variant is populated per
// access type, enforced at construction time.
type AccessCredential struct {
	accessType AccessType

	// account variant
	email  string
	secret string

	// invitation variant
	inviteLink string
}

// NewAccountCredential creates a shared-login credential.
func NewAccountCredential(email, secret string) (AccessCredential, error) {
	if email == "" {
		return AccessCredential{}, fmt.Errorf("account email is required")
	}
	if secret == "" {
		return AccessCredential{}, fmt.Errorf("account secret is required")
	}
	return AccessCredential{
		accessType: AccessTypeAccount,
		email:      email,
		secret:     secret,
	}, nil
}

// NewInvitationCredential creates an invitation-link credential.
func NewInvitationCredential(inviteLink string) (AccessCredential, error) {
	if inviteLink == "" {
		return AccessCredential{}, fmt.Errorf("invitation link is required")
	}
	return AccessCredential{
		accessType: AccessTypeInvitation,
		inviteLink: inviteLink,
	}, nil
}

// ReconstructAccessCredential rebuilds a credential from persistence,
// validating the variant invariant.
func ReconstructAccessCredential(accessType AccessType, email, secret, inviteLink string) (AccessCredential, error) {
	switch accessType {
	case AccessTypeAccount:
		return NewAccountCredential(email, secret)
	case AccessTypeInvitation:
		return NewInvitationCredential(inviteLink)
	default:
		return AccessCredential{}, fmt.Errorf("invalid access type: %s", accessType)
	}
}

func (c AccessCredential) AccessType() AccessType {
	return c.accessType
}

// Email returns the shared login email; empty for invitation credentials.
func (c AccessCredential) Email() string {
	return c.email
}

// Secret returns the shared login secret; empty for invitation credentials.
func (c AccessCredential) Secret() string {
	return c.secret
}

// InviteLink returns the invitation link; empty for account credentials.
func (c AccessCredential) InviteLink() string {
	return c.inviteLink
}

// IsZero reports whether the credential was never populated.
func (c AccessCredential) IsZero() bool {
	return c.accessType == ""
}

func (c AccessCredential) Equals(other AccessCredential) bool {
	return c == other
}
