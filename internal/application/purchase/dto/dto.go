package dto

import (
	"time"

	"github.com/seatshare-inc/seatshare/internal/domain/grant"
)

// GrantDTO is the purchaser-facing view of a seat grant, credential included.
type GrantDTO struct {
	SID              string    `json:"sid"`
	PoolID           uint      `json:"-"`
	StartDate        time.Time `json:"start_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	DurationDays     int       `json:"duration_days"`
	AmountCents      int64     `json:"amount_cents"`
	IsRecurring      bool      `json:"is_recurring"`
	PaymentReference string    `json:"payment_reference"`
	AccessType       string    `json:"access_type"`
	AccessEmail      string    `json:"access_email,omitempty"`
	AccessSecret     string    `json:"access_secret,omitempty"`
	InviteLink       string    `json:"invite_link,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// QuoteDTO is the server-side price preview for a prospective purchase.
// The client charges exactly AmountCents; a purchase recorded with any other
// amount would disagree with what this endpoint promised.
type QuoteDTO struct {
	PoolSID      string    `json:"pool_sid"`
	DurationDays int       `json:"duration_days"`
	AmountCents  int64     `json:"amount_cents"`
	IsRecurring  bool      `json:"is_recurring"`
	StartDate    time.Time `json:"start_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
}

func ToGrantDTO(g *grant.Grant) *GrantDTO {
	if g == nil {
		return nil
	}
	cred := g.Credential()
	return &GrantDTO{
		SID:              g.SID(),
		PoolID:           g.PoolID(),
		StartDate:        g.StartDate(),
		ExpiryDate:       g.ExpiryDate(),
		DurationDays:     g.DurationDays(),
		AmountCents:      g.AmountCents(),
		IsRecurring:      g.IsRecurring(),
		PaymentReference: g.PaymentReference(),
		AccessType:       cred.AccessType().String(),
		AccessEmail:      cred.Email(),
		AccessSecret:     cred.Secret(),
		InviteLink:       cred.InviteLink(),
		IsActive:         g.IsActive(),
		CreatedAt:        g.CreatedAt(),
	}
}

func ToGrantDTOs(grants []*grant.Grant) []*GrantDTO {
	dtos := make([]*GrantDTO, 0, len(grants))
	for _, g := range grants {
		dtos = append(dtos, ToGrantDTO(g))
	}
	return dtos
}
