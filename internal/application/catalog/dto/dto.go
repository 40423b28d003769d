package dto

import (
	"time"

	"github.com/seatshare-inc/seatshare/internal/domain/catalog"
	"github.com/seatshare-inc/seatshare/internal/domain/pricing"
)

type ServiceDTO struct {
	SID       string    `json:"sid"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IconURL   string    `json:"icon_url,omitempty"`
	SortOrder int                    `json:"sort_order"`
	IsActive  bool                   `json:"is_active"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// PoolDTO is the admin-facing pool projection. Credentials are included
// because only administrators see it.
type PoolDTO struct {
	SID               string    `json:"sid"`
	ServiceSID        string    `json:"service_sid,omitempty"`
	CatalogPriceCents int64     `json:"catalog_price_cents"`
	SeatCap           int       `json:"seat_cap"`
	SeatCount         int       `json:"seat_count"`
	SeatsLeft         int       `json:"seats_left"`
	AccessType        string    `json:"access_type"`
	AccessEmail       string    `json:"access_email,omitempty"`
	AccessSecret      string    `json:"access_secret,omitempty"`
	InviteLink        string    `json:"invite_link,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AvailablePoolDTO is the browse-facing pool projection with price previews.
// Credentials never appear here; purchasers receive them on the grant after
// a successful purchase.
type AvailablePoolDTO struct {
	PoolSID                string `json:"pool_sid"`
	CatalogPriceCents      int64  `json:"catalog_price_cents"`
	DiscountedMonthlyCents int64  `json:"discounted_monthly_cents"`
	SeatCap                int    `json:"seat_cap"`
	SeatsUsed              int    `json:"seats_used"`
	SeatsLeft              int    `json:"seats_left"`
	AccessType             string `json:"access_type"`
}

func ToServiceDTO(s *catalog.Service) *ServiceDTO {
	if s == nil {
		return nil
	}
	return &ServiceDTO{
		SID:       s.SID(),
		Name:      s.Name(),
		Slug:      s.Slug(),
		IconURL:   s.IconURL(),
		SortOrder: s.SortOrder(),
		IsActive:  s.IsActive(),
		Metadata:  s.Metadata(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func ToServiceDTOs(services []*catalog.Service) []*ServiceDTO {
	dtos := make([]*ServiceDTO, 0, len(services))
	for _, s := range services {
		dtos = append(dtos, ToServiceDTO(s))
	}
	return dtos
}

func ToPoolDTO(p *catalog.Pool, serviceSID string) *PoolDTO {
	if p == nil {
		return nil
	}
	cred := p.Credential()
	return &PoolDTO{
		SID:               p.SID(),
		ServiceSID:        serviceSID,
		CatalogPriceCents: p.CatalogPriceCents(),
		SeatCap:           p.SeatCap(),
		SeatCount:         p.SeatCount(),
		SeatsLeft:         p.SeatsLeft(),
		AccessType:        cred.AccessType().String(),
		AccessEmail:       cred.Email(),
		AccessSecret:      cred.Secret(),
		InviteLink:        cred.InviteLink(),
		IsActive:          p.IsActive(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func ToAvailablePoolDTO(p *catalog.Pool) *AvailablePoolDTO {
	if p == nil {
		return nil
	}
	return &AvailablePoolDTO{
		PoolSID:                p.SID(),
		CatalogPriceCents:      p.CatalogPriceCents(),
		DiscountedMonthlyCents: pricing.ComputeDiscountedMonthly(p.CatalogPriceCents()),
		SeatCap:                p.SeatCap(),
		SeatsUsed:              p.SeatCount(),
		SeatsLeft:              p.SeatsLeft(),
		AccessType:             p.Credential().AccessType().String(),
	}
}

func ToAvailablePoolDTOs(pools []*catalog.Pool) []*AvailablePoolDTO {
	dtos := make([]*AvailablePoolDTO, 0, len(pools))
	for _, p := range pools {
		dtos = append(dtos, ToAvailablePoolDTO(p))
	}
	return dtos
}
