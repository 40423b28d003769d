package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/seatshare-inc/seatshare/internal/shared/id"
)

const (
	maxServiceNameLength = 100
	maxServiceSlugLength = 100
)

// Service represents a third-party service whose subscriptions are shared
// through pools (e.g. a streaming or music platform). It owns its pools:
// deleting a service cascades to pools and their grants.
type Service struct {
	id        uint
	sid       string
	name      string
	slug      string
	iconURL   string
	sortOrder int
	active    bool
	metadata  map[string]interface{}
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewService creates a new service entry for the catalog.
func NewService(name, slug, iconURL string) (*Service, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	if name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if len(name) > maxServiceNameLength {
		return nil, fmt.Errorf("service name too long: max %d characters", maxServiceNameLength)
	}
	if slug == "" {
		return nil, fmt.Errorf("service slug is required")
	}
	if len(slug) > maxServiceSlugLength {
		return nil, fmt.Errorf("service slug too long: max %d characters", maxServiceSlugLength)
	}

	now := time.Now().UTC()
	return &Service{
		sid:       id.MustGenerateWithPrefix(id.PrefixService, id.DefaultLength),
		name:      name,
		slug:      slug,
		iconURL:   iconURL,
		active:    true,
		metadata:  make(map[string]interface{}),
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructService rebuilds a service from persistence.
func ReconstructService(
	serviceID uint,
	sid, name, slug, iconURL string,
	sortOrder int,
	active bool,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Service, error) {
	if serviceID == 0 {
		return nil, fmt.Errorf("service ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("service SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("service name is required")
	}

	return &Service{
		id:        serviceID,
		sid:       sid,
		name:      name,
		slug:      slug,
		iconURL:   iconURL,
		sortOrder: sortOrder,
		active:    active,
		metadata:  metadata,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Service) ID() uint             { return s.id }
func (s *Service) SID() string          { return s.sid }
func (s *Service) Name() string         { return s.name }
func (s *Service) Slug() string         { return s.slug }
func (s *Service) IconURL() string      { return s.iconURL }
func (s *Service) SortOrder() int       { return s.sortOrder }

// Metadata returns display metadata attached by administrators (branding,
// marketing copy). The marketplace never interprets it.
func (s *Service) Metadata() map[string]interface{} {
	if s.metadata == nil {
		return make(map[string]interface{})
	}
	return s.metadata
}

func (s *Service) IsActive() bool       { return s.active }
func (s *Service) Version() int         { return s.version }
func (s *Service) CreatedAt() time.Time { return s.createdAt }
func (s *Service) UpdatedAt() time.Time { return s.updatedAt }

// SetID assigns the database ID after initial persistence.
func (s *Service) SetID(serviceID uint) error {
	if s.id != 0 {
		return fmt.Errorf("service ID already set")
	}
	if serviceID == 0 {
		return fmt.Errorf("service ID cannot be zero")
	}
	s.id = serviceID
	return nil
}

// Update changes the display attributes of the service.
func (s *Service) Update(name, iconURL string, sortOrder int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("service name is required")
	}
	if len(name) > maxServiceNameLength {
		return fmt.Errorf("service name too long: max %d characters", maxServiceNameLength)
	}

	s.name = name
	s.iconURL = iconURL
	s.sortOrder = sortOrder
	s.updatedAt = time.Now().UTC()
	return nil
}

// UpdateMetadata replaces the display metadata wholesale.
func (s *Service) UpdateMetadata(metadata map[string]interface{}) {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	s.metadata = metadata
	s.updatedAt = time.Now().UTC()
}

// Activate makes the service visible in listings.
func (s *Service) Activate() {
	if s.active {
		return
	}
	s.active = true
	s.updatedAt = time.Now().UTC()
}

// Deactivate hides the service from listings without deleting it.
func (s *Service) Deactivate() {
	if !s.active {
		return
	}
	s.active = false
	s.updatedAt = time.Now().UTC()
}
