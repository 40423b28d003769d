package catalog

import "context"

// ServiceRepository defines persistence operations for services.
// Reads return (nil, nil) when the record does not exist.
type ServiceRepository interface {
	Create(ctx context.Context, service *Service) error
	GetByID(ctx context.Context, serviceID uint) (*Service, error)
	GetBySID(ctx context.Context, sid string) (*Service, error)
	GetBySlug(ctx context.Context, slug string) (*Service, error)
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
	Update(ctx context.Context, service *Service) error

	// Delete removes the service and cascades to its pools and their
	// grants in a single transaction.
	Delete(ctx context.Context, serviceID uint) error
}

// PoolRepository defines persistence operations for pools. seatCount is
// never written through this interface; only the grant repository's seat
// reservation transaction mutates it.
type PoolRepository interface {
	Create(ctx context.Context, pool *Pool) error
	GetByID(ctx context.Context, poolID uint) (*Pool, error)
	GetBySID(ctx context.Context, sid string) (*Pool, error)
	ListByServiceID(ctx context.Context, serviceID uint) ([]*Pool, error)

	// ListAvailableByServiceID returns active pools with spare capacity:
	// active AND seat_count < seat_cap. A pool at its cap never appears.
	ListAvailableByServiceID(ctx context.Context, serviceID uint) ([]*Pool, error)

	Update(ctx context.Context, pool *Pool) error
	Delete(ctx context.Context, poolID uint) error
}
