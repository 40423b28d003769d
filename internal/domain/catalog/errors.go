package catalog

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceInactive  = errors.New("service inactive")
	ErrServiceSlugTaken = errors.New("service slug already exists")
	ErrPoolNotFound     = errors.New("pool not found")
	ErrPoolInactive     = errors.New("pool inactive")
	ErrPoolFull         = errors.New("pool has no free seats")
)
