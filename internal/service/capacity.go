package service

import (
	"context"

	"github.com/deppfellow/capacity-api/internal/model"
	"github.com/deppfellow/capacity-api/internal/server"
)

// CapacityExecutor runs the capacity query for a date range.
//
// *repository.CapacityRepository is the production implementation.
type CapacityExecutor interface {
	Execute(ctx context.Context, r model.DateRange) ([]model.CapacityRecord, error)
}

type CapacityService struct {
	server   *server.Server
	executor CapacityExecutor
}

func NewCapacityService(s *server.Server, executor CapacityExecutor) *CapacityService {
	return &CapacityService{
		server:   s,
		executor: executor,
	}
}

// GetCapacity checks the range ordering and hands it to the executor.
//
// An inverted range returns model.ErrInvalidDateRange without touching the
// executor. Executor rows and errors are returned unchanged.
func (s *CapacityService) GetCapacity(ctx context.Context, r model.DateRange) ([]model.CapacityRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return s.executor.Execute(ctx, r)
}
