// Package inmem provides in-memory repository implementations, used by
// tests and as a fallback when no database is configured.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acsops/acsops/domain"
	"github.com/acsops/acsops/domain/model"
)

// DeploymentRepository stores deployment records in memory.
type DeploymentRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Deployment
}

// NewDeploymentRepository returns an empty in-memory repository.
func NewDeploymentRepository() *DeploymentRepository {
	return &DeploymentRepository{items: map[string]*model.Deployment{}}
}

func (r *DeploymentRepository) Create(_ context.Context, d *model.Deployment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = "dep-" + uuid.NewString()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *DeploymentRepository) Get(_ context.Context, id string) (*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, model.ErrDeploymentNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *DeploymentRepository) List(_ context.Context) ([]*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Deployment, 0, len(r.items))
	for _, d := range r.items {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var _ domain.DeploymentRepository = (*DeploymentRepository)(nil)
