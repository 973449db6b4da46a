package domain

import (
	"context"

	"github.com/acsops/acsops/domain/model"
)

// DeploymentRepository stores and retrieves deploy attempt records.
type DeploymentRepository interface {
	Create(ctx context.Context, d *model.Deployment) error
	Get(ctx context.Context, id string) (*model.Deployment, error)
	List(ctx context.Context) ([]*model.Deployment, error)
}

// Repositories groups the repository interfaces used by use cases.
type Repositories struct {
	Deployment DeploymentRepository
}
