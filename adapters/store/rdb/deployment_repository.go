package rdb

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acsops/acsops/domain"
	"github.com/acsops/acsops/domain/model"
)

type DeploymentRepository struct{ db *gorm.DB }

func NewDeploymentRepository(db *gorm.DB) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

func deploymentToRecord(d *model.Deployment) *DeploymentRecord {
	return &DeploymentRecord{
		ID:          d.ID,
		ClusterName: d.ClusterName,
		Image:       d.Image,
		AppID:       d.AppID,
		Outcome:     string(d.Outcome),
		Error:       d.Error,
		StartedAt:   d.StartedAt,
		FinishedAt:  d.FinishedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func deploymentToModel(r *DeploymentRecord) *model.Deployment {
	return &model.Deployment{
		ID:          r.ID,
		ClusterName: r.ClusterName,
		Image:       r.Image,
		AppID:       r.AppID,
		Outcome:     model.DeploymentOutcome(r.Outcome),
		Error:       r.Error,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *DeploymentRepository) Create(ctx context.Context, d *model.Deployment) error {
	rec := deploymentToRecord(d)
	if rec.ID == "" {
		rec.ID = "dep-" + uuid.NewString()
		d.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *DeploymentRepository) Get(ctx context.Context, id string) (*model.Deployment, error) {
	var rec DeploymentRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrDeploymentNotFound
		}
		return nil, err
	}
	return deploymentToModel(&rec), nil
}

func (r *DeploymentRepository) List(ctx context.Context) ([]*model.Deployment, error) {
	var recs []DeploymentRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Deployment, 0, len(recs))
	for i := range recs {
		out = append(out, deploymentToModel(&recs[i]))
	}
	return out, nil
}

var _ domain.DeploymentRepository = (*DeploymentRepository)(nil)
