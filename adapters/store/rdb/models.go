package rdb

import "time"

// DeploymentRecord is the RDB persistence model for domain Deployment.
// Table name: deployments
type DeploymentRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	ClusterName string    `gorm:"type:text;not null"`
	Image       string    `gorm:"type:text;not null"`
	AppID       string    `gorm:"type:text;not null"`
	Outcome     string    `gorm:"type:text;not null"`
	Error       string    `gorm:"type:text"`
	StartedAt   time.Time `gorm:"not null"`
	FinishedAt  time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (DeploymentRecord) TableName() string { return "deployments" }
