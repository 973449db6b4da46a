package model

import "time"

// DeploymentOutcome is the terminal result of a deploy attempt.
type DeploymentOutcome string

const (
	// OutcomeSucceeded means the app was submitted and the orchestrator
	// reported no pending deployments.
	OutcomeSucceeded DeploymentOutcome = "succeeded"
	// OutcomeTunnelFailed means the management tunnel could not be
	// established; the operator can retry by hand.
	OutcomeTunnelFailed DeploymentOutcome = "tunnel-failed"
)

// RegistryReference points at stored credentials for a private container
// registry. It is opaque to the deploy workflow except for URI derivation.
type RegistryReference struct {
	// DefaultShare is the storage share holding the credentials file.
	DefaultShare string
	// CredentialsFileName is the file name within the share.
	CredentialsFileName string
}

// Deployment is the history record of one deploy attempt.
type Deployment struct {
	ID          string
	ClusterName string
	Image       string
	AppID       string
	Outcome     DeploymentOutcome
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
