package model

import (
	"errors"
	"fmt"
)

var (
	ErrClusterNotFound    = errors.New("cluster not found")
	ErrClusterInvalid     = errors.New("cluster invalid")
	ErrDeploymentNotFound = errors.New("deployment not found")
)

// ProvisionError reports a cluster lookup or creation failure other than
// not-found. It is never retried; callers see the underlying cause via Unwrap.
type ProvisionError struct {
	Cluster string
	Err     error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision cluster %s: %v", e.Cluster, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }
