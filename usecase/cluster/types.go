package cluster

import (
	"sync"

	"github.com/acsops/acsops/domain/model"
)

// UseCase wires the cloud port and collaborators needed for cluster
// operations. One UseCase instance manages at most one cluster: the result
// of the first successful Ensure is cached for the lifetime of the
// instance and later calls are pure cache reads.
type UseCase struct {
	// Port is the cloud management API for container services.
	Port model.ContainerServicePort

	// DNSPrefix generates a master DNS prefix for a creation attempt.
	// Defaults to internal/naming. Uniqueness is not enforced locally; a
	// collision surfaces as a remote-side creation error.
	DNSPrefix func() string

	mu     sync.Mutex
	cached *model.ProvisionedCluster
}
