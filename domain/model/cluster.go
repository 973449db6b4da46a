package model

import (
	"context"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// OrchestratorKind identifies the container orchestrator run by a cluster.
type OrchestratorKind string

const (
	// OrchestratorDCOS is the DC/OS orchestrator (Marathon management API).
	OrchestratorDCOS OrchestratorKind = "DCOS"
)

// Cluster describes the desired container service cluster.
// It is immutable once constructed; provisioning reads it and never writes back.
type Cluster struct {
	Name         string
	Location     string
	MasterCount  int
	AgentCount   int
	VMSize       string
	AdminUser    string
	SSHPublicKey []byte
	Orchestrator OrchestratorKind
}

// Validate checks the descriptor for fields required by provisioning.
// The SSH public key must be present and parse as an authorized_keys entry.
func (c *Cluster) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrClusterInvalid)
	}
	if c.Location == "" {
		return fmt.Errorf("%w: location is required", ErrClusterInvalid)
	}
	if c.MasterCount < 1 {
		return fmt.Errorf("%w: master count must be >= 1", ErrClusterInvalid)
	}
	if c.AgentCount < 1 {
		return fmt.Errorf("%w: agent count must be >= 1", ErrClusterInvalid)
	}
	if c.VMSize == "" {
		return fmt.Errorf("%w: vm size is required", ErrClusterInvalid)
	}
	if len(c.SSHPublicKey) == 0 {
		return fmt.Errorf("%w: ssh public key is required", ErrClusterInvalid)
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey(c.SSHPublicKey); err != nil {
		return fmt.Errorf("%w: ssh public key: %v", ErrClusterInvalid, err)
	}
	return nil
}

// ProvisionedCluster is the remote-side result of provisioning.
type ProvisionedCluster struct {
	// ID is the cloud resource identifier, opaque to callers.
	ID string
	// MasterFQDN is the public DNS name of the cluster master.
	MasterFQDN string
	// DNSPrefix is the master DNS prefix assigned at creation time.
	DNSPrefix string
}

// MasterProfile describes the control plane of a creation request.
type MasterProfile struct {
	Count     int
	DNSPrefix string
}

// AgentPoolProfile describes one agent pool of a creation request.
type AgentPoolProfile struct {
	Name      string
	Count     int
	VMSize    string
	DNSPrefix string
}

// LinuxProfile describes the admin account and SSH access of a creation request.
type LinuxProfile struct {
	AdminUser     string
	SSHPublicKeys []string
}

// ContainerServiceSpec is a container service creation request synthesized
// from a Cluster descriptor. Provider drivers translate it to the cloud API.
type ContainerServiceSpec struct {
	Name              string
	Location          string
	MasterProfile     MasterProfile
	AgentPoolProfiles []AgentPoolProfile
	LinuxProfile      LinuxProfile
	OrchestratorType  OrchestratorKind
}

// ContainerServicePort is the domain port for the cloud management API.
// Get returns ErrClusterNotFound (possibly wrapped) when no cluster with
// the given name exists. Create blocks until the remote operation completes.
type ContainerServicePort interface {
	Get(ctx context.Context, name string) (*ProvisionedCluster, error)
	Create(ctx context.Context, spec *ContainerServiceSpec) (*ProvisionedCluster, error)
}
