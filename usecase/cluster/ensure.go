package cluster

import (
	"context"
	"errors"
	"fmt"

	"github.com/acsops/acsops/domain/model"
	"github.com/acsops/acsops/internal/logging"
	"github.com/acsops/acsops/internal/naming"
)

// EnsureInput represents a command to ensure a cluster exists remotely.
type EnsureInput struct {
	Cluster *model.Cluster
}

// EnsureOutput carries the provisioned cluster.
type EnsureOutput struct {
	Cluster *model.ProvisionedCluster
}

// Ensure performs an idempotent get-or-create of the described cluster.
// A not-found lookup triggers a single creation request synthesized from
// the descriptor; any other remote error is wrapped in ProvisionError and
// not retried. At most one remote mutating call is issued per UseCase
// instance regardless of how often Ensure is called.
func (u *UseCase) Ensure(ctx context.Context, in *EnsureInput) (*EnsureOutput, error) {
	if in == nil || in.Cluster == nil {
		return nil, model.ErrClusterInvalid
	}
	c := in.Cluster
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cached != nil {
		return &EnsureOutput{Cluster: u.cached}, nil
	}

	pc, err := u.Port.Get(ctx, c.Name)
	if err == nil {
		log.Info(ctx, "cluster exists", "cluster", c.Name, "master_fqdn", pc.MasterFQDN)
		u.cached = pc
		return &EnsureOutput{Cluster: pc}, nil
	}
	if !errors.Is(err, model.ErrClusterNotFound) {
		return nil, &model.ProvisionError{Cluster: c.Name, Err: err}
	}

	spec := u.creationSpec(c)
	log.Info(ctx, "cluster not found, creating",
		"cluster", c.Name,
		"dns_prefix", spec.MasterProfile.DNSPrefix,
		"vm_size", c.VMSize,
	)
	pc, err = u.Port.Create(ctx, spec)
	if err != nil {
		return nil, &model.ProvisionError{Cluster: c.Name, Err: err}
	}
	log.Info(ctx, "cluster created", "cluster", c.Name, "master_fqdn", pc.MasterFQDN)
	u.cached = pc
	return &EnsureOutput{Cluster: pc}, nil
}

// creationSpec synthesizes a creation request from the descriptor: the
// configured master count, a single agent pool, DNS prefixes from the name
// generator with the agent pool distinguished by suffix, and an SSH
// profile from the descriptor's public key.
func (u *UseCase) creationSpec(c *model.Cluster) *model.ContainerServiceSpec {
	gen := u.DNSPrefix
	if gen == nil {
		gen = naming.DNSPrefix
	}
	prefix := gen()
	return &model.ContainerServiceSpec{
		Name:     c.Name,
		Location: c.Location,
		MasterProfile: model.MasterProfile{
			Count:     c.MasterCount,
			DNSPrefix: prefix,
		},
		AgentPoolProfiles: []model.AgentPoolProfile{
			{
				Name:      c.Name,
				Count:     c.AgentCount,
				VMSize:    c.VMSize,
				DNSPrefix: naming.AgentDNSPrefix(prefix),
			},
		},
		LinuxProfile: model.LinuxProfile{
			AdminUser:     AdminUser(c),
			SSHPublicKeys: []string{string(c.SSHPublicKey)},
		},
		OrchestratorType: c.Orchestrator,
	}
}

// AdminUser returns the Linux admin account for the cluster, defaulting to
// the cluster name.
func AdminUser(c *model.Cluster) string {
	if c.AdminUser != "" {
		return c.AdminUser
	}
	return c.Name
}

// MasterLogin renders the user@host login for the cluster master.
func MasterLogin(c *model.Cluster, pc *model.ProvisionedCluster) string {
	return fmt.Sprintf("%s@%s", AdminUser(c), pc.MasterFQDN)
}
