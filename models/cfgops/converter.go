package cfgops

import (
	"fmt"
	"os"
	"time"

	"github.com/acsops/acsops/domain/model"
)

// Defaults applied by the converters when the configuration omits a value.
const (
	DefaultVMSize       = "Standard_D1_v2"
	DefaultOrchestrator = string(model.OrchestratorDCOS)
	DefaultPollInterval = 5 * time.Second
	DefaultPollTimeout  = 30 * time.Minute
)

// ToCluster converts the cluster section to a domain descriptor, reading
// the SSH public key file referenced by the configuration.
func (r *Root) ToCluster() (*model.Cluster, error) {
	c := r.Cluster
	if c.SSHPublicKey == "" {
		return nil, fmt.Errorf("cluster.sshPublicKey is required")
	}
	key, err := os.ReadFile(c.SSHPublicKey)
	if err != nil {
		return nil, fmt.Errorf("read ssh public key %s: %w", c.SSHPublicKey, err)
	}

	masterCount := c.MasterCount
	if masterCount == 0 {
		masterCount = 1
	}
	agentCount := c.AgentCount
	if agentCount == 0 {
		agentCount = 1
	}
	vmSize := c.VMSize
	if vmSize == "" {
		vmSize = DefaultVMSize
	}
	orchestrator := c.Orchestrator
	if orchestrator == "" {
		orchestrator = DefaultOrchestrator
	}

	out := &model.Cluster{
		Name:         c.Name,
		Location:     c.Location,
		MasterCount:  masterCount,
		AgentCount:   agentCount,
		VMSize:       vmSize,
		AdminUser:    c.AdminUser,
		SSHPublicKey: key,
		Orchestrator: model.OrchestratorKind(orchestrator),
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// ToRegistry converts the optional registry section.
func (r *Root) ToRegistry() *model.RegistryReference {
	if r.App.Registry == nil {
		return nil
	}
	return &model.RegistryReference{
		DefaultShare:        r.App.Registry.Share,
		CredentialsFileName: r.App.Registry.CredentialsFile,
	}
}

// PollInterval parses the deploy.pollInterval field, defaulting to 5s.
func (r *Root) PollInterval() (time.Duration, error) {
	return parseDuration(r.Deploy.PollInterval, DefaultPollInterval)
}

// PollTimeout parses the deploy.pollTimeout field, defaulting to 30m.
// "0" disables the bound.
func (r *Root) PollTimeout() (time.Duration, error) {
	if r.Deploy.PollTimeout == "0" {
		return 0, nil
	}
	return parseDuration(r.Deploy.PollTimeout, DefaultPollTimeout)
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %q", s)
	}
	return d, nil
}
