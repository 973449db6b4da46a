package acs

// Wire models for the containerServices resource, api-version 2017-07-01.
// Pointer fields with omitempty match the ARM JSON conventions.

// ContainerService is the ARM resource envelope.
type ContainerService struct {
	ID         *string                     `json:"id,omitempty"`
	Name       *string                     `json:"name,omitempty"`
	Location   *string                     `json:"location,omitempty"`
	Tags       map[string]*string          `json:"tags,omitempty"`
	Properties *ContainerServiceProperties `json:"properties,omitempty"`
}

// ContainerServiceProperties holds the cluster definition and state.
type ContainerServiceProperties struct {
	ProvisioningState   *string              `json:"provisioningState,omitempty"`
	OrchestratorProfile *OrchestratorProfile `json:"orchestratorProfile,omitempty"`
	MasterProfile       *MasterProfile       `json:"masterProfile,omitempty"`
	AgentPoolProfiles   []*AgentPoolProfile  `json:"agentPoolProfiles,omitempty"`
	LinuxProfile        *LinuxProfile        `json:"linuxProfile,omitempty"`
}

// OrchestratorProfile selects the orchestrator run by the cluster.
type OrchestratorProfile struct {
	OrchestratorType *string `json:"orchestratorType,omitempty"`
}

// MasterProfile describes the control plane nodes. FQDN is read-only.
type MasterProfile struct {
	Count     *int32  `json:"count,omitempty"`
	DNSPrefix *string `json:"dnsPrefix,omitempty"`
	FQDN      *string `json:"fqdn,omitempty"`
}

// AgentPoolProfile describes one agent pool. FQDN is read-only.
type AgentPoolProfile struct {
	Name      *string `json:"name,omitempty"`
	Count     *int32  `json:"count,omitempty"`
	VMSize    *string `json:"vmSize,omitempty"`
	DNSPrefix *string `json:"dnsPrefix,omitempty"`
	FQDN      *string `json:"fqdn,omitempty"`
}

// LinuxProfile configures the admin account on cluster nodes.
type LinuxProfile struct {
	AdminUsername *string           `json:"adminUsername,omitempty"`
	SSH           *SSHConfiguration `json:"ssh,omitempty"`
}

// SSHConfiguration lists SSH public keys authorized on cluster nodes.
type SSHConfiguration struct {
	PublicKeys []*SSHPublicKey `json:"publicKeys,omitempty"`
}

// SSHPublicKey carries one authorized_keys entry.
type SSHPublicKey struct {
	KeyData *string `json:"keyData,omitempty"`
}
