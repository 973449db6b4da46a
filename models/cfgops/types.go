// Package cfgops defines the configuration schema (structs) for acsops.yml
// and its loading helpers. This file is the YAML -> struct mapping.
package cfgops

// DefaultConfigPath is where acsops looks for its configuration.
const DefaultConfigPath = "acsops.yml"

// Root is the root structure of acsops.yml.
// Example:
// version: 1
// cluster: { name: myapp, location: westus2, ... }
// provider: { driver: acs, settings: { AZURE_SUBSCRIPTION_ID: ... } }
// app: { image: registry.example.com/myorg/myapp }
type Root struct {
	Version  int      `yaml:"version"`
	Cluster  Cluster  `yaml:"cluster"`
	Provider Provider `yaml:"provider"`
	App      App      `yaml:"app"`
	Deploy   Deploy   `yaml:"deploy"`
}

// Cluster describes the desired container service cluster.
type Cluster struct {
	Name         string `yaml:"name"`
	Location     string `yaml:"location"`
	MasterCount  int    `yaml:"masterCount"`  // default 1
	AgentCount   int    `yaml:"agentCount"`   // default 1
	VMSize       string `yaml:"vmSize"`       // default Standard_D1_v2
	AdminUser    string `yaml:"adminUser"`    // default cluster name
	Orchestrator string `yaml:"orchestrator"` // default DCOS

	// SSHPublicKey is the path to the public key enrolled on cluster nodes.
	SSHPublicKey string `yaml:"sshPublicKey"`
	// SSHKey is the path to the matching private key used for tunnels and
	// shells. Both paths are explicit configuration.
	SSHKey string `yaml:"sshKey"`
}

// Provider selects the cloud driver and its settings.
type Provider struct {
	Driver   string            `yaml:"driver"`             // e.g., acs
	Settings map[string]string `yaml:"settings,omitempty"` // driver-specific settings
}

// App is the application to deploy. The resource fields override the
// Marathon request defaults when non-zero.
type App struct {
	Image    string    `yaml:"image"`
	Registry *Registry `yaml:"registry,omitempty"`

	Instances     int      `yaml:"instances,omitempty"`
	CPUs          float64  `yaml:"cpus,omitempty"`
	MemoryMB      float64  `yaml:"memoryMB,omitempty"`
	HostPort      int      `yaml:"hostPort,omitempty"`
	ContainerPort int      `yaml:"containerPort,omitempty"`
	Protocol      string   `yaml:"protocol,omitempty"`
	ResourceRoles []string `yaml:"resourceRoles,omitempty"`
}

// Registry points at stored private registry credentials.
type Registry struct {
	Share           string `yaml:"share"`
	CredentialsFile string `yaml:"credentialsFile"`
}

// Deploy tunes the workflow. Durations use Go syntax (e.g., "5s", "30m");
// pollTimeout "0" disables the bound.
type Deploy struct {
	LocalPort    int    `yaml:"localPort,omitempty"`
	PollInterval string `yaml:"pollInterval,omitempty"`
	PollTimeout  string `yaml:"pollTimeout,omitempty"`
}
