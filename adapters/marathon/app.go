package marathon

import (
	"fmt"
	"strings"

	"github.com/acsops/acsops/domain/model"
)

// Defaults for app requests. These are starting points, not limits;
// override any of them via AppOptions.
const (
	DefaultHostPort      = 80
	DefaultContainerPort = 80
	DefaultProtocol      = "tcp"
	DefaultInstances     = 1
	DefaultCPUs          = 0.1
	DefaultMemoryMB      = 64
)

// DefaultResourceRoles restricts placement to public-facing agents.
var DefaultResourceRoles = []string{"slave_public"}

// PortMapping maps a host port to a container port.
type PortMapping struct {
	HostPort      int    `json:"hostPort"`
	ContainerPort int    `json:"containerPort"`
	Protocol      string `json:"protocol"`
}

// Docker describes the container runtime section of an app.
type Docker struct {
	Image        string        `json:"image"`
	Network      string        `json:"network"`
	PortMappings []PortMapping `json:"portMappings"`
}

// Container wraps the container section of an app.
type Container struct {
	Type   string `json:"type"`
	Docker Docker `json:"docker"`
}

// App is the request body for POST /marathon/v2/apps.
type App struct {
	ID                    string    `json:"id"`
	Container             Container `json:"container"`
	AcceptedResourceRoles []string  `json:"acceptedResourceRoles"`
	Instances             int       `json:"instances"`
	CPUs                  float64   `json:"cpus"`
	Mem                   float64   `json:"mem"`
	URIs                  []string  `json:"uris,omitempty"`
}

// AppOptions overrides the request defaults. Zero values keep the default.
type AppOptions struct {
	PortMapping           *PortMapping
	Instances             int
	CPUs                  float64
	MemoryMB              float64
	AcceptedResourceRoles []string
}

// AppID derives the app identifier from an image reference: everything
// after the final path separator.
func AppID(image string) string {
	if i := strings.LastIndex(image, "/"); i >= 0 {
		return image[i+1:]
	}
	return image
}

// NewApp builds an app request for the given image. When reg is non-nil a
// file URI pointing at the registry credentials is appended so agents
// fetch them before pulling the image; otherwise no URIs field is emitted.
// Deterministic, no I/O.
func NewApp(image string, reg *model.RegistryReference, opts AppOptions) *App {
	pm := PortMapping{HostPort: DefaultHostPort, ContainerPort: DefaultContainerPort, Protocol: DefaultProtocol}
	if opts.PortMapping != nil {
		pm = *opts.PortMapping
	}
	instances := DefaultInstances
	if opts.Instances > 0 {
		instances = opts.Instances
	}
	cpus := DefaultCPUs
	if opts.CPUs > 0 {
		cpus = opts.CPUs
	}
	mem := float64(DefaultMemoryMB)
	if opts.MemoryMB > 0 {
		mem = opts.MemoryMB
	}
	roles := DefaultResourceRoles
	if len(opts.AcceptedResourceRoles) > 0 {
		roles = opts.AcceptedResourceRoles
	}

	app := &App{
		ID: AppID(image),
		Container: Container{
			Type: "DOCKER",
			Docker: Docker{
				Image:        image,
				Network:      "BRIDGE",
				PortMappings: []PortMapping{pm},
			},
		},
		AcceptedResourceRoles: roles,
		Instances:             instances,
		CPUs:                  cpus,
		Mem:                   mem,
	}
	if reg != nil {
		app.URIs = []string{CredentialsURI(reg)}
	}
	return app
}

// CredentialsURI renders the mounted credentials file location for a
// private registry reference.
func CredentialsURI(reg *model.RegistryReference) string {
	return fmt.Sprintf("file:///mnt/%s/%s", reg.DefaultShare, reg.CredentialsFileName)
}
