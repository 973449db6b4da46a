package marathon

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/acsops/acsops/domain/model"
)

func TestAppID(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{name: "registry with org", image: "registry.example.com/myorg/myapp", want: "myapp"},
		{name: "registry with tag", image: "registry.example.com/myapp:latest", want: "myapp:latest"},
		{name: "short form", image: "repo/app:1", want: "app:1"},
		{name: "bare image", image: "nginx", want: "nginx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppID(tt.image); got != tt.want {
				t.Fatalf("AppID(%q) = %q, want %q", tt.image, got, tt.want)
			}
		})
	}
}

func TestNewAppDefaults(t *testing.T) {
	app := NewApp("registry.example.com/myorg/myapp", nil, AppOptions{})

	if app.ID != "myapp" {
		t.Errorf("id = %q", app.ID)
	}
	if app.Container.Type != "DOCKER" || app.Container.Docker.Network != "BRIDGE" {
		t.Errorf("unexpected container: %+v", app.Container)
	}
	if app.Container.Docker.Image != "registry.example.com/myorg/myapp" {
		t.Errorf("image = %q", app.Container.Docker.Image)
	}
	pms := app.Container.Docker.PortMappings
	if len(pms) != 1 || pms[0] != (PortMapping{HostPort: 80, ContainerPort: 80, Protocol: "tcp"}) {
		t.Errorf("unexpected port mappings: %+v", pms)
	}
	if len(app.AcceptedResourceRoles) != 1 || app.AcceptedResourceRoles[0] != "slave_public" {
		t.Errorf("unexpected resource roles: %v", app.AcceptedResourceRoles)
	}
	if app.Instances != 1 || app.CPUs != 0.1 || app.Mem != 64 {
		t.Errorf("unexpected resources: instances=%d cpus=%v mem=%v", app.Instances, app.CPUs, app.Mem)
	}
	if app.URIs != nil {
		t.Errorf("uris must be absent without a registry reference: %v", app.URIs)
	}
}

func TestNewAppOverrides(t *testing.T) {
	app := NewApp("repo/app", nil, AppOptions{
		PortMapping:           &PortMapping{HostPort: 8080, ContainerPort: 3000, Protocol: "tcp"},
		Instances:             3,
		CPUs:                  0.5,
		MemoryMB:              256,
		AcceptedResourceRoles: []string{"*"},
	})
	if app.Instances != 3 || app.CPUs != 0.5 || app.Mem != 256 {
		t.Errorf("overrides not applied: %+v", app)
	}
	if app.Container.Docker.PortMappings[0].HostPort != 8080 {
		t.Errorf("port mapping override not applied: %+v", app.Container.Docker.PortMappings)
	}
	if app.AcceptedResourceRoles[0] != "*" {
		t.Errorf("resource roles override not applied: %v", app.AcceptedResourceRoles)
	}
}

func TestNewAppRegistryURI(t *testing.T) {
	reg := &model.RegistryReference{DefaultShare: "data", CredentialsFileName: "creds.json"}
	app := NewApp("repo/app", reg, AppOptions{})
	if len(app.URIs) != 1 || app.URIs[0] != "file:///mnt/data/creds.json" {
		t.Fatalf("uris = %v, want exactly [file:///mnt/data/creds.json]", app.URIs)
	}
}

func TestAppJSONOmitsURIs(t *testing.T) {
	data, err := json.Marshal(NewApp("repo/app", nil, AppOptions{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "uris") {
		t.Errorf("uris field present in JSON without registry: %s", data)
	}

	reg := &model.RegistryReference{DefaultShare: "data", CredentialsFileName: "creds.json"}
	data, err = json.Marshal(NewApp("repo/app", reg, AppOptions{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"uris":["file:///mnt/data/creds.json"]`) {
		t.Errorf("uris field missing or wrong in JSON: %s", data)
	}
}
