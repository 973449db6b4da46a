package cluster

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/ssh"

	"github.com/acsops/acsops/domain/model"
)

// fakePort scripts the cloud port and counts calls.
type fakePort struct {
	getErr     error
	existing   *model.ProvisionedCluster
	created    *model.ProvisionedCluster
	createErr  error
	getCalls   int
	createCall int
	lastSpec   *model.ContainerServiceSpec
}

func (f *fakePort) Get(_ context.Context, name string) (*model.ProvisionedCluster, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.existing, nil
}

func (f *fakePort) Create(_ context.Context, spec *model.ContainerServiceSpec) (*model.ProvisionedCluster, error) {
	f.createCall++
	f.lastSpec = spec
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func testPublicKey(t *testing.T) []byte {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("convert key: %v", err)
	}
	return ssh.MarshalAuthorizedKey(sshPub)
}

func testDescriptor(t *testing.T) *model.Cluster {
	return &model.Cluster{
		Name:         "myapp",
		Location:     "westus2",
		MasterCount:  1,
		AgentCount:   1,
		VMSize:       "Standard_D1_v2",
		SSHPublicKey: testPublicKey(t),
		Orchestrator: model.OrchestratorDCOS,
	}
}

func TestEnsureCreatesWhenNotFound(t *testing.T) {
	port := &fakePort{
		getErr:  fmt.Errorf("container service myapp: %w", model.ErrClusterNotFound),
		created: &model.ProvisionedCluster{ID: "/sub/rg/myapp", MasterFQDN: "myappmgmt.westus2.cloudapp.azure.com", DNSPrefix: "quiet-river-ab12"},
	}
	uc := &UseCase{Port: port, DNSPrefix: func() string { return "quiet-river-ab12" }}
	desc := testDescriptor(t)

	out, err := uc.Ensure(context.Background(), &EnsureInput{Cluster: desc})
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if out.Cluster.MasterFQDN != "myappmgmt.westus2.cloudapp.azure.com" {
		t.Errorf("unexpected master fqdn: %s", out.Cluster.MasterFQDN)
	}
	if port.createCall != 1 {
		t.Fatalf("expected 1 create call, got %d", port.createCall)
	}

	spec := port.lastSpec
	if spec.MasterProfile.Count != 1 {
		t.Errorf("master count = %d, want 1", spec.MasterProfile.Count)
	}
	if spec.MasterProfile.DNSPrefix != "quiet-river-ab12" {
		t.Errorf("master dns prefix = %q", spec.MasterProfile.DNSPrefix)
	}
	if len(spec.AgentPoolProfiles) != 1 {
		t.Fatalf("expected 1 agent pool, got %d", len(spec.AgentPoolProfiles))
	}
	pool := spec.AgentPoolProfiles[0]
	if pool.VMSize != "Standard_D1_v2" {
		t.Errorf("agent vm size = %q", pool.VMSize)
	}
	if pool.Count != 1 {
		t.Errorf("agent count = %d, want 1", pool.Count)
	}
	if pool.DNSPrefix != "quiet-river-ab12-agent" {
		t.Errorf("agent dns prefix = %q", pool.DNSPrefix)
	}
	if len(spec.LinuxProfile.SSHPublicKeys) != 1 || spec.LinuxProfile.SSHPublicKeys[0] != string(desc.SSHPublicKey) {
		t.Errorf("ssh profile not built from descriptor key: %#v", spec.LinuxProfile.SSHPublicKeys)
	}
	if spec.LinuxProfile.AdminUser != "myapp" {
		t.Errorf("admin user = %q, want cluster name", spec.LinuxProfile.AdminUser)
	}
	if spec.OrchestratorType != model.OrchestratorDCOS {
		t.Errorf("orchestrator = %q", spec.OrchestratorType)
	}
}

func TestEnsureReturnsExisting(t *testing.T) {
	port := &fakePort{existing: &model.ProvisionedCluster{MasterFQDN: "existingmgmt.example.com"}}
	uc := &UseCase{Port: port}

	out, err := uc.Ensure(context.Background(), &EnsureInput{Cluster: testDescriptor(t)})
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if out.Cluster.MasterFQDN != "existingmgmt.example.com" {
		t.Errorf("unexpected cluster: %+v", out.Cluster)
	}
	if port.createCall != 0 {
		t.Errorf("expected no create calls, got %d", port.createCall)
	}
}

func TestEnsureCachesAcrossCalls(t *testing.T) {
	port := &fakePort{
		getErr:  model.ErrClusterNotFound,
		created: &model.ProvisionedCluster{MasterFQDN: "mgmt.example.com"},
	}
	uc := &UseCase{Port: port}
	desc := testDescriptor(t)

	for i := 0; i < 3; i++ {
		if _, err := uc.Ensure(context.Background(), &EnsureInput{Cluster: desc}); err != nil {
			t.Fatalf("Ensure call %d returned error: %v", i+1, err)
		}
	}
	if port.createCall != 1 {
		t.Errorf("expected exactly 1 remote create across calls, got %d", port.createCall)
	}
	if port.getCalls != 1 {
		t.Errorf("expected exactly 1 remote lookup across calls, got %d", port.getCalls)
	}
}

func TestEnsureOtherErrorPropagates(t *testing.T) {
	cause := errors.New("quota exceeded")
	port := &fakePort{getErr: cause}
	uc := &UseCase{Port: port}

	_, err := uc.Ensure(context.Background(), &EnsureInput{Cluster: testDescriptor(t)})
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *model.ProvisionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProvisionError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not preserved: %v", err)
	}
	if port.createCall != 0 {
		t.Errorf("expected no create call after non-not-found error, got %d", port.createCall)
	}
}

func TestEnsureCreateErrorWrapped(t *testing.T) {
	cause := errors.New("dns prefix already taken")
	port := &fakePort{getErr: model.ErrClusterNotFound, createErr: cause}
	uc := &UseCase{Port: port}

	_, err := uc.Ensure(context.Background(), &EnsureInput{Cluster: testDescriptor(t)})
	var perr *model.ProvisionError
	if !errors.As(err, &perr) || !errors.Is(err, cause) {
		t.Fatalf("expected ProvisionError wrapping cause, got %v", err)
	}
}

func TestEnsureValidatesDescriptor(t *testing.T) {
	uc := &UseCase{Port: &fakePort{}}
	tests := []struct {
		name   string
		mutate func(*model.Cluster)
	}{
		{name: "empty name", mutate: func(c *model.Cluster) { c.Name = "" }},
		{name: "no location", mutate: func(c *model.Cluster) { c.Location = "" }},
		{name: "zero masters", mutate: func(c *model.Cluster) { c.MasterCount = 0 }},
		{name: "zero agents", mutate: func(c *model.Cluster) { c.AgentCount = 0 }},
		{name: "no vm size", mutate: func(c *model.Cluster) { c.VMSize = "" }},
		{name: "missing key", mutate: func(c *model.Cluster) { c.SSHPublicKey = nil }},
		{name: "garbage key", mutate: func(c *model.Cluster) { c.SSHPublicKey = []byte("not a key") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := testDescriptor(t)
			tt.mutate(desc)
			_, err := uc.Ensure(context.Background(), &EnsureInput{Cluster: desc})
			if !errors.Is(err, model.ErrClusterInvalid) {
				t.Fatalf("expected ErrClusterInvalid, got %v", err)
			}
		})
	}
}
