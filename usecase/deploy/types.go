package deploy

import (
	"context"
	"errors"
	"time"

	"github.com/acsops/acsops/adapters/marathon"
	"github.com/acsops/acsops/domain"
	"github.com/acsops/acsops/internal/sshtunnel"
	"github.com/acsops/acsops/usecase/cluster"
)

// ErrDeployNotSettled is returned when pending deployments remain after
// the configured poll timeout.
var ErrDeployNotSettled = errors.New("deployment did not settle before timeout")

// Defaults for the deploy workflow.
const (
	DefaultLocalHost    = "127.0.0.1"
	DefaultLocalPort    = 8001
	DefaultRemoteHost   = "127.0.0.1"
	DefaultRemotePort   = 80
	DefaultSSHPort      = 2200
	DefaultPollInterval = 5 * time.Second
	DefaultPollTimeout  = 30 * time.Minute
)

// MarathonAPI is the subset of the Marathon client used by the workflow.
type MarathonAPI interface {
	CreateApp(ctx context.Context, app *marathon.App) (*marathon.CreateAppResponse, error)
	Deployments(ctx context.Context) ([]marathon.DeploymentRef, error)
}

// Tunnel is an open forward to the master management endpoint.
type Tunnel interface {
	LocalAddr() string
	Close() error
}

// Options configures the deploy workflow. Zero values select the defaults
// above, except PollTimeout where zero means no deadline.
type Options struct {
	// KeyPath is the SSH private key for the tunnel. Explicit
	// configuration, never read from ambient environment state here.
	KeyPath string

	LocalHost  string
	LocalPort  int
	RemotePort int
	SSHPort    int

	// PollInterval is the wait between deployment polls.
	PollInterval time.Duration
	// PollTimeout bounds the whole polling phase; 0 disables the bound.
	PollTimeout time.Duration
}

// UseCase wires collaborators for the deploy workflow. Cluster owns the
// provisioning cache; OpenTunnel and NewMarathon default to the real
// implementations and exist as seams for tests.
type UseCase struct {
	Cluster *cluster.UseCase
	Repos   *domain.Repositories
	Options Options

	OpenTunnel  func(ctx context.Context, spec sshtunnel.Spec) (Tunnel, error)
	NewMarathon func(baseURL string) MarathonAPI
}

func (u *UseCase) openTunnel(ctx context.Context, spec sshtunnel.Spec) (Tunnel, error) {
	if u.OpenTunnel != nil {
		return u.OpenTunnel(ctx, spec)
	}
	return sshtunnel.Open(ctx, spec)
}

func (u *UseCase) newMarathon(baseURL string) MarathonAPI {
	if u.NewMarathon != nil {
		return u.NewMarathon(baseURL)
	}
	return marathon.NewClient(baseURL, nil)
}

func (o Options) localHost() string {
	if o.LocalHost != "" {
		return o.LocalHost
	}
	return DefaultLocalHost
}

func (o Options) localPort() int {
	if o.LocalPort != 0 {
		return o.LocalPort
	}
	return DefaultLocalPort
}

func (o Options) remotePort() int {
	if o.RemotePort != 0 {
		return o.RemotePort
	}
	return DefaultRemotePort
}

func (o Options) sshPort() int {
	if o.SSHPort != 0 {
		return o.SSHPort
	}
	return DefaultSSHPort
}

func (o Options) pollInterval() time.Duration {
	if o.PollInterval > 0 {
		return o.PollInterval
	}
	return DefaultPollInterval
}
