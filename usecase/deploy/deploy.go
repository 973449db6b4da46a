package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acsops/acsops/adapters/marathon"
	"github.com/acsops/acsops/domain/model"
	"github.com/acsops/acsops/internal/logging"
	"github.com/acsops/acsops/internal/sshtunnel"
	"github.com/acsops/acsops/usecase/cluster"
)

// DeployInput describes one deployment: the target cluster, the image to
// run, and an optional private registry reference.
type DeployInput struct {
	Cluster  *model.Cluster
	Image    string
	Registry *model.RegistryReference

	// App overrides the Marathon request defaults.
	App marathon.AppOptions
}

// DeployOutput is the terminal result of a deploy attempt. When Outcome is
// OutcomeTunnelFailed, ManualTunnelCommand holds the ssh command line the
// operator can run to establish the forward by hand.
type DeployOutput struct {
	Outcome             model.DeploymentOutcome
	Cluster             *model.ProvisionedCluster
	AppID               string
	ManualTunnelCommand string
}

// Deploy runs the full workflow: ensure the cluster exists, open a tunnel
// to the master management endpoint, submit the app request, poll until no
// deployment is pending, then tear the tunnel down. The tunnel is released
// on every exit path. A tunnel establishment failure is the one outcome
// reported without an error; everything else fails fast.
func (u *UseCase) Deploy(ctx context.Context, in *DeployInput) (*DeployOutput, error) {
	if in == nil || in.Cluster == nil || in.Image == "" {
		return nil, fmt.Errorf("deploy: cluster and image are required")
	}
	log := logging.FromContext(ctx)
	startedAt := time.Now()
	appID := marathon.AppID(in.Image)

	ensured, err := u.Cluster.Ensure(ctx, &cluster.EnsureInput{Cluster: in.Cluster})
	if err != nil {
		u.record(ctx, in, appID, "", startedAt, err)
		return nil, err
	}
	pc := ensured.Cluster

	spec := sshtunnel.Spec{
		RemoteHost: DefaultRemoteHost,
		RemotePort: u.Options.remotePort(),
		LocalHost:  u.Options.localHost(),
		LocalPort:  u.Options.localPort(),
		SSHUser:    cluster.AdminUser(in.Cluster),
		SSHHost:    pc.MasterFQDN,
		SSHPort:    u.Options.sshPort(),
		KeyPath:    u.Options.KeyPath,
	}
	tun, err := u.openTunnel(ctx, spec)
	if err != nil {
		var terr *sshtunnel.Error
		if errors.As(err, &terr) {
			log.Error(ctx, "opening ssh tunnel failed", "err", terr.Err)
			log.Infof(ctx, "try the following command in a terminal: %s", terr.ManualCommand())
			u.record(ctx, in, appID, model.OutcomeTunnelFailed, startedAt, terr)
			return &DeployOutput{
				Outcome:             model.OutcomeTunnelFailed,
				Cluster:             pc,
				AppID:               appID,
				ManualTunnelCommand: terr.ManualCommand(),
			}, nil
		}
		u.record(ctx, in, appID, "", startedAt, err)
		return nil, err
	}
	defer tun.Close()

	m := u.newMarathon("http://" + tun.LocalAddr())
	log.Info(ctx, "submitting deployment", "image", in.Image, "app_id", appID)
	resp, err := m.CreateApp(ctx, marathon.NewApp(in.Image, in.Registry, in.App))
	if err != nil {
		err = fmt.Errorf("submit deployment: %w", err)
		u.record(ctx, in, appID, "", startedAt, err)
		return nil, err
	}
	log.Info(ctx, "deployment request accepted", "app_id", resp.ID, "deployments", len(resp.Deployments))

	if err := u.waitSettled(ctx, m); err != nil {
		u.record(ctx, in, appID, "", startedAt, err)
		return nil, err
	}

	log.Info(ctx, "deployment finished", "app_id", appID, "elapsed", time.Since(startedAt).Seconds())
	u.record(ctx, in, appID, model.OutcomeSucceeded, startedAt, nil)
	return &DeployOutput{Outcome: model.OutcomeSucceeded, Cluster: pc, AppID: appID}, nil
}

// waitSettled polls the deployments resource until it reports empty,
// waiting the configured interval between polls. Each iteration observes
// ctx cancellation; when a poll timeout is configured its expiry is
// reported as ErrDeployNotSettled.
func (u *UseCase) waitSettled(ctx context.Context, m MarathonAPI) error {
	log := logging.FromContext(ctx)
	interval := u.Options.pollInterval()

	pollCtx := ctx
	if u.Options.PollTimeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, u.Options.PollTimeout)
		defer cancel()
	}

	for {
		refs, err := m.Deployments(pollCtx)
		if err != nil {
			return fmt.Errorf("poll deployments: %w", err)
		}
		if len(refs) == 0 {
			return nil
		}
		log.Info(ctx, "waiting for deployment to finish", "pending", len(refs), "interval", interval.String())
		select {
		case <-pollCtx.Done():
			if errors.Is(pollCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				return fmt.Errorf("%w (after %s)", ErrDeployNotSettled, u.Options.PollTimeout)
			}
			return pollCtx.Err()
		case <-time.After(interval):
		}
	}
}

// record persists a history entry when a repository is wired. Best effort;
// a persistence failure never fails the workflow.
func (u *UseCase) record(ctx context.Context, in *DeployInput, appID string, outcome model.DeploymentOutcome, startedAt time.Time, cause error) {
	if u.Repos == nil || u.Repos.Deployment == nil {
		return
	}
	d := &model.Deployment{
		ClusterName: in.Cluster.Name,
		Image:       in.Image,
		AppID:       appID,
		Outcome:     outcome,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
	}
	if cause != nil {
		d.Error = cause.Error()
	}
	if err := u.Repos.Deployment.Create(ctx, d); err != nil {
		logging.FromContext(ctx).Warn(ctx, "failed to record deployment", "err", err)
	}
}
