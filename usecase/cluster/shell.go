package cluster

import (
	"context"
	"io"
	"os/exec"

	"github.com/acsops/acsops/domain/model"
	"github.com/acsops/acsops/internal/logging"
)

// ShellInput describes an interactive SSH session to the cluster master.
// This shell is separate from the deploy workflow's management tunnel.
type ShellInput struct {
	Cluster *model.Cluster

	// KeyPath is the private key used for authentication. Explicit
	// configuration; never derived from ambient environment state here.
	KeyPath string

	// SSHPort is the master SSH port (the container service exposes 2200).
	SSHPort string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Shell ensures the cluster exists, then runs the system ssh client as a
// scoped subprocess connected to the master. The process is killed when
// ctx is cancelled, so the session cannot outlive its caller.
func (u *UseCase) Shell(ctx context.Context, in *ShellInput) error {
	out, err := u.Ensure(ctx, &EnsureInput{Cluster: in.Cluster})
	if err != nil {
		return err
	}
	login := MasterLogin(in.Cluster, out.Cluster)

	args := []string{"-i", in.KeyPath, "-p", in.SSHPort, login}
	logging.FromContext(ctx).Info(ctx, "connecting to cluster master", "command", "ssh", "args", args)

	cmd := exec.CommandContext(ctx, "ssh", args...)
	cmd.Stdin = in.Stdin
	cmd.Stdout = in.Stdout
	cmd.Stderr = in.Stderr
	return cmd.Run()
}
