package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acsops/acsops/adapters/marathon"
	"github.com/acsops/acsops/domain/model"
	"github.com/acsops/acsops/models/cfgops"
	"github.com/acsops/acsops/usecase/deploy"
)

// newCmdDeploy runs the full provision-tunnel-deploy workflow.
func newCmdDeploy() *cobra.Command {
	var file string
	var image string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the cluster and deploy the configured app",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(file)
			if err != nil {
				return err
			}
			if image == "" {
				image = cfg.App.Image
			}
			if image == "" {
				return fmt.Errorf("app.image (or --image) is required")
			}
			desc, err := cfg.ToCluster()
			if err != nil {
				return err
			}
			uc, err := buildDeployUseCase(cmd, cfg)
			if err != nil {
				return err
			}

			out, err := uc.Deploy(cmd.Context(), &deploy.DeployInput{
				Cluster:  desc,
				Image:    image,
				Registry: cfg.ToRegistry(),
				App:      appOptions(cfg),
			})
			if err != nil {
				return err
			}
			if out.Outcome == model.OutcomeTunnelFailed {
				return fmt.Errorf("ssh tunnel failed; try: %s", out.ManualTunnelCommand)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deployed %s as %s to cluster %s\n", image, out.AppID, desc.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", cfgops.DefaultConfigPath, "Path to acsops.yml")
	cmd.Flags().StringVar(&image, "image", "", "Container image reference (default from config)")
	return cmd
}

// appOptions maps the config app section onto request overrides.
func appOptions(cfg *cfgops.Root) marathon.AppOptions {
	opts := marathon.AppOptions{
		Instances:             cfg.App.Instances,
		CPUs:                  cfg.App.CPUs,
		MemoryMB:              cfg.App.MemoryMB,
		AcceptedResourceRoles: cfg.App.ResourceRoles,
	}
	if cfg.App.HostPort != 0 || cfg.App.ContainerPort != 0 || cfg.App.Protocol != "" {
		pm := marathon.PortMapping{
			HostPort:      cfg.App.HostPort,
			ContainerPort: cfg.App.ContainerPort,
			Protocol:      cfg.App.Protocol,
		}
		if pm.HostPort == 0 {
			pm.HostPort = marathon.DefaultHostPort
		}
		if pm.ContainerPort == 0 {
			pm.ContainerPort = marathon.DefaultContainerPort
		}
		if pm.Protocol == "" {
			pm.Protocol = marathon.DefaultProtocol
		}
		opts.PortMapping = &pm
	}
	return opts
}
