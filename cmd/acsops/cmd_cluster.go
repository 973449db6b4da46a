package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acsops/acsops/models/cfgops"
	"github.com/acsops/acsops/usecase/cluster"
)

// newCmdCluster returns the parent command for cluster-related operations.
func newCmdCluster() *cobra.Command {
	c := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdClusterProvision())
	c.AddCommand(newCmdClusterSSH())
	return c
}

// newCmdClusterProvision ensures the configured cluster exists remotely.
func newCmdClusterProvision() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the container service cluster if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(file)
			if err != nil {
				return err
			}
			desc, err := cfg.ToCluster()
			if err != nil {
				return err
			}
			uc, err := buildClusterUseCase(cfg)
			if err != nil {
				return err
			}
			out, err := uc.Ensure(cmd.Context(), &cluster.EnsureInput{Cluster: desc})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cluster %s master %s (dns prefix %s)\n",
				desc.Name, out.Cluster.MasterFQDN, out.Cluster.DNSPrefix)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", cfgops.DefaultConfigPath, "Path to acsops.yml")
	return cmd
}

// newCmdClusterSSH opens an interactive shell on the cluster master.
func newCmdClusterSSH() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Open an interactive SSH session to the cluster master",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(file)
			if err != nil {
				return err
			}
			if cfg.Cluster.SSHKey == "" {
				return fmt.Errorf("cluster.sshKey is required for ssh")
			}
			desc, err := cfg.ToCluster()
			if err != nil {
				return err
			}
			uc, err := buildClusterUseCase(cfg)
			if err != nil {
				return err
			}
			return uc.Shell(cmd.Context(), &cluster.ShellInput{
				Cluster: desc,
				KeyPath: cfg.Cluster.SSHKey,
				SSHPort: "2200",
				Stdin:   cmd.InOrStdin(),
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", cfgops.DefaultConfigPath, "Path to acsops.yml")
	return cmd
}
