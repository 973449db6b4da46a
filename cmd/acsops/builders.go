package main

import (
	"fmt"

	"github.com/spf13/cobra"

	providerdrv "github.com/acsops/acsops/adapters/drivers/provider"
	"github.com/acsops/acsops/adapters/store/inmem"
	"github.com/acsops/acsops/adapters/store/rdb"
	"github.com/acsops/acsops/domain"
	"github.com/acsops/acsops/models/cfgops"
	"github.com/acsops/acsops/usecase/cluster"
	"github.com/acsops/acsops/usecase/deploy"
)

// loadConfig resolves the -f flag and loads acsops.yml.
func loadConfig(file string) (*cfgops.Root, error) {
	if file == "" {
		file = cfgops.DefaultConfigPath
	}
	return cfgops.Load(file)
}

// buildClusterUseCase instantiates the provider driver and wires the
// cluster use case around it.
func buildClusterUseCase(cfg *cfgops.Root) (*cluster.UseCase, error) {
	driver := cfg.Provider.Driver
	if driver == "" {
		driver = "acs"
	}
	drv, err := providerdrv.New(driver, cfg.Provider.Settings)
	if err != nil {
		return nil, err
	}
	return &cluster.UseCase{Port: drv}, nil
}

// buildRepos opens the deployment history store selected by --db-url.
// "memory:" keeps history in-process only.
func buildRepos(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL, _ := cmd.Flags().GetString("db-url")
	if dbURL == "" || dbURL == "memory:" {
		return &domain.Repositories{Deployment: inmem.NewDeploymentRepository()}, nil
	}
	db, err := rdb.OpenFromURL(dbURL)
	if err != nil {
		return nil, err
	}
	if err := rdb.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &domain.Repositories{Deployment: rdb.NewDeploymentRepository(db)}, nil
}

// buildDeployUseCase assembles the full deploy workflow from configuration.
func buildDeployUseCase(cmd *cobra.Command, cfg *cfgops.Root) (*deploy.UseCase, error) {
	if cfg.Cluster.SSHKey == "" {
		return nil, fmt.Errorf("cluster.sshKey is required for deploy")
	}
	clusterUC, err := buildClusterUseCase(cfg)
	if err != nil {
		return nil, err
	}
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.PollInterval()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.PollTimeout()
	if err != nil {
		return nil, err
	}
	return &deploy.UseCase{
		Cluster: clusterUC,
		Repos:   repos,
		Options: deploy.Options{
			KeyPath:      cfg.Cluster.SSHKey,
			LocalPort:    cfg.Deploy.LocalPort,
			PollInterval: interval,
			PollTimeout:  timeout,
		},
	}, nil
}
