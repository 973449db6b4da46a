// Package acs implements the Azure Container Service provider driver. It
// drives the classic Microsoft.ContainerService/containerServices resource
// type, whose clusters expose an orchestrator management endpoint on the
// master (Marathon for DCOS).
package acs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	providerdrv "github.com/acsops/acsops/adapters/drivers/provider"
	"github.com/acsops/acsops/domain/model"
	"github.com/acsops/acsops/internal/logging"
)

const provisionTimeout = 30 * time.Minute

// driver implements the ACS provider driver.
type driver struct {
	client        *containerServicesClient
	resourceGroup string
	location      string
}

// ID returns the provider identifier.
func (d *driver) ID() string { return "acs" }

// init registers the ACS driver.
func init() {
	providerdrv.Register("acs", func(settings map[string]string) (providerdrv.Driver, error) {
		get := func(k string) string {
			if settings == nil {
				return ""
			}
			return strings.TrimSpace(settings[k])
		}

		subscriptionID := get("AZURE_SUBSCRIPTION_ID")
		resourceGroup := get("AZURE_RESOURCE_GROUP_NAME")
		location := get("AZURE_LOCATION")
		missing := make([]string, 0, 3)
		if subscriptionID == "" {
			missing = append(missing, "AZURE_SUBSCRIPTION_ID")
		}
		if resourceGroup == "" {
			missing = append(missing, "AZURE_RESOURCE_GROUP_NAME")
		}
		if location == "" {
			missing = append(missing, "AZURE_LOCATION")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required ACS settings: %s", strings.Join(missing, ", "))
		}

		cred, err := newCredential(get)
		if err != nil {
			return nil, err
		}

		client, err := newContainerServicesClient(subscriptionID, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("create container services client: %w", err)
		}

		return &driver{
			client:        client,
			resourceGroup: resourceGroup,
			location:      location,
		}, nil
	})
}

// newCredential builds an azidentity credential from provider settings.
func newCredential(get func(string) string) (azcore.TokenCredential, error) {
	authMethod := get("AZURE_AUTH_METHOD")
	var cred azcore.TokenCredential
	var err error
	switch authMethod {
	case "client_secret":
		tenantID := get("AZURE_TENANT_ID")
		clientID := get("AZURE_CLIENT_ID")
		clientSecret := get("AZURE_CLIENT_SECRET")
		if tenantID == "" || clientID == "" || clientSecret == "" {
			return nil, fmt.Errorf("client_secret auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET")
		}
		cred, err = azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	case "managed_identity":
		clientID := get("AZURE_CLIENT_ID")
		opts := &azidentity.ManagedIdentityCredentialOptions{}
		if clientID != "" {
			opts.ID = azidentity.ClientID(clientID)
		}
		cred, err = azidentity.NewManagedIdentityCredential(opts)
	case "azure_cli":
		cred, err = azidentity.NewAzureCLICredential(nil)
	case "", "default":
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	default:
		return nil, fmt.Errorf("unsupported AZURE_AUTH_METHOD: %s", authMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return cred, nil
}

// Get fetches an existing container service by name within the configured
// resource group. An ARM 404 maps to model.ErrClusterNotFound.
func (d *driver) Get(ctx context.Context, name string) (*model.ProvisionedCluster, error) {
	cs, err := d.client.Get(ctx, d.resourceGroup, name)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == 404 {
			return nil, fmt.Errorf("container service %s: %w", name, model.ErrClusterNotFound)
		}
		return nil, fmt.Errorf("get container service %s: %w", name, err)
	}
	return toProvisioned(&cs)
}

// Create submits a container service creation request and blocks until the
// ARM operation completes.
func (d *driver) Create(ctx context.Context, spec *model.ContainerServiceSpec) (*model.ProvisionedCluster, error) {
	ctx, cancel := context.WithTimeout(ctx, provisionTimeout)
	defer cancel()

	log := logging.FromContext(ctx)
	log.Info(ctx, "creating container service",
		"name", spec.Name,
		"resource_group", d.resourceGroup,
		"location", d.location,
		"orchestrator", string(spec.OrchestratorType),
	)

	poller, err := d.client.BeginCreateOrUpdate(ctx, d.resourceGroup, spec.Name, toResource(spec, d.location))
	if err != nil {
		return nil, fmt.Errorf("begin container service creation: %w", err)
	}
	cs, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create container service %s: %w", spec.Name, err)
	}
	return toProvisioned(&cs)
}

// toResource translates a domain creation spec into the ARM resource.
func toResource(spec *model.ContainerServiceSpec, location string) ContainerService {
	if spec.Location != "" {
		location = spec.Location
	}
	pools := make([]*AgentPoolProfile, 0, len(spec.AgentPoolProfiles))
	for _, p := range spec.AgentPoolProfiles {
		pools = append(pools, &AgentPoolProfile{
			Name:      to.Ptr(p.Name),
			Count:     to.Ptr(int32(p.Count)),
			VMSize:    to.Ptr(p.VMSize),
			DNSPrefix: to.Ptr(p.DNSPrefix),
		})
	}
	keys := make([]*SSHPublicKey, 0, len(spec.LinuxProfile.SSHPublicKeys))
	for _, k := range spec.LinuxProfile.SSHPublicKeys {
		keys = append(keys, &SSHPublicKey{KeyData: to.Ptr(k)})
	}
	return ContainerService{
		Location: to.Ptr(location),
		Properties: &ContainerServiceProperties{
			OrchestratorProfile: &OrchestratorProfile{
				OrchestratorType: to.Ptr(string(spec.OrchestratorType)),
			},
			MasterProfile: &MasterProfile{
				Count:     to.Ptr(int32(spec.MasterProfile.Count)),
				DNSPrefix: to.Ptr(spec.MasterProfile.DNSPrefix),
			},
			AgentPoolProfiles: pools,
			LinuxProfile: &LinuxProfile{
				AdminUsername: to.Ptr(spec.LinuxProfile.AdminUser),
				SSH:           &SSHConfiguration{PublicKeys: keys},
			},
		},
	}
}

// toProvisioned extracts the caller-facing fields from an ARM resource.
func toProvisioned(cs *ContainerService) (*model.ProvisionedCluster, error) {
	if cs.Properties == nil || cs.Properties.MasterProfile == nil {
		return nil, fmt.Errorf("container service response missing master profile")
	}
	mp := cs.Properties.MasterProfile
	out := &model.ProvisionedCluster{}
	if cs.ID != nil {
		out.ID = *cs.ID
	}
	if mp.FQDN != nil {
		out.MasterFQDN = *mp.FQDN
	}
	if mp.DNSPrefix != nil {
		out.DNSPrefix = *mp.DNSPrefix
	}
	return out, nil
}
