package acs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// The containerServices operations were dropped from the track-2
// armcontainerservice module, so this client drives the ARM REST surface
// directly through the azcore pipeline, in the shape of a generated client.
const (
	clientName    = "acs.containerServicesClient"
	moduleVersion = "v0.1.0"
	apiVersion    = "2017-07-01"
)

// containerServicesClient performs ARM operations on
// Microsoft.ContainerService/containerServices resources.
type containerServicesClient struct {
	internal       *arm.Client
	subscriptionID string
}

func newContainerServicesClient(subscriptionID string, credential azcore.TokenCredential, options *arm.ClientOptions) (*containerServicesClient, error) {
	cl, err := arm.NewClient(clientName, moduleVersion, credential, options)
	if err != nil {
		return nil, err
	}
	return &containerServicesClient{internal: cl, subscriptionID: subscriptionID}, nil
}

func (c *containerServicesClient) resourcePath(resourceGroupName, name string) string {
	return fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ContainerService/containerServices/%s",
		url.PathEscape(c.subscriptionID), url.PathEscape(resourceGroupName), url.PathEscape(name))
}

// Get fetches the container service resource.
func (c *containerServicesClient) Get(ctx context.Context, resourceGroupName, name string) (ContainerService, error) {
	req, err := runtime.NewRequest(ctx, http.MethodGet, runtime.JoinPaths(c.internal.Endpoint(), c.resourcePath(resourceGroupName, name)))
	if err != nil {
		return ContainerService{}, err
	}
	reqQP := req.Raw().URL.Query()
	reqQP.Set("api-version", apiVersion)
	req.Raw().URL.RawQuery = reqQP.Encode()
	req.Raw().Header["Accept"] = []string{"application/json"}

	resp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return ContainerService{}, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return ContainerService{}, runtime.NewResponseError(resp)
	}
	var out ContainerService
	if err := runtime.UnmarshalAsJSON(resp, &out); err != nil {
		return ContainerService{}, err
	}
	return out, nil
}

// BeginCreateOrUpdate starts creation of the container service resource and
// returns a poller for the long-running ARM operation.
func (c *containerServicesClient) BeginCreateOrUpdate(ctx context.Context, resourceGroupName, name string, parameters ContainerService) (*runtime.Poller[ContainerService], error) {
	req, err := runtime.NewRequest(ctx, http.MethodPut, runtime.JoinPaths(c.internal.Endpoint(), c.resourcePath(resourceGroupName, name)))
	if err != nil {
		return nil, err
	}
	reqQP := req.Raw().URL.Query()
	reqQP.Set("api-version", apiVersion)
	req.Raw().URL.RawQuery = reqQP.Encode()
	req.Raw().Header["Accept"] = []string{"application/json"}
	if err := runtime.MarshalAsJSON(req, parameters); err != nil {
		return nil, err
	}

	resp, err := c.internal.Pipeline().Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated, http.StatusAccepted) {
		return nil, runtime.NewResponseError(resp)
	}
	return runtime.NewPoller[ContainerService](resp, c.internal.Pipeline(), nil)
}
