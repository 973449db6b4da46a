package providerdrv

import (
	"fmt"

	"github.com/acsops/acsops/domain/model"
)

// Driver abstracts provider-specific cloud behavior. Implementations live
// under adapters/drivers/provider/<name> and register themselves from init().
type Driver interface {
	// ID returns the provider identifier (e.g., "acs").
	ID() string

	// ContainerServicePort gives the cluster lookup/creation operations.
	model.ContainerServicePort
}

// driverFactory is a constructor function for a provider driver.
type driverFactory func(settings map[string]string) (Driver, error)

// registry holds registered drivers by name.
var registry = map[string]driverFactory{}

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory driverFactory) {
	registry[name] = factory
}

// New instantiates the named driver with provider settings.
func New(name string, settings map[string]string) (Driver, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider driver: %s", name)
	}
	return factory(settings)
}
