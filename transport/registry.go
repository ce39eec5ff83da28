// File: transport/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Named port driver registry. Drivers register a factory from init();
// the pipeline instantiates ports by driver name.

package transport

import (
	"fmt"
	"sync"

	"github.com/momentics/hioload-port/api"
)

// Factory constructs an uninitialized port instance for one driver.
type Factory func() api.Port

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Factory)
)

// Register makes a driver available under name. Registering the same
// name twice panics: driver names are compile-time constants and a
// collision is a programming error.
func Register(name string, factory Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if _, dup := drivers[name]; dup {
		panic(fmt.Sprintf("transport: duplicate driver %q", name))
	}
	drivers[name] = factory
}

// New returns a fresh, uninitialized port for the named driver.
func New(name string) (api.Port, error) {
	driversMu.RLock()
	factory, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", api.ErrDriverNotFound, name)
	}
	return factory(), nil
}

// Drivers lists the registered driver names in unspecified order.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	return names
}
