package services

import "fmt"

// ServiceState describes where a service is in its lifecycle.
type ServiceState string

const (
	// StateUnknown means the service has no definition.
	StateUnknown ServiceState = "unknown"
	// StateDefined means the service is defined but not instantiated.
	StateDefined ServiceState = "defined"
	// StateActive means the service has a cached instance.
	StateActive ServiceState = "active"
	// StateDisabled means the service was disabled.
	StateDisabled ServiceState = "disabled"
)

// ServiceInfo contains diagnostic information about a service.
type ServiceInfo struct {
	Name         string       `json:"name"`
	State        ServiceState `json:"state"`
	Type         string       `json:"type,omitempty"`
	Manipulators int          `json:"manipulators"`
	Destructible bool         `json:"destructible"`
	Salvageable  bool         `json:"salvageable"`
}

// Inspect returns diagnostic information about a service. It never
// constructs the service.
func (c *Container) Inspect(name string) ServiceInfo {
	if _, exists := c.definitions[name]; !exists {
		return ServiceInfo{Name: name, State: StateUnknown}
	}

	info := ServiceInfo{
		Name:         name,
		State:        c.state(name),
		Manipulators: len(c.manipulators[name]),
	}

	if instance, ok := c.instances[name]; ok {
		info.Type = typeName(instance)
		_, info.Destructible = instance.(Destructible)
		_, info.Salvageable = instance.(Salvageable)
	}

	return info
}

// state returns the lifecycle state of a defined service.
func (c *Container) state(name string) ServiceState {
	if _, disabled := c.disabled[name]; disabled {
		return StateDisabled
	}

	if _, active := c.instances[name]; active {
		return StateActive
	}

	return StateDefined
}

// ServiceQuery defines criteria for querying services.
type ServiceQuery struct {
	// State filters by lifecycle state.
	// Empty string matches all states.
	State ServiceState

	// Destructible filters by whether the instance supports cleanup.
	// nil matches all services.
	Destructible *bool
}

// Query returns information about services matching the query criteria, in
// definition order.
//
// Example:
//
//	active := services.Query(c, services.ServiceQuery{State: services.StateActive})
func Query(c *Container, query ServiceQuery) []ServiceInfo {
	var results []ServiceInfo

	for _, name := range c.ServiceNames() {
		info := c.Inspect(name)

		if query.State != "" && info.State != query.State {
			continue
		}

		if query.Destructible != nil && info.Destructible != *query.Destructible {
			continue
		}

		results = append(results, info)
	}

	return results
}

// QueryNames returns the names of services matching the query criteria.
func QueryNames(c *Container, query ServiceQuery) []string {
	results := Query(c, query)
	names := make([]string, len(results))
	for i, info := range results {
		names[i] = info.Name
	}
	return names
}

// FindActive returns all services that have a cached instance.
func FindActive(c *Container) []ServiceInfo {
	return Query(c, ServiceQuery{State: StateActive})
}

// FindDisabled returns all disabled services.
func FindDisabled(c *Container) []ServiceInfo {
	return Query(c, ServiceQuery{State: StateDisabled})
}

// typeName returns the dynamic type of v for diagnostics.
func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
