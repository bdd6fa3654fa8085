package berth

import "fmt"

// ServiceInfo contains diagnostic information about one identity.
type ServiceInfo struct {
	ID           ID       `json:"-"`
	Name         string   `json:"name"`
	FullName     string   `json:"full_name"`
	Type         string   `json:"type"`
	Registered   bool     `json:"registered"`
	Resolved     bool     `json:"resolved"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

// Inspect returns diagnostic information about id. Identities that only
// appear as a dependency are reported with Registered false.
func (c *Container) Inspect(id ID) ServiceInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info := ServiceInfo{
		ID:           id,
		Name:         id.String(),
		FullName:     id.FullName(),
		Type:         "unknown",
		Dependencies: []string{},
		Dependents:   []string{},
	}

	if id.typ != nil {
		info.Type = id.typ.String()
	}

	if e, ok := c.registry.get(id); ok {
		info.Registered = true
		for _, dep := range e.deps {
			info.Dependencies = append(info.Dependencies, dep.String())
		}
	}

	if instance, ok := c.instances[id]; ok {
		info.Resolved = true
		info.Type = typeName(instance)
	}

	for _, edge := range c.graph.Edges() {
		if edge.To == id {
			info.Dependents = append(info.Dependents, edge.From.String())
		}
	}

	return info
}

// ServiceQuery defines criteria for querying services.
type ServiceQuery struct {
	// Resolved filters by whether an instance is cached.
	// nil matches all services.
	Resolved *bool

	// DependsOn keeps services that declare this identity as a direct
	// dependency. The zero ID matches all services.
	DependsOn ID
}

// Query returns detailed information about registered services matching the
// query criteria, in registration order.
//
// Example:
//
//	resolved := true
//	results := berth.Query(c, berth.ServiceQuery{Resolved: &resolved})
func Query(c *Container, query ServiceQuery) []ServiceInfo {
	var results []ServiceInfo

	for _, id := range c.Services() {
		info := c.Inspect(id)

		// Filter by resolved status
		if query.Resolved != nil && info.Resolved != *query.Resolved {
			continue
		}

		// Filter by dependency
		if !query.DependsOn.IsZero() && !c.dependsOn(id, query.DependsOn) {
			continue
		}

		results = append(results, info)
	}

	return results
}

// FindResolved returns all services with a cached instance.
func FindResolved(c *Container) []ServiceInfo {
	resolved := true
	return Query(c, ServiceQuery{Resolved: &resolved})
}

// FindUnresolved returns all registered services without a cached instance.
func FindUnresolved(c *Container) []ServiceInfo {
	resolved := false
	return Query(c, ServiceQuery{Resolved: &resolved})
}

// FindDependents returns all services that directly depend on id.
func FindDependents(c *Container, id ID) []ServiceInfo {
	return Query(c, ServiceQuery{DependsOn: id})
}

// dependsOn reports whether id declares dep as a direct dependency.
// Identities are compared, not their string forms, which can collide.
func (c *Container) dependsOn(id, dep ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.registry.get(id)
	if !ok {
		return false
	}

	for _, declared := range e.deps {
		if declared == dep {
			return true
		}
	}

	return false
}

func typeName(instance any) string {
	return fmt.Sprintf("%T", instance)
}
