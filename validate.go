package berth

import (
	"fmt"

	"go.uber.org/multierr"
)

// FindingKind classifies a validation finding.
type FindingKind int

const (
	// KindMissingDependency marks a declared dependency without a factory.
	KindMissingDependency FindingKind = iota + 1

	// KindCyclicDependency marks a declared dependency that would close a cycle.
	KindCyclicDependency
)

// String returns the finding kind name.
func (k FindingKind) String() string {
	switch k {
	case KindMissingDependency:
		return "missing_dependency"
	case KindCyclicDependency:
		return "cyclic_dependency"
	default:
		return "unknown"
	}
}

// ValidationError is a single finding produced by Validate.
type ValidationError struct {
	Kind FindingKind

	// Service is the service that declared the offending dependency.
	Service ID

	// Dependency is the missing dependency, or the target of the rejected edge.
	Dependency ID

	// Path is the cycle starting and ending at Service, for cyclic findings.
	// A self dependency yields [Service, Service].
	Path []ID
}

// Error implements error.
func (e ValidationError) Error() string {
	switch e.Kind {
	case KindMissingDependency:
		return fmt.Sprintf("missing dependency: service '%s' depends on unregistered '%s'", e.Service, e.Dependency)
	case KindCyclicDependency:
		return "circular dependency: " + formatPath(e.Path)
	default:
		return fmt.Sprintf("invalid finding for service '%s'", e.Service)
	}
}

// Unwrap returns the sentinel matching the finding kind, so errors.Is works
// against ErrMissingDependencySentinel and ErrCircularDependencySentinel.
func (e ValidationError) Unwrap() error {
	switch e.Kind {
	case KindMissingDependency:
		return ErrMissingDependencySentinel
	case KindCyclicDependency:
		return ErrCircularDependencySentinel
	default:
		return nil
	}
}

// Validate reports every declared dependency without a registered factory
// and every dependency rejected because it would have closed a cycle.
// It does not modify the container and does not prevent resolution.
//
// Missing dependencies come first, in registration order; cycles follow in
// the order they were rejected.
func (c *Container) Validate() []ValidationError {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var findings []ValidationError

	for _, id := range c.registry.ids() {
		e, _ := c.registry.get(id)
		seen := make(map[ID]struct{}, len(e.deps))

		for _, dep := range e.deps {
			if _, dup := seen[dep]; dup {
				continue
			}

			seen[dep] = struct{}{}

			if !c.registry.has(dep) {
				findings = append(findings, ValidationError{
					Kind:       KindMissingDependency,
					Service:    id,
					Dependency: dep,
				})
			}
		}
	}

	for _, edge := range c.registry.rejected {
		findings = append(findings, ValidationError{
			Kind:       KindCyclicDependency,
			Service:    edge.from,
			Dependency: edge.to,
			Path:       c.cyclePath(edge.from, edge.to),
		})
	}

	return findings
}

// Check runs Validate and combines the findings into a single error, or
// returns nil when the container is consistent.
func (c *Container) Check() error {
	var err error

	for _, finding := range c.Validate() {
		err = multierr.Append(err, finding)
	}

	return err
}

// cyclePath rebuilds the cycle closed by the rejected edge from -> to: the
// edge itself, then existing edges from to back to from.
func (c *Container) cyclePath(from, to ID) []ID {
	back := c.graph.Path(to, from)
	if back == nil {
		return []ID{from, to}
	}

	path := make([]ID, 0, len(back)+1)
	path = append(path, from)

	return append(path, back...)
}
