package berth

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Resolver is handed to every factory.
//
// Factories that resolve further services must go through the Resolver
// rather than the Container: it knows which services the current resolution
// is building and reports re-entry as a circular dependency instead of
// blocking on a creation lock the same call stack already holds.
type Resolver interface {
	// Env returns the ambient env.
	Env() *Env

	// Resolve returns the instance of id, or false if it cannot be built.
	Resolve(id ID) (any, bool)

	// ResolveStrict is Resolve with the reason for absence.
	ResolveStrict(id ID) (any, error)
}

// Resolve returns the singleton instance of id, creating it and its
// transitive dependencies on first use.
//
// It reports false, and never panics, when the env is not attached, id or
// one of its dependencies is not registered, a dependency is cyclic, or a
// factory fails. Use Validate to surface wiring problems up front and
// ResolveStrict to learn why a resolution came back empty.
//
// Factories must not call Resolve on the container itself: a factory that
// resolves its own identity, or a service that depends on it, through the
// container blocks on the creation slot its caller holds. Use the Resolver
// passed to the factory, which reports re-entry as a circular dependency.
func (c *Container) Resolve(id ID) (any, bool) {
	instance, err := c.ResolveStrict(id)

	return instance, err == nil
}

// ResolveStrict is Resolve with an error describing the absence:
// ErrEnvNotAttached, ErrServiceNotFound, ErrMissingDependency,
// ErrCircularDependency or a service error wrapping the factory failure.
func (c *Container) ResolveStrict(id ID) (any, error) {
	return c.resolveChain(&chain{}, id)
}

func (c *Container) resolveChain(ch *chain, id ID) (any, error) {
	c.mu.RLock()
	hooks := c.hooks
	c.mu.RUnlock()

	if err := hooks.beforeResolve(id); err != nil {
		return nil, err
	}

	start := time.Now()
	instance, err := c.resolve(ch, id)
	hooks.afterResolve(id, instance, err, time.Since(start))

	return instance, err
}

func (c *Container) resolve(ch *chain, id ID) (any, error) {
	cached, order, env, err := c.plan(id)
	if err != nil {
		return nil, err
	}

	if order == nil {
		return cached, nil
	}

	resolved := make(map[ID]any, len(order))

	for _, member := range order {
		instance, err := c.instantiate(ch, member, env, resolved)
		if err != nil {
			return nil, err
		}

		resolved[member] = instance
	}

	return resolved[id], nil
}

// plan returns the cached instance of id, or the dependencies-first order in
// which its closure must be instantiated.
func (c *Container) plan(id ID) (any, []ID, *Env, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.env == nil {
		return nil, nil, nil, ErrEnvNotAttached
	}

	if instance, ok := c.instances[id]; ok {
		return instance, nil, c.env, nil
	}

	if !c.registry.has(id) {
		return nil, nil, nil, ErrServiceNotFound(id)
	}

	closure := c.graph.closureUntil(id, func(member ID) bool {
		_, cached := c.instances[member]

		return cached
	})

	inClosure := make(map[ID]struct{}, len(closure))
	for _, member := range closure {
		inClosure[member] = struct{}{}
	}

	for _, member := range closure {
		if _, cached := c.instances[member]; cached {
			continue
		}

		e, ok := c.registry.get(member)
		if !ok {
			// Reported through the member that declared it.
			continue
		}

		for _, dep := range e.deps {
			if !c.registry.has(dep) {
				return nil, nil, nil, ErrMissingDependency(member, dep)
			}

			// A rejected edge may still point inside the closure through
			// another path, so both checks are needed.
			if _, ok := inClosure[dep]; !ok || c.registry.isRejected(member, dep) {
				return nil, nil, nil, ErrCircularDependency(c.cyclePath(member, dep))
			}
		}
	}

	order, err := c.graph.TopologicalOrder(closure)
	if err != nil {
		return nil, nil, nil, err
	}

	return nil, order, c.env, nil
}

// instantiate returns the instance of id, invoking its factory under the
// creation slot of id when it is not cached yet.
func (c *Container) instantiate(ch *chain, id ID, env *Env, resolved map[ID]any) (any, error) {
	if cycle, ok := ch.enter(id); !ok {
		return nil, ErrCircularDependency(cycle)
	}
	defer ch.leave(id)

	slot := c.slot(id)
	slot.Lock()
	defer slot.Unlock()

	c.mu.RLock()
	instance, cached := c.instances[id]
	e, registered := c.registry.get(id)
	hooks := c.hooks
	c.mu.RUnlock()

	if cached {
		return instance, nil
	}

	if !registered {
		return nil, ErrServiceNotFound(id)
	}

	args := make(Deps, len(e.deps))

	for i, dep := range e.deps {
		value, ok := resolved[dep]
		if !ok {
			c.mu.RLock()
			value, ok = c.instances[dep]
			c.mu.RUnlock()
		}

		if !ok {
			return nil, ErrMissingDependency(id, dep)
		}

		args[i] = value
	}

	if err := hooks.beforeCreate(id); err != nil {
		return nil, err
	}

	c.logger.Debug("invoking factory", zap.Stringer("service", id))

	start := time.Now()
	instance, err := e.factory(&chainResolver{c: c, chain: ch, env: env}, args)
	if err == nil && instance == nil {
		err = ErrNilInstance
	}
	hooks.afterCreate(id, instance, err, time.Since(start))

	if err != nil {
		c.logger.Warn("factory failed", zap.Stringer("service", id), zap.Error(err))

		return nil, NewServiceError(id, "create", err)
	}

	c.mu.Lock()
	c.instances[id] = instance
	c.mu.Unlock()

	return instance, nil
}

// chain tracks the services one logical resolution is building.
type chain struct {
	mu       sync.Mutex
	building []ID
}

// enter marks id as being built. It fails with the cycle when id is already
// being built further up the chain.
func (ch *chain) enter(id ID) ([]ID, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for i, building := range ch.building {
		if building == id {
			cycle := make([]ID, 0, len(ch.building)-i+1)
			cycle = append(cycle, ch.building[i:]...)

			return append(cycle, id), false
		}
	}

	ch.building = append(ch.building, id)

	return nil, true
}

func (ch *chain) leave(id ID) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for i := len(ch.building) - 1; i >= 0; i-- {
		if ch.building[i] == id {
			ch.building = append(ch.building[:i], ch.building[i+1:]...)

			return
		}
	}
}

// chainResolver implements Resolver for one factory invocation.
type chainResolver struct {
	c     *Container
	chain *chain
	env   *Env
}

func (r *chainResolver) Env() *Env {
	return r.env
}

func (r *chainResolver) Resolve(id ID) (any, bool) {
	instance, err := r.c.resolveChain(r.chain, id)

	return instance, err == nil
}

func (r *chainResolver) ResolveStrict(id ID) (any, error) {
	return r.c.resolveChain(r.chain, id)
}
