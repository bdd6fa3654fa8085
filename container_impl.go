package berth

import (
	"sync"

	"go.uber.org/zap"
)

// Factory creates a service instance. deps holds the resolved dependencies
// in the order they were declared at registration.
type Factory func(r Resolver, deps Deps) (any, error)

// Container registers factories, resolves singletons in dependency order and
// validates the dependency graph. It is safe for concurrent use.
//
// Container.mu guards the registration table, the graph, the instance cache
// and the env, and is never held while a factory runs. Creation of each
// identity is serialized by its own slot so a factory runs at most once.
type Container struct {
	mu        sync.RWMutex
	registry  *registry
	graph     *DependencyGraph
	instances map[ID]any
	slots     map[ID]*sync.Mutex
	env       *Env
	hooks     hookChain
	logger    *zap.Logger
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registry:  newRegistry(),
		graph:     NewDependencyGraph(),
		instances: make(map[ID]any),
		slots:     make(map[ID]*sync.Mutex),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Register adds a factory for id that depends on deps, in positional order.
//
// Registration order does not matter: dependencies may be registered later.
// A dependency that would close a cycle is not an error here; it is recorded
// and reported by Validate. Registering id again replaces its factory and
// dependency list, but an instance that was already created stays cached
// until Evict is called.
func (c *Container) Register(id ID, deps []ID, factory Factory) error {
	if id.IsZero() {
		return ErrInvalidIdentity
	}

	if factory == nil {
		return ErrInvalidFactory
	}

	for _, dep := range deps {
		if dep.IsZero() {
			return ErrInvalidIdentity
		}
	}

	declared := make([]ID, len(deps))
	copy(declared, deps)

	c.mu.Lock()
	defer c.mu.Unlock()

	replaced := c.registry.put(&entry{id: id, deps: declared, factory: factory})
	if replaced {
		c.graph.removeEdges(id)
		c.registry.forgetRejected(id)
	}

	c.graph.AddNode(id)

	for _, dep := range declared {
		c.link(id, dep)
	}

	// Dropping the old edges may have broken cycles that earlier rejections
	// depended on.
	if replaced {
		c.retryRejected()
	}

	c.logger.Debug("service registered",
		zap.Stringer("service", id),
		zap.Int("dependencies", len(declared)),
		zap.Bool("replaced", replaced),
	)

	return nil
}

// link inserts from -> to, recording the edge when it is rejected.
func (c *Container) link(from, to ID) {
	if c.graph.AddEdge(from, to) {
		return
	}

	if c.registry.reject(from, to) {
		c.logger.Debug("dependency edge rejected",
			zap.Stringer("service", from),
			zap.Stringer("dependency", to),
		)
	}
}

func (c *Container) retryRejected() {
	pending := c.registry.rejected
	c.registry.rejected = nil

	for _, edge := range pending {
		if !c.graph.AddEdge(edge.from, edge.to) {
			c.registry.rejected = append(c.registry.rejected, edge)
		}
	}
}

// AttachEnv attaches the ambient env handed to every factory. It must be
// called exactly once; every resolution before it reports absence.
func (c *Container) AttachEnv(env *Env) error {
	if env == nil {
		return ErrInvalidEnv
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.env != nil {
		return ErrEnvAttached
	}

	c.env = env

	c.logger.Debug("env attached",
		zap.String("name", env.Name()),
		zap.String("environment", env.Environment()),
	)

	return nil
}

// Env returns the attached env, or nil before AttachEnv.
func (c *Container) Env() *Env {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.env
}

// Use adds a hook to the container.
// Hooks are called in the order they are added.
func (c *Container) Use(hook Hook) {
	if hook == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.hooks = c.hooks.add(hook)
}

// Has checks if a service is registered.
func (c *Container) Has(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.registry.has(id)
}

// IsResolved checks if a service instance is cached.
func (c *Container) IsResolved(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.instances[id]

	return ok
}

// Services returns all registered identities in registration order.
func (c *Container) Services() []ID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.registry.ids()
}

// Graph returns a snapshot of the dependency graph.
func (c *Container) Graph() *DependencyGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.graph.Clone()
}

// Evict drops the cached instance of id so the next resolution invokes the
// current factory. Services that already received the old instance keep it.
// It reports whether an instance was cached. Evict must not be called from
// the factory of id itself.
func (c *Container) Evict(id ID) bool {
	slot := c.slot(id)
	slot.Lock()
	defer slot.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.instances[id]
	if ok {
		delete(c.instances, id)
		c.logger.Debug("service evicted", zap.Stringer("service", id))
	}

	return ok
}

// slot returns the creation lock of id.
func (c *Container) slot(id ID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[id]
	if !ok {
		s = &sync.Mutex{}
		c.slots[id] = s
	}

	return s
}
