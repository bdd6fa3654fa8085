package berth

// ServiceRegistration holds configuration for a service to be registered.
type ServiceRegistration struct {
	ID      ID
	Deps    []ID
	Factory Factory
}

// Service creates a ServiceRegistration for batch registration.
//
// Example:
//
//	berth.RegisterServices(c,
//	    berth.Service(berth.IDOf[*Database](), nil, newDatabase),
//	    berth.Service(berth.IDOf[*Cache](), berth.IDs(berth.KeyOf[*Database]()), newCache),
//	)
func Service(id ID, deps []ID, factory Factory) ServiceRegistration {
	return ServiceRegistration{
		ID:      id,
		Deps:    deps,
		Factory: factory,
	}
}

// RegisterServices registers multiple services in a single call.
// It stops at the first invalid registration and returns its error;
// registrations before it stay in place.
func RegisterServices(c *Container, services ...ServiceRegistration) error {
	for _, svc := range services {
		if err := c.Register(svc.ID, svc.Deps, svc.Factory); err != nil {
			return err
		}
	}

	return nil
}

// KeyedServiceRegistration holds configuration for a keyed service to be registered.
type KeyedServiceRegistration[T any] struct {
	Key     Key[T]
	Deps    []ID
	Factory func(env *Env, deps Deps) (T, error)
}

// KeyedService creates a KeyedServiceRegistration for batch registration with service keys.
func KeyedService[T any](key Key[T], deps []ID, factory func(env *Env, deps Deps) (T, error)) KeyedServiceRegistration[T] {
	return KeyedServiceRegistration[T]{
		Key:     key,
		Deps:    deps,
		Factory: factory,
	}
}

// RegisterKeyedServices registers multiple keyed services of one type.
//
// Example:
//
//	err := berth.RegisterKeyedServices(c,
//	    berth.KeyedService(PrimaryKey, nil, openPrimary),
//	    berth.KeyedService(ReplicaKey, berth.IDs(PrimaryKey), openReplica),
//	)
func RegisterKeyedServices[T any](c *Container, services ...KeyedServiceRegistration[T]) error {
	for _, svc := range services {
		if err := ProvideN(c, svc.Key, svc.Deps, svc.Factory); err != nil {
			return err
		}
	}

	return nil
}
