package berth

// Deps holds resolved dependencies in declared order.
type Deps []any

// Len returns the number of dependencies.
func (d Deps) Len() int {
	return len(d)
}

// Arg returns the dependency at position i converted to T, or the zero value
// of T when i is out of range or the type does not match.
func Arg[T any](deps Deps, i int) T {
	value, _ := Lookup[T](deps, i)

	return value
}

// Lookup returns the dependency at position i converted to T.
func Lookup[T any](deps Deps, i int) (T, bool) {
	var zero T

	if i < 0 || i >= len(deps) {
		return zero, false
	}

	value, ok := deps[i].(T)
	if !ok {
		return zero, false
	}

	return value, true
}

// ProvideOption configures typed registration.
type ProvideOption func(*provideOptions)

type provideOptions struct {
	name string
}

// As registers the service under a named identity, see NamedKey.
func As(name string) ProvideOption {
	return func(o *provideOptions) {
		o.name = name
	}
}

func provideID[T any](opts []ProvideOption) ID {
	var o provideOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.name != "" {
		return NamedID[T](o.name)
	}

	return IDOf[T]()
}

// Provide registers a factory for T that has no declared dependencies and
// only reads the ambient env.
//
// Example:
//
//	berth.Provide(c, func(env *berth.Env) (*Config, error) {
//	    return &Config{Debug: env.Bool("debug", false)}, nil
//	})
func Provide[T any](c *Container, factory func(env *Env) (T, error), opts ...ProvideOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	return c.Register(provideID[T](opts), nil, func(r Resolver, _ Deps) (any, error) {
		return factory(r.Env())
	})
}

// Provide1 registers a factory for T that depends on the unnamed service D1.
//
// Example:
//
//	berth.Provide1(c, func(env *berth.Env, cfg *Config) (*Database, error) {
//	    return Open(cfg.DSN)
//	})
func Provide1[T, D1 any](c *Container, factory func(env *Env, d1 D1) (T, error), opts ...ProvideOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	deps := []ID{IDOf[D1]()}

	return c.Register(provideID[T](opts), deps, func(r Resolver, d Deps) (any, error) {
		return factory(r.Env(), Arg[D1](d, 0))
	})
}

// Provide2 registers a factory for T that depends on D1 and D2.
func Provide2[T, D1, D2 any](c *Container, factory func(env *Env, d1 D1, d2 D2) (T, error), opts ...ProvideOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	deps := []ID{IDOf[D1](), IDOf[D2]()}

	return c.Register(provideID[T](opts), deps, func(r Resolver, d Deps) (any, error) {
		return factory(r.Env(), Arg[D1](d, 0), Arg[D2](d, 1))
	})
}

// Provide3 registers a factory for T that depends on D1, D2 and D3.
func Provide3[T, D1, D2, D3 any](c *Container, factory func(env *Env, d1 D1, d2 D2, d3 D3) (T, error), opts ...ProvideOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	deps := []ID{IDOf[D1](), IDOf[D2](), IDOf[D3]()}

	return c.Register(provideID[T](opts), deps, func(r Resolver, d Deps) (any, error) {
		return factory(r.Env(), Arg[D1](d, 0), Arg[D2](d, 1), Arg[D3](d, 2))
	})
}

// Provide4 registers a factory for T that depends on D1 through D4.
func Provide4[T, D1, D2, D3, D4 any](c *Container, factory func(env *Env, d1 D1, d2 D2, d3 D3, d4 D4) (T, error), opts ...ProvideOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	deps := []ID{IDOf[D1](), IDOf[D2](), IDOf[D3](), IDOf[D4]()}

	return c.Register(provideID[T](opts), deps, func(r Resolver, d Deps) (any, error) {
		return factory(r.Env(), Arg[D1](d, 0), Arg[D2](d, 1), Arg[D3](d, 2), Arg[D4](d, 3))
	})
}

// ProvideN registers a factory for key with any number of dependencies,
// named or not. The factory reads them positionally from the Deps bag.
//
// Example:
//
//	berth.ProvideN(c, ReportKey, berth.IDs(PrimaryKey, ReplicaKey, CacheKey),
//	    func(env *berth.Env, deps berth.Deps) (*Report, error) {
//	        return &Report{
//	            primary: berth.Arg[*Database](deps, 0),
//	            replica: berth.Arg[*Database](deps, 1),
//	            cache:   berth.Arg[*Cache](deps, 2),
//	        }, nil
//	    },
//	)
func ProvideN[T any](c *Container, key Key[T], deps []ID, factory func(env *Env, deps Deps) (T, error)) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	return c.Register(key.ID(), deps, func(r Resolver, d Deps) (any, error) {
		return factory(r.Env(), d)
	})
}

// Value registers an already built instance for T.
func Value[T any](c *Container, value T, opts ...ProvideOption) error {
	return Provide(c, func(*Env) (T, error) {
		return value, nil
	}, opts...)
}
