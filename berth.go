// Package berth provides a typed service container: factories registered
// under type-derived identities, lazily resolved singletons, dependency
// ordering over an always-acyclic graph, and an explicit validation step
// that reports missing dependencies and cycles.
//
// Resolution never panics or fails loudly for wiring problems: a service
// whose dependencies are absent simply resolves to nothing. Callers are
// expected to run Validate (or Check) at startup and treat findings as fatal.
//
//	c := berth.New(berth.WithLogger(logger))
//	_ = berth.Provide(c, NewConfig)
//	_ = berth.Provide1(c, NewDatabase)
//
//	if err := c.Check(); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = c.AttachEnv(env)
//	db, ok := berth.Resolve[*Database](c)
package berth
