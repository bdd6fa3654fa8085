package berth

import (
	"fmt"

	"github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
	"go.uber.org/zap"
)

// Resolve resolves the unnamed service of type T.
// It reports false when the service cannot be built or is not a T.
func Resolve[T any](c *Container) (T, bool) {
	return ResolveKey(c, KeyOf[T]())
}

// ResolveKey resolves a service using a typed service key.
//
// Example:
//
//	db, ok := berth.ResolveKey(c, ReplicaKey)
func ResolveKey[T any](c *Container, key Key[T]) (T, bool) {
	value, err := ResolveKeyStrict(c, key)

	return value, err == nil
}

// ResolveKeyStrict is ResolveKey with the reason for absence.
func ResolveKeyStrict[T any](c *Container, key Key[T]) (T, error) {
	var zero T

	instance, err := c.ResolveStrict(key.ID())
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(key.ID(), instance)
	}

	return typed, nil
}

// ResolveFrom resolves a service from inside a factory.
//
// Example:
//
//	c.Register(berth.IDOf[*Handler](), nil, func(r berth.Resolver, _ berth.Deps) (any, error) {
//	    cache, _ := berth.ResolveFrom(r, berth.KeyOf[*Cache]())
//	    return &Handler{cache: cache}, nil
//	})
func ResolveFrom[T any](r Resolver, key Key[T]) (T, bool) {
	var zero T

	instance, ok := r.Resolve(key.ID())
	if !ok {
		return zero, false
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// Must resolves the unnamed service of type T or panics - use only during startup.
func Must[T any](c *Container) T {
	return MustKey(c, KeyOf[T]())
}

// MustKey resolves a service using a typed service key and panics on error.
func MustKey[T any](c *Container, key Key[T]) T {
	value, err := ResolveKeyStrict(c, key)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", key, err))
	}

	return value
}

// Has checks if the unnamed service of type T is registered.
func Has[T any](c *Container) bool {
	return c.Has(IDOf[T]())
}

// HasKey checks if a service is registered using a typed service key.
func HasKey[T any](c *Container, key Key[T]) bool {
	return c.Has(key.ID())
}

// EvictKey drops the cached instance of key, see Container.Evict.
func EvictKey[T any](c *Container, key Key[T]) bool {
	return c.Evict(key.ID())
}

// GetLogger resolves the application logger registered in the container
// under the log.Logger interface, if any.
//
// Example:
//
//	berth.Value[log.Logger](c, log.NewProductionLogger())
//	logger, ok := berth.GetLogger(c)
func GetLogger(c *Container) (log.Logger, bool) {
	return Resolve[log.Logger](c)
}

// GetZapLogger resolves a *zap.Logger registered in the container, if any.
func GetZapLogger(c *Container) (*zap.Logger, bool) {
	return Resolve[*zap.Logger](c)
}

// GetMetrics resolves the metrics collector registered in the container
// under the metrics.Metrics interface, if any.
func GetMetrics(c *Container) (metrics.Metrics, bool) {
	return Resolve[metrics.Metrics](c)
}
