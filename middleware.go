package berth

import "time"

// Hook intercepts container operations.
// Hooks can be used for logging, metrics, testing, etc.
type Hook interface {
	// BeforeResolve is called before resolving a service.
	// Return error to abort resolution; the caller then observes absence.
	BeforeResolve(id ID) error

	// AfterResolve is called after every resolution attempt, including
	// cache hits and failures.
	AfterResolve(id ID, instance any, err error, elapsed time.Duration)

	// BeforeCreate is called right before a factory is invoked.
	// Return error to abort creation.
	BeforeCreate(id ID) error

	// AfterCreate is called after a factory returned.
	AfterCreate(id ID, instance any, err error, elapsed time.Duration)
}

// hookChain manages multiple hooks.
type hookChain struct {
	hooks []Hook
}

// add returns a chain with hook appended. Chains are copy-on-write so a
// snapshot can be used without holding the container lock.
func (h hookChain) add(hook Hook) hookChain {
	hooks := make([]Hook, len(h.hooks), len(h.hooks)+1)
	copy(hooks, h.hooks)

	return hookChain{hooks: append(hooks, hook)}
}

// beforeResolve calls BeforeResolve on all hooks.
func (h hookChain) beforeResolve(id ID) error {
	for _, hook := range h.hooks {
		if err := hook.BeforeResolve(id); err != nil {
			return err
		}
	}

	return nil
}

// afterResolve calls AfterResolve on all hooks.
func (h hookChain) afterResolve(id ID, instance any, err error, elapsed time.Duration) {
	for _, hook := range h.hooks {
		hook.AfterResolve(id, instance, err, elapsed)
	}
}

// beforeCreate calls BeforeCreate on all hooks.
func (h hookChain) beforeCreate(id ID) error {
	for _, hook := range h.hooks {
		if err := hook.BeforeCreate(id); err != nil {
			return err
		}
	}

	return nil
}

// afterCreate calls AfterCreate on all hooks.
func (h hookChain) afterCreate(id ID, instance any, err error, elapsed time.Duration) {
	for _, hook := range h.hooks {
		hook.AfterCreate(id, instance, err, elapsed)
	}
}

// FuncHook wraps functions as Hook. Nil functions are skipped.
type FuncHook struct {
	BeforeResolveFunc func(id ID) error
	AfterResolveFunc  func(id ID, instance any, err error, elapsed time.Duration)
	BeforeCreateFunc  func(id ID) error
	AfterCreateFunc   func(id ID, instance any, err error, elapsed time.Duration)
}

// BeforeResolve implements Hook.
func (f *FuncHook) BeforeResolve(id ID) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(id)
	}
	return nil
}

// AfterResolve implements Hook.
func (f *FuncHook) AfterResolve(id ID, instance any, err error, elapsed time.Duration) {
	if f.AfterResolveFunc != nil {
		f.AfterResolveFunc(id, instance, err, elapsed)
	}
}

// BeforeCreate implements Hook.
func (f *FuncHook) BeforeCreate(id ID) error {
	if f.BeforeCreateFunc != nil {
		return f.BeforeCreateFunc(id)
	}
	return nil
}

// AfterCreate implements Hook.
func (f *FuncHook) AfterCreate(id ID, instance any, err error, elapsed time.Duration) {
	if f.AfterCreateFunc != nil {
		f.AfterCreateFunc(id, instance, err, elapsed)
	}
}
