package berth

import (
	"strconv"
	"testing"
)

func BenchmarkResolve_Cached(b *testing.B) {
	c := New()
	_ = c.AttachEnv(NewEnv(EnvConfig{}))
	_ = Value(c, &svcA{})
	_, _ = c.Resolve(idA)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = c.Resolve(idA)
	}
}

func BenchmarkResolve_Chain(b *testing.B) {
	type link struct{ next any }

	const depth = 20

	for i := 0; i < b.N; i++ {
		b.StopTimer()

		c := New()
		_ = c.AttachEnv(NewEnv(EnvConfig{}))

		for n := 0; n < depth; n++ {
			var deps []ID
			if n > 0 {
				deps = []ID{NamedID[*link](strconv.Itoa(n - 1))}
			}

			_ = c.Register(NamedID[*link](strconv.Itoa(n)), deps, func(_ Resolver, d Deps) (any, error) {
				var next any
				if d.Len() > 0 {
					next = d[0]
				}

				return &link{next: next}, nil
			})
		}

		b.StartTimer()

		_, _ = c.Resolve(NamedID[*link](strconv.Itoa(depth - 1)))
	}
}

func BenchmarkResolve_Parallel(b *testing.B) {
	c := New()
	_ = c.AttachEnv(NewEnv(EnvConfig{}))
	_ = Value(c, &svcA{})
	_ = Provide1(c, func(_ *Env, a *svcA) (*svcB, error) { return &svcB{a: a}, nil })

	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = c.Resolve(idB)
		}
	})
}

func BenchmarkValidate(b *testing.B) {
	c := New()

	for n := 0; n < 100; n++ {
		var deps []ID
		if n > 0 {
			deps = []ID{NamedID[*svcA](strconv.Itoa(n - 1))}
		}

		_ = c.Register(NamedID[*svcA](strconv.Itoa(n)), deps, leaf(&svcA{}))
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = c.Validate()
	}
}
