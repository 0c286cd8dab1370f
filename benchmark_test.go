package services

import (
	"fmt"
	"testing"
)

// Benchmark service definition.
func BenchmarkDefineService(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.DefineService("service", constant("value"))
	}
}

func BenchmarkApplyWiring_100(b *testing.B) {
	w := make(Wiring, 100)
	for i := range w {
		w[i] = Define(fmt.Sprintf("service-%d", i), constant(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.ApplyWiring(w)
	}
}

// Benchmark service resolution.
func BenchmarkGetService_Cached(b *testing.B) {
	c := New()
	_ = c.DefineService("service", constant("value"))

	// Warm up cache
	_, _ = c.GetService("service")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.GetService("service")
	}
}

func BenchmarkGetService_Uncached(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.DefineService("service", constant("value"))
		_, _ = c.GetService("service")
	}
}

func BenchmarkGetService_WithManipulators(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.DefineService("service", constant("value"))
		for j := 0; j < 5; j++ {
			_ = c.AddServiceManipulator("service", appendSuffix("+"))
		}
		_, _ = c.GetService("service")
	}
}

func BenchmarkGetService_Chain(b *testing.B) {
	const depth = 10

	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.DefineService("service-0", constant("leaf"))
		for j := 1; j < depth; j++ {
			dep := fmt.Sprintf("service-%d", j-1)
			_ = c.DefineService(fmt.Sprintf("service-%d", j), func(c *Container, _ ...any) (any, error) {
				return c.GetService(dep)
			})
		}
		_, _ = c.GetService(fmt.Sprintf("service-%d", depth-1))
	}
}

// Benchmark typed helpers.
func BenchmarkGet_Typed(b *testing.B) {
	c := New()
	_ = DefineValue(c, "service", &testService{value: "value"})
	_, _ = c.GetService("service")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Get[*testService](c, "service")
	}
}

// Benchmark wiring import.
func BenchmarkImportWiring_100(b *testing.B) {
	source := New()
	for i := 0; i < 100; i++ {
		_ = source.DefineService(fmt.Sprintf("service-%d", i), constant(i))
		_ = source.AddServiceManipulator(fmt.Sprintf("service-%d", i), func(s any, _ *Container, _ ...any) (any, error) {
			return s, nil
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.ImportWiring(source)
	}
}

// Benchmark teardown.
func BenchmarkDestroy(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		for j := 0; j < 10; j++ {
			name := fmt.Sprintf("service-%d", j)
			_ = c.DefineService(name, constant(&mockService{name: name}))
			_, _ = c.GetService(name)
		}
		_ = c.Destroy()
	}
}
