package strel

import (
	"fmt"
	"testing"
)

// BenchmarkParse_Cached measures a cache hit, the common case in filters
// that parse the same specification for every image.
func BenchmarkParse_Cached(b *testing.B) {
	r := NewRegistry()
	defer r.Close()
	p := r.Parser(Uint8)
	if _, err := p.Parse("circle 25"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = p.Parse("circle 25")
	}
}

// BenchmarkParse_Circle measures uncached rasterization of disks.
func BenchmarkParse_Circle(b *testing.B) {
	for _, d := range []int{10, 50, 200} {
		b.Run(fmt.Sprintf("d=%d", d), func(b *testing.B) {
			r := NewRegistry(WithCacheCapacity(1))
			defer r.Close()
			p := r.Parser(Uint8)
			specs := [2]string{fmt.Sprintf("circle %d", d), fmt.Sprintf("circle %d 0 0", d)}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := p.Parse(specs[i%2]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkParse_RotatedEllipse measures the parallel ellipse rasterizer.
func BenchmarkParse_RotatedEllipse(b *testing.B) {
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			r := NewRegistry(WithWorkers(workers), WithCacheCapacity(1))
			defer r.Close()
			p := r.Parser(Uint8)
			specs := [2]string{"ellipse 400 150 30", "ellipse 400 150 30 0 0"}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := p.Parse(specs[i%2]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSubtract compares the box decomposition with point enumeration.
func BenchmarkSubtract(b *testing.B) {
	r := NewRegistry()
	defer r.Close()
	outer, err := r.Parse("rect 400 300", Uint8)
	if err != nil {
		b.Fatal(err)
	}
	inner, err := r.Parse("rect 200 100 10 10", Uint8)
	if err != nil {
		b.Fatal(err)
	}
	slowOuter, err := r.Parse("rect 400 300 -slow", Uint8)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("boxes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Subtract(outer, inner)
		}
	})
	b.Run("points", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Subtract(slowOuter, inner)
		}
	})
}
