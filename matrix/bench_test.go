// Package matrix_test provides benchmarks for core matrix package operations,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvlinalg/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkV []float64
	sinkF float64
)

func BenchmarkMultiply(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := matrix.Alloc(n, n, true)
			y := matrix.Alloc(n, n, true)
			z := matrix.Alloc(n, n, true)
			fillDenseRand(x, 1)
			fillDenseRand(y, 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				matrix.Multiply(1, x, y, 0, z)
			}
			sinkF = z.Get(0, 0)
		})
	}
}

func BenchmarkSymmEigen(b *testing.B) {
	for _, n := range benchSizes[:2] {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomSPD(n, 5)
			work := matrix.AllocAs(a, false)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				matrix.Copy(work, a, 1, 0)
				sinkV = matrix.SymmEigen(work, matrix.JobVectors)
			}
		})
	}
}

func BenchmarkInvert(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomSPD(n, 9)
			work := matrix.AllocAs(a, false)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				matrix.Copy(work, a, 1, 0)
				matrix.Invert(work)
			}
			sinkF = work.Get(0, 0)
		})
	}
}

func BenchmarkScaleAll(b *testing.B) {
	for _, par := range []bool{false, true} {
		b.Run(fmt.Sprintf("parallel=%v", par), func(b *testing.B) {
			m := matrix.Alloc(512, 512, true)
			m.UseParallel(par)
			fillDenseRand(m, 3)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.ScaleAll(1.0000001)
			}
			sinkF = m.Sum()
		})
	}
}
