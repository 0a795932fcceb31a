// Package lvlinalg is a small linear-algebra layer for numerical codes that
// must run either on one machine or across a group of processes, with the
// numerical backend fixed at build time.
//
// What is inside:
//
//	matrix/       opaque row-major dense matrix; GEMM, symmetric eigensolve and
//	              inversion routed to one backend (reference, gonum, gpu tags);
//	              binary save/load and text tables
//	group/        process group runtime: Init/Finalize, typed point-to-point
//	              messaging, barrier and float64 collectives, launch config
//	partition/    contiguous task ranges per rank, with one leftover task for
//	              the lowest ranks
//	dist/         row-partitioned sparse matrix and vector, thick-restart
//	              Lanczos for a few extreme eigenpairs, ordered binary writer
//	              (the replicated tag swaps in a dense per-rank copy)
//	internal/     fatal-error hook (fault) and transports (in-process hub,
//	              websocket mesh)
//
// Quick sketch:
//
//	g := group.Init(os.Args[1:])
//	defer g.Finalize()
//
//	a := dist.NewMatrix(g, n, n, dist.NonZeros{Diag: 3})
//	... a.Set(p, q, x) for every entry, on every rank ...
//	a.Build()
//	if a.SparseEigen(4, 0, 0, true) > 0 {
//		lambda, v := a.Eigenpair(0)
//		_ = dist.Write(v, 0, n, out)
//	}
//
// See examples/ for a runnable program.
//
//	go get github.com/katalvlaran/lvlinalg
package lvlinalg
