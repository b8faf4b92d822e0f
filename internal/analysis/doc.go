// Package analysis compares numerical methods against a closed-form solution.
//
// An [Analyzer] runs every configured method over the same initial-value
// problem and derives three families of error series:
//
//   - [Analyzer.SolutionsAt]: exact and approximate trajectories at a fixed N
//   - [Analyzer.ErrorsVsX]: global and local error at every node for a fixed N
//   - [Analyzer.TotalErrorVsN]: maximum absolute error for every n in 1..N
//
// # Error definitions
//
// For a method producing approx and the closed form producing exact on the
// same nodes:
//
//	total[i] = |approx[i] - exact[i]|
//	local[i] = |total[i] - total[i-1]|, local[0] = 0
//	maxErr(n) = max_i total_n[i]
//
// # Example
//
//	a := analysis.New(ivp.ExpForced, entries)
//	sweep, _ := a.TotalErrorVsN(ctx, ivp.Params{X0: 0, Y0: 0, X: 7, N: 50})
//	for _, s := range sweep.Series {
//	    fmt.Println(s.Name, s.Values[len(s.Values)-1])
//	}
//
// Analyzers hold no state between calls and are safe for concurrent use.
package analysis
