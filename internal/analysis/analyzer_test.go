package analysis_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
)

func numericalEntries() []analysis.Entry {
	return []analysis.Entry{
		{Method: integrators.NewEuler(), Label: "Euler's method", Color: "green"},
		{Method: integrators.NewImprovedEuler(), Label: "Improved Euler's method", Color: "cyan"},
		{Method: integrators.NewRK4(), Label: "Runge-Kutta method", Color: "blue"},
	}
}

var _ = Describe("Analyzer", func() {
	var (
		a      *analysis.Analyzer
		params ivp.Params
		ctx    context.Context
	)

	BeforeEach(func() {
		a = analysis.New(ivp.ExpForced, numericalEntries(), analysis.WithWorkers(3))
		params = ivp.Params{X0: 0, Y0: 0, X: 7, N: 11}
		ctx = context.Background()
	})

	Describe("SolutionsAt", func() {
		It("returns N+1 nodes and values for every method", func() {
			sol, err := a.SolutionsAt(params)
			Expect(err).NotTo(HaveOccurred())

			Expect(sol.Xs).To(HaveLen(params.N + 1))
			Expect(sol.Exact.Values).To(HaveLen(params.N + 1))
			Expect(sol.Exact.Name).To(Equal("Exact solution"))
			Expect(sol.Approx).To(HaveLen(3))
			for _, s := range sol.Approx {
				Expect(s.Values).To(HaveLen(params.N + 1))
				Expect(s.Values[0]).To(Equal(params.Y0))
			}
		})

		It("keeps method order and display metadata", func() {
			sol, err := a.SolutionsAt(params)
			Expect(err).NotTo(HaveOccurred())

			Expect(sol.Approx[0].Name).To(Equal("Euler's method"))
			Expect(sol.Approx[1].Color).To(Equal("cyan"))
			Expect(sol.Approx[2].Name).To(Equal("Runge-Kutta method"))
		})

		It("places node i at x0 + i*h", func() {
			params = ivp.Params{X0: -1, Y0: 2, X: 2.5, N: 7}
			sol, err := a.SolutionsAt(params)
			Expect(err).NotTo(HaveOccurred())

			h := (params.X - params.X0) / float64(params.N)
			for i, x := range sol.Xs {
				Expect(x).To(BeNumerically("~", params.X0+float64(i)*h, 1e-12))
			}
		})

		It("rejects invalid requests", func() {
			_, err := a.SolutionsAt(ivp.Params{X0: 5, Y0: 0, X: 1, N: 3})
			Expect(errors.Is(err, ivp.ErrInvalidArgument)).To(BeTrue())

			_, err = a.SolutionsAt(ivp.Params{X0: 0, Y0: 0, X: 1, N: 0})
			Expect(errors.Is(err, ivp.ErrInvalidArgument)).To(BeTrue())
		})
	})

	Describe("ErrorsVsX", func() {
		It("derives total and local error from the trajectories", func() {
			sol, err := a.SolutionsAt(params)
			Expect(err).NotTo(HaveOccurred())
			curves, err := a.ErrorsVsX(params)
			Expect(err).NotTo(HaveOccurred())
			Expect(curves).To(HaveLen(3))

			for j, c := range curves {
				Expect(c.Total).To(HaveLen(params.N + 1))
				Expect(c.Local).To(HaveLen(params.N + 1))
				Expect(c.Local[0]).To(BeZero())
				Expect(c.Total[0]).To(BeZero())
				for i := range c.Total {
					Expect(c.Total[i]).To(Equal(math.Abs(sol.Approx[j].Values[i] - sol.Exact.Values[i])))
					if i > 0 {
						Expect(c.Local[i]).To(Equal(math.Abs(c.Total[i] - c.Total[i-1])))
					}
				}
			}
		})

		It("is zero everywhere for the exact method", func() {
			exactOnly := analysis.New(ivp.ExpForced, []analysis.Entry{
				{Method: integrators.NewExact(), Label: "exact", Color: "red"},
			})
			curves, err := exactOnly.ErrorsVsX(params)
			Expect(err).NotTo(HaveOccurred())
			Expect(curves[0].Total).To(HaveEach(BeZero()))
			Expect(curves[0].Local).To(HaveEach(BeZero()))
		})
	})

	Describe("TotalErrorVsN", func() {
		It("produces one value per step count for every method", func() {
			sweep, err := a.TotalErrorVsN(ctx, params)
			Expect(err).NotTo(HaveOccurred())

			Expect(sweep.Ns).To(HaveLen(params.N))
			Expect(sweep.Ns[0]).To(Equal(1))
			Expect(sweep.Ns[params.N-1]).To(Equal(params.N))
			Expect(sweep.Series).To(HaveLen(3))
			for _, s := range sweep.Series {
				Expect(s.Values).To(HaveLen(params.N))
				Expect(s.Values).To(HaveEach(BeNumerically(">=", 0)))
			}
		})

		It("matches an independent max-error computation at every n", func() {
			sweep, err := a.TotalErrorVsN(ctx, params)
			Expect(err).NotTo(HaveOccurred())

			for k, n := range sweep.Ns {
				run := params.WithN(n)
				exact := integrators.MustSolve(integrators.NewExact(), ivp.ExpForced, run)
				for j, e := range numericalEntries() {
					approx := integrators.MustSolve(e.Method, ivp.ExpForced, run)
					worst := 0.0
					for i := range approx {
						worst = math.Max(worst, math.Abs(approx[i]-exact[i]))
					}
					Expect(sweep.Series[j].Values[k]).To(Equal(worst))
				}
			}
		})

		It("does not depend on the number of workers", func() {
			serial := analysis.New(ivp.ExpForced, numericalEntries(), analysis.WithWorkers(1))
			wide := analysis.New(ivp.ExpForced, numericalEntries(), analysis.WithWorkers(16))
			params.N = 40

			s1, err := serial.TotalErrorVsN(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			s2, err := wide.TotalErrorVsN(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(s2).To(Equal(s1))
		})

		It("is identically zero for the exact method", func() {
			exactOnly := analysis.New(ivp.ExpForced, []analysis.Entry{
				{Method: integrators.NewExact(), Label: "exact", Color: "red"},
			})
			sweep, err := exactOnly.TotalErrorVsN(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(sweep.Series[0].Values).To(HaveEach(BeZero()))
		})

		It("orders the methods by accuracy at large N", func() {
			params.N = 200
			sweep, err := a.TotalErrorVsN(ctx, params)
			Expect(err).NotTo(HaveOccurred())

			final := sweep.Final()
			Expect(final["Runge-Kutta method"]).To(BeNumerically("<", final["Improved Euler's method"]))
			Expect(final["Improved Euler's method"]).To(BeNumerically("<", final["Euler's method"]))
		})

		It("stops when the context is canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			params.N = 500
			_, err := a.TotalErrorVsN(canceled, params)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("Analyze", func() {
		It("bundles all three views", func() {
			report, err := a.Analyze(ctx, params)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Problem).To(Equal("exp_forced"))
			Expect(report.Solutions.Xs).To(HaveLen(params.N + 1))
			Expect(report.Errors).To(HaveLen(3))
			Expect(report.Sweep.Ns).To(HaveLen(params.N))
		})

		It("lays out one table per method", func() {
			report, err := a.Analyze(ctx, params)
			Expect(err).NotTo(HaveOccurred())

			tables := report.MethodTables()
			Expect(tables).To(HaveLen(3))
			for j, tbl := range tables {
				Expect(tbl.Rows).To(HaveLen(params.N + 1))
				last := tbl.Rows[params.N]
				Expect(last.I).To(Equal(params.N))
				Expect(last.X).To(BeNumerically("~", params.X, 1e-12))
				Expect(last.Approx).To(Equal(report.Solutions.Approx[j].Values[params.N]))
				Expect(last.Total).To(Equal(report.Errors[j].Total[params.N]))
			}
		})
	})
})
