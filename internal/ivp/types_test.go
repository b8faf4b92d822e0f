package ivp

import (
	"errors"
	"math"
	"testing"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		valid  bool
	}{
		{"default", Params{X0: 0, Y0: 0, X: 7, N: 11}, true},
		{"single step", Params{X0: 0, Y0: 1, X: 1, N: 1}, true},
		{"degenerate interval", Params{X0: 2, Y0: 1, X: 2, N: 5}, true},
		{"zero steps", Params{X0: 0, Y0: 0, X: 1, N: 0}, false},
		{"negative steps", Params{X0: 0, Y0: 0, X: 1, N: -3}, false},
		{"reversed interval", Params{X0: 3, Y0: 0, X: 1, N: 10}, false},
		{"NaN y0", Params{X0: 0, Y0: math.NaN(), X: 1, N: 10}, false},
		{"+Inf X", Params{X0: 0, Y0: 0, X: math.Inf(1), N: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("Validate() error %v does not wrap ErrInvalidArgument", err)
				}
			}
		})
	}
}

func TestParams_Nodes(t *testing.T) {
	p := Params{X0: -1.5, Y0: 0, X: 7.25, N: 37}
	h := (p.X - p.X0) / float64(p.N)

	xs := p.Nodes()
	if len(xs) != p.N+1 {
		t.Fatalf("expected %d nodes, got %d", p.N+1, len(xs))
	}
	for i, x := range xs {
		want := p.X0 + float64(i)*h
		if x != want {
			t.Errorf("node %d = %v, want %v", i, x, want)
		}
	}
	if math.Abs(xs[p.N]-p.X) > 1e-12 {
		t.Errorf("last node %v, want %v", xs[p.N], p.X)
	}
}

func TestParams_WithN(t *testing.T) {
	p := Params{X0: 0, Y0: 1, X: 2, N: 4}
	q := p.WithN(8)

	if p.N != 4 {
		t.Errorf("WithN mutated receiver: N=%d", p.N)
	}
	if q.N != 8 || q.StepSize() != 0.25 {
		t.Errorf("WithN(8): N=%d h=%v", q.N, q.StepSize())
	}
}

func TestParamError(t *testing.T) {
	err := &ParamError{Field: "N", Value: 0, Reason: "step count must be at least 1"}
	expected := "ivp: invalid argument: N=0: step count must be at least 1"
	if err.Error() != expected {
		t.Errorf("ParamError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestTrajectory_IsValid(t *testing.T) {
	if !(Trajectory{1, 2, 3}).IsValid() {
		t.Error("finite trajectory reported invalid")
	}
	if (Trajectory{1, math.NaN()}).IsValid() {
		t.Error("NaN trajectory reported valid")
	}
	if (Trajectory{math.Inf(-1)}).IsValid() {
		t.Error("Inf trajectory reported valid")
	}
}
