package trace

import (
	"errors"
	"math"
	"testing"
)

func TestOpsLog(t *testing.T) {
	k := New()
	if _, err := k.Box(10, 10, 10); err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	if _, err := k.Tube(0, 5, 20, 0, 2*math.Pi); err != nil {
		t.Fatalf("Tube failed: %v", err)
	}
	got := k.Ops()
	want := []string{"box", "tube"}
	if len(got) != len(want) {
		t.Fatalf("Ops() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ops()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	k.Reset()
	if len(k.Ops()) != 0 {
		t.Errorf("Ops() after Reset = %v, want empty", k.Ops())
	}
}

func TestBoundingBoxes(t *testing.T) {
	k := New()

	t.Run("box", func(t *testing.T) {
		s, err := k.Box(100, 50, 25)
		if err != nil {
			t.Fatalf("Box failed: %v", err)
		}
		min, max := s.BoundingBox()
		if min != [3]float64{-50, -25, -12.5} || max != [3]float64{50, 25, 12.5} {
			t.Errorf("box bounds min %v max %v", min, max)
		}
	})

	t.Run("tube", func(t *testing.T) {
		s, err := k.Tube(5, 10, 40, 0, 2*math.Pi)
		if err != nil {
			t.Fatalf("Tube failed: %v", err)
		}
		min, max := s.BoundingBox()
		if min != [3]float64{-10, -10, -20} || max != [3]float64{10, 10, 20} {
			t.Errorf("tube bounds min %v max %v", min, max)
		}
	})

	t.Run("polycone", func(t *testing.T) {
		s, err := k.Polycone([]float64{0, 30, 30, 0}, []float64{0, 0, 60, 60})
		if err != nil {
			t.Fatalf("Polycone failed: %v", err)
		}
		min, max := s.BoundingBox()
		if min != [3]float64{-30, -30, 0} || max != [3]float64{30, 30, 60} {
			t.Errorf("polycone bounds min %v max %v", min, max)
		}
	})

	t.Run("union with shift", func(t *testing.T) {
		a, _ := k.Box(10, 10, 10)
		b, _ := k.Box(10, 10, 10)
		u, err := k.Union(a, b, 30, 0, 0)
		if err != nil {
			t.Fatalf("Union failed: %v", err)
		}
		min, max := u.BoundingBox()
		if min != [3]float64{-5, -5, -5} || max != [3]float64{35, 5, 5} {
			t.Errorf("union bounds min %v max %v", min, max)
		}
	})

	t.Run("subtraction keeps first operand box", func(t *testing.T) {
		a, _ := k.Box(10, 10, 10)
		b, _ := k.Box(4, 4, 20)
		d, err := k.Subtraction(a, b, 0, 0, 0)
		if err != nil {
			t.Fatalf("Subtraction failed: %v", err)
		}
		min, max := d.BoundingBox()
		if min != [3]float64{-5, -5, -5} || max != [3]float64{5, 5, 5} {
			t.Errorf("subtraction bounds min %v max %v", min, max)
		}
	})
}

func TestValidation(t *testing.T) {
	k := New()
	tests := []struct {
		name string
		call func() error
	}{
		{"box zero dim", func() error { _, err := k.Box(0, 1, 1); return err }},
		{"tube rmin above rmax", func() error { _, err := k.Tube(10, 5, 20, 0, 2*math.Pi); return err }},
		{"tube zero span", func() error { _, err := k.Tube(0, 5, 20, 0, 0); return err }},
		{"sphere range beyond pi", func() error { _, err := k.Sphere(0, 10, math.Pi/2, math.Pi); return err }},
		{"polycone length mismatch", func() error { _, err := k.Polycone([]float64{0, 1}, []float64{0, 1, 2}); return err }},
		{"polycone negative radius", func() error { _, err := k.Polycone([]float64{0, -1, 1}, []float64{0, 1, 2}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestInjectedFailure(t *testing.T) {
	k := New()
	k.FailOn = "polycone"

	if _, err := k.Box(1, 1, 1); err != nil {
		t.Fatalf("Box should succeed with FailOn=polycone: %v", err)
	}
	_, err := k.Polycone([]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
	if err == nil {
		t.Fatal("Polycone expected injected failure, got nil")
	}
	if !errors.Is(err, ErrInjected) {
		t.Errorf("error = %v, want ErrInjected", err)
	}

	// Failed operations must not appear in the log.
	for _, op := range k.Ops() {
		if op == "polycone" {
			t.Error("failed polycone operation was recorded")
		}
	}
}

func TestSolidRecord(t *testing.T) {
	k := New()
	a, _ := k.Tube(0, 115, 1000, 0, 2*math.Pi)
	b, _ := k.Box(10, 10, 10)
	u, err := k.Union(a, b, 0, 0, 500)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	s := u.(*Solid)
	if s.Op != "union" {
		t.Errorf("Op = %q, want union", s.Op)
	}
	if len(s.Operands) != 2 || s.Operands[0].Op != "tube" || s.Operands[1].Op != "box" {
		t.Errorf("Operands = %v", s.Operands)
	}
	if s.Args[2] != 500 {
		t.Errorf("shift z = %g, want 500", s.Args[2])
	}
}

func TestPlaceholderMesh(t *testing.T) {
	k := New()
	s, _ := k.Box(2, 2, 2)
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m.IsEmpty() || m.TriangleCount() != 1 {
		t.Errorf("placeholder mesh has %d triangles, want 1", m.TriangleCount())
	}
}
