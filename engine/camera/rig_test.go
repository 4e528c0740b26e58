package camera

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-lumen/common"
	"github.com/Carmen-Shannon/oxy-lumen/engine/input"
)

// brokenOrbit reports KindOrbit but hands out a view no camera can decompose.
type brokenOrbit struct{ Camera }

func (brokenOrbit) Kind() Kind {
	return KindOrbit
}

func (brokenOrbit) View() common.Mat4 {
	return common.Mat4{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1}
}

func (brokenOrbit) Position() common.Vec3 {
	return common.Vec3{}
}

func TestNewRig_Validation(t *testing.T) {
	o, f := newTestOrbit(), NewFreeFly()
	if _, err := NewRig(f, o, KindOrbit); err == nil {
		t.Error("NewRig(swapped) error = nil, want error")
	}
	if _, err := NewRig(o, nil, KindOrbit); err == nil {
		t.Error("NewRig(nil) error = nil, want error")
	}
	if _, err := NewRig(o, f, Kind(7)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("NewRig(Kind(7)) error = %v, want ErrUnknownKind", err)
	}
}

func TestRig_SwitchPreservesView(t *testing.T) {
	rig, err := NewRig(newTestOrbit(), NewFreeFly(), KindOrbit)
	if err != nil {
		t.Fatalf("NewRig() error = %v", err)
	}

	v := rig.Update(0.016, input.Snapshot{Analog: input.Analog{X: 25, Y: 8, Zoom: 1}})

	if err := rig.Switch(KindFreeFly); err != nil {
		t.Fatalf("Switch(freefly) error = %v", err)
	}
	if rig.ActiveKind() != KindFreeFly {
		t.Fatalf("ActiveKind() = %v, want freefly", rig.ActiveKind())
	}
	if got := rig.Active().View(); !got.ApproxEqual(v, tol) {
		t.Errorf("view after switch = %v, want %v", got, v)
	}

	// fly a bit, then come back; the orbit camera picks up where the free-fly camera is
	v = rig.Update(0.5, input.Snapshot{Digital: input.Digital{Forward: true}})
	if err := rig.Switch(KindOrbit); err != nil {
		t.Fatalf("Switch(orbit) error = %v", err)
	}
	if got := rig.Active().View(); !got.ApproxEqual(v, tol) {
		t.Errorf("view after switching back = %v, want %v", got, v)
	}
	pos, want := rig.Position(), rig.Camera(KindFreeFly).Position()
	for i := range pos {
		if !approx(pos[i], want[i]) {
			t.Fatalf("Position() = %v, want %v", pos, want)
		}
	}
}

func TestRig_SwitchSameKindIsNoop(t *testing.T) {
	o := newTestOrbit()
	rig, _ := NewRig(o, NewFreeFly(), KindOrbit)
	before := o.View()
	if err := rig.Switch(KindOrbit); err != nil {
		t.Fatalf("Switch(orbit) error = %v", err)
	}
	if !o.View().ApproxEqual(before, 0) {
		t.Error("orbit camera changed on no-op switch")
	}
}

func TestRig_FailedSwitchStaysOnOutgoing(t *testing.T) {
	rig, err := NewRig(brokenOrbit{}, NewFreeFly(), KindOrbit)
	if err != nil {
		t.Fatalf("NewRig() error = %v", err)
	}
	if err := rig.Switch(KindFreeFly); !errors.Is(err, ErrNotRigid) {
		t.Fatalf("Switch() error = %v, want ErrNotRigid", err)
	}
	if rig.ActiveKind() != KindOrbit {
		t.Errorf("ActiveKind() = %v, want orbit after failed switch", rig.ActiveKind())
	}
	if err := rig.Switch(Kind(9)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Switch(Kind(9)) error = %v, want ErrUnknownKind", err)
	}
}
