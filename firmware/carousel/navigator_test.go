package carousel

import (
	"errors"
	"testing"

	"github.com/IanScottMcGuire/bincarousel"
)

func TestForwardMoves(t *testing.T) {
	tests := []struct {
		current, target bincarousel.Bin
		want            int
	}{
		{bincarousel.Bin0, bincarousel.Bin0, 0},
		{bincarousel.Bin0, bincarousel.Bin3, 3},
		{bincarousel.Bin1, bincarousel.Bin0, 3},
		{bincarousel.Bin3, bincarousel.Bin0, 1},
		{bincarousel.Bin3, bincarousel.Bin2, 3},
		{bincarousel.Bin2, bincarousel.Bin3, 1},
	}

	for _, tt := range tests {
		if got := forwardMoves(tt.current, tt.target); got != tt.want {
			t.Errorf("forwardMoves(%v, %v): expected=%d, got=%d", tt.current, tt.target, tt.want, got)
		}
	}
}

func TestMoveToBin(t *testing.T) {
	tests := []struct {
		name  string
		path  []bincarousel.Bin
		moves []int64
	}{
		{"OneBin", []bincarousel.Bin{bincarousel.Bin1}, []int64{1}},
		{"AllTheWay", []bincarousel.Bin{bincarousel.Bin3}, []int64{3}},
		{"WrapAround", []bincarousel.Bin{bincarousel.Bin3, bincarousel.Bin0}, []int64{3, 1}},
		{"Backwards", []bincarousel.Bin{bincarousel.Bin2, bincarousel.Bin1}, []int64{2, 3}},
		{"AlreadyThere", []bincarousel.Bin{bincarousel.Bin0}, []int64{0}},
		{"FullTour", []bincarousel.Bin{bincarousel.Bin1, bincarousel.Bin2, bincarousel.Bin3, bincarousel.Bin0}, []int64{1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newHomedRig(t)

			for i, target := range tt.path {
				before := r.c.Motor().Steps
				if err := r.c.MoveToBin(target); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if r.c.State().Position != target {
					t.Errorf("expected=%v, got=%v", target, r.c.State().Position)
				}
				if got := r.drum.angle(); got != binStop(target, 116) {
					t.Errorf("expected angle=%d, got=%d", binStop(target, 116), got)
				}
				if got := r.c.Motor().Steps - before; got != tt.moves[i]*simBinSpacing {
					t.Errorf("expected steps=%d, got=%d", tt.moves[i]*simBinSpacing, got)
				}
			}

			last := tt.path[len(tt.path)-1]
			if tt.moves[len(tt.moves)-1] == 0 {
				if !r.out.contains(bincarousel.MsgAlreadyAt + last.String()) {
					t.Errorf("unexpected output: %q", r.out.lines)
				}
			} else if !r.out.contains(bincarousel.MsgMoveDone + last.String()) {
				t.Errorf("unexpected output: %q", r.out.lines)
			}
		})
	}
}

func TestMoveToBinRejected(t *testing.T) {
	t.Run("InvalidBin", func(t *testing.T) {
		r := newHomedRig(t)
		if err := r.c.MoveToBin(bincarousel.Bin(4)); !errors.Is(err, ErrInvalidBin) {
			t.Errorf("expected ErrInvalidBin, got %v", err)
		}
		if err := r.c.MoveToBin(bincarousel.BinUnknown); !errors.Is(err, ErrInvalidBin) {
			t.Errorf("expected ErrInvalidBin, got %v", err)
		}
	})

	t.Run("NotHomed", func(t *testing.T) {
		r := newRig(t, 1234)
		if err := r.c.MoveToBin(bincarousel.Bin1); !errors.Is(err, ErrNotHomed) {
			t.Errorf("expected ErrNotHomed, got %v", err)
		}
		if err := r.c.MoveOneBin(); !errors.Is(err, ErrNotHomed) {
			t.Errorf("expected ErrNotHomed, got %v", err)
		}
		if r.drum.pos != 1234 {
			t.Errorf("expected no motion")
		}
	})
}

func TestMoveFailureInvalidatesHoming(t *testing.T) {
	r := newHomedRig(t)
	r.drum.disconnected = true

	err := r.c.MoveToBin(bincarousel.Bin2)
	if !errors.Is(err, ErrGuardExceeded) {
		t.Fatalf("expected ErrGuardExceeded, got %v", err)
	}

	s := r.c.State()
	if s.Homed || s.Position != bincarousel.BinUnknown || s.Calibration != nil {
		t.Errorf("expected un-homed state, got %+v", s)
	}
}
