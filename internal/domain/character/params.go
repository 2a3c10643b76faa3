package character

import (
	"errors"
	"fmt"

	"github.com/younwookim/platformcore/internal/domain/entity"
)

// ErrInvalidParams is returned for character parameters that cannot work.
var ErrInvalidParams = errors.New("invalid character params")

// DashParams tunes Roll and Slide.
type DashParams struct {
	Duration float64
	Cooldown float64
	Speed    float64
	Curve    Curve
}

// AttackParams tunes one attack state. Box is body-local for a
// right-facing character.
type AttackParams struct {
	Anim        string
	Duration    float64
	EndOffset   float64
	TriggerTime float64
	Lunge       float64
	Box         entity.Rect
	Damage      int
	Knockback   entity.Vec2
}

// WallJumpParams tunes the push away from a wall.
type WallJumpParams struct {
	Duration float64
	Speed    float64
	Vertical float64
	Curve    Curve
}

// Params is the static per-character configuration. Colliders are
// body-local; the body position is the center of the feet.
type Params struct {
	Name           string
	MaxLife        int
	StandCollider  entity.Rect
	CrouchCollider entity.Rect

	RunSpeed        float64
	AirSpeed        float64
	CrouchWalkSpeed float64
	WallSlideSpeed  float64
	FakeWalkSpeed   float64
	FakeWalkCurve   Curve

	JumpSpeed              float64
	JumpBuffer             float64
	VariableJumpMultiplier float64

	CrouchEnterDuration float64
	StandUpDuration     float64

	Roll     DashParams
	Slide    DashParams
	WallJump WallJumpParams

	AttackOne    AttackParams
	AttackTwo    AttackParams
	CrouchAttack AttackParams

	HurtDuration  float64
	Invincibility float64
}

// Validate checks that every timed state can finish and every box has area.
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(p.MaxLife > 0, "maxLife must be positive, got %d", p.MaxLife)
	check(p.StandCollider.W > 0 && p.StandCollider.H > 0, "stand collider has no area")
	check(p.CrouchCollider.W > 0 && p.CrouchCollider.H > 0, "crouch collider has no area")
	check(p.JumpBuffer >= 0, "jump buffer must not be negative")
	check(p.VariableJumpMultiplier >= 0 && p.VariableJumpMultiplier <= 1,
		"variable jump multiplier must be in [0,1], got %v", p.VariableJumpMultiplier)
	check(p.HurtDuration > 0, "hurt duration must be positive")
	check(p.Roll.Duration > 0, "roll duration must be positive")
	check(p.Slide.Duration > 0, "slide duration must be positive")
	check(p.WallJump.Duration > 0, "wall jump duration must be positive")

	curves := []struct {
		name  string
		curve Curve
	}{
		{"roll", p.Roll.Curve},
		{"slide", p.Slide.Curve},
		{"wallJump", p.WallJump.Curve},
		{"fakeWalk", p.FakeWalkCurve},
	}
	for _, c := range curves {
		check(c.curve.Sorted(), "%s curve keys are not sorted", c.name)
	}

	attacks := []struct {
		name string
		a    AttackParams
	}{
		{"attackOne", p.AttackOne},
		{"attackTwo", p.AttackTwo},
		{"crouchAttack", p.CrouchAttack},
	}
	for _, at := range attacks {
		a := at.a
		check(a.Duration > 0, "%s duration must be positive", at.name)
		check(a.EndOffset >= 0 && a.EndOffset <= a.Duration, "%s end offset outside duration", at.name)
		check(a.TriggerTime >= 0 && a.TriggerTime <= a.Duration, "%s trigger time outside duration", at.name)
		check(a.Box.W > 0 && a.Box.H > 0, "%s box has no area", at.name)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidParams, p.Name, errors.Join(errs...))
	}
	return nil
}
