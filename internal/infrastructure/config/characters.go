package config

import (
	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
)

// CharactersConfig is the root config for characters.yaml, keyed by
// archetype id.
type CharactersConfig map[string]CharacterConfig

type CharacterConfig struct {
	Name      string          `yaml:"name"`
	MaxLife   int             `yaml:"maxLife"`
	Colliders CollidersConfig `yaml:"colliders"`
	Movement  MovementConfig  `yaml:"movement"`
	Jump      JumpFeelConfig  `yaml:"jump"`
	Crouch    CrouchConfig    `yaml:"crouch"`
	Roll      DashConfig      `yaml:"roll"`
	Slide     DashConfig      `yaml:"slide"`
	WallJump  WallJumpConfig  `yaml:"wallJump"`
	Attacks   AttacksConfig   `yaml:"attacks"`
	Hurt      HurtConfig      `yaml:"hurt"`
	AI        *AIConfig       `yaml:"ai,omitempty"`
}

type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rect) entity() entity.Rect { return entity.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) entity() entity.Vec2 { return entity.Vec2{X: v.X, Y: v.Y} }

type CollidersConfig struct {
	Stand  Rect `yaml:"stand"`
	Crouch Rect `yaml:"crouch"`
}

type MovementConfig struct {
	RunSpeed        float64    `yaml:"runSpeed"`
	AirSpeed        float64    `yaml:"airSpeed"`
	CrouchWalkSpeed float64    `yaml:"crouchWalkSpeed"`
	WallSlideSpeed  float64    `yaml:"wallSlideSpeed"`
	FakeWalkSpeed   float64    `yaml:"fakeWalkSpeed"`
	FakeWalkCurve   []KeyValue `yaml:"fakeWalkCurve"`
}

type JumpFeelConfig struct {
	Speed                  float64 `yaml:"speed"`
	Buffer                 float64 `yaml:"buffer"`
	VariableJumpMultiplier float64 `yaml:"variableJumpMultiplier"`
}

type CrouchConfig struct {
	EnterDuration   float64 `yaml:"enterDuration"`
	StandUpDuration float64 `yaml:"standUpDuration"`
}

// KeyValue is one authored curve key.
type KeyValue struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

func curve(keys []KeyValue) character.Curve {
	if len(keys) == 0 {
		return nil
	}
	c := make(character.Curve, len(keys))
	for i, k := range keys {
		c[i] = character.Keyframe{T: k.T, V: k.V}
	}
	return c
}

type DashConfig struct {
	Duration float64    `yaml:"duration"`
	Cooldown float64    `yaml:"cooldown"`
	Speed    float64    `yaml:"speed"`
	Curve    []KeyValue `yaml:"curve"`
}

type WallJumpConfig struct {
	Duration float64    `yaml:"duration"`
	Speed    float64    `yaml:"speed"`
	Vertical float64    `yaml:"vertical"`
	Curve    []KeyValue `yaml:"curve"`
}

type AttacksConfig struct {
	One    AttackConfig `yaml:"one"`
	Two    AttackConfig `yaml:"two"`
	Crouch AttackConfig `yaml:"crouch"`
}

type AttackConfig struct {
	Anim        string  `yaml:"anim"`
	Duration    float64 `yaml:"duration"`
	EndOffset   float64 `yaml:"endOffset"`
	TriggerTime float64 `yaml:"triggerTime"`
	Lunge       float64 `yaml:"lunge"`
	Box         Rect    `yaml:"box"`
	Damage      int     `yaml:"damage"`
	Knockback   Vec     `yaml:"knockback"`
}

func (a AttackConfig) params() character.AttackParams {
	return character.AttackParams{
		Anim:        a.Anim,
		Duration:    a.Duration,
		EndOffset:   a.EndOffset,
		TriggerTime: a.TriggerTime,
		Lunge:       a.Lunge,
		Box:         a.Box.entity(),
		Damage:      a.Damage,
		Knockback:   a.Knockback.entity(),
	}
}

type HurtConfig struct {
	Duration      float64 `yaml:"duration"`
	Invincibility float64 `yaml:"invincibility"`
}

// AIConfig tunes the pursuer brain of enemy archetypes.
type AIConfig struct {
	RepathInterval float64 `yaml:"repathInterval"`
	AttackRange    float64 `yaml:"attackRange"`
	ArriveRadius   float64 `yaml:"arriveRadius"`
	SightRange     float64 `yaml:"sightRange"`
}

// Params converts the authored values into character parameters.
func (c CharacterConfig) Params() character.Params {
	return character.Params{
		Name:                   c.Name,
		MaxLife:                c.MaxLife,
		StandCollider:          c.Colliders.Stand.entity(),
		CrouchCollider:         c.Colliders.Crouch.entity(),
		RunSpeed:               c.Movement.RunSpeed,
		AirSpeed:               c.Movement.AirSpeed,
		CrouchWalkSpeed:        c.Movement.CrouchWalkSpeed,
		WallSlideSpeed:         c.Movement.WallSlideSpeed,
		FakeWalkSpeed:          c.Movement.FakeWalkSpeed,
		FakeWalkCurve:          curve(c.Movement.FakeWalkCurve),
		JumpSpeed:              c.Jump.Speed,
		JumpBuffer:             c.Jump.Buffer,
		VariableJumpMultiplier: c.Jump.VariableJumpMultiplier,
		CrouchEnterDuration:    c.Crouch.EnterDuration,
		StandUpDuration:        c.Crouch.StandUpDuration,
		Roll: character.DashParams{
			Duration: c.Roll.Duration,
			Cooldown: c.Roll.Cooldown,
			Speed:    c.Roll.Speed,
			Curve:    curve(c.Roll.Curve),
		},
		Slide: character.DashParams{
			Duration: c.Slide.Duration,
			Cooldown: c.Slide.Cooldown,
			Speed:    c.Slide.Speed,
			Curve:    curve(c.Slide.Curve),
		},
		WallJump: character.WallJumpParams{
			Duration: c.WallJump.Duration,
			Speed:    c.WallJump.Speed,
			Vertical: c.WallJump.Vertical,
			Curve:    curve(c.WallJump.Curve),
		},
		AttackOne:     c.Attacks.One.params(),
		AttackTwo:     c.Attacks.Two.params(),
		CrouchAttack:  c.Attacks.Crouch.params(),
		HurtDuration:  c.Hurt.Duration,
		Invincibility: c.Hurt.Invincibility,
	}
}
