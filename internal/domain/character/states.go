package character

import (
	"math"

	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/event"
)

var behaviors [stateCount]behavior

func init() {
	behaviors = [stateCount]behavior{
		StateIdle:         {enter: enterPlay, update: updateIdle, physics: physicsStill},
		StateRun:          {enter: enterPlay, update: updateRun, physics: physicsRun},
		StateJump:         {enter: enterJump, update: updateJump, physics: physicsJump},
		StateFall:         {enter: enterPlay, update: updateFall, physics: physicsAir},
		StateCrouchIdle:   {enter: enterCrouch, update: updateCrouch, physics: physicsStill, exit: exitCrouch},
		StateCrouchWalk:   {enter: enterCrouch, update: updateCrouch, physics: physicsCrouchWalk, exit: exitCrouch},
		StateRoll:         {enter: enterRestart, update: updateRoll, physics: physicsDash, exit: exitRoll},
		StateSlide:        {enter: enterRestart, update: updateSlide, physics: physicsDash, exit: exitSlide},
		StateWallSlide:    {enter: enterWallSlide, update: updateWallSlide, physics: physicsWallSlide},
		StateWallJump:     {enter: enterWallJump, update: updateWallJump, physics: physicsDirected},
		StateAttackOne:    {enter: enterAttack, update: updateAttack, physics: physicsStill},
		StateAttackTwo:    {enter: enterAttack, update: updateAttack, physics: physicsStill},
		StateCrouchAttack: {enter: enterAttack, update: updateAttack, physics: physicsStill},
		StateHurt:         {enter: enterHurt, update: updateHurt},
		StateDeath:        {enter: enterDeath, physics: physicsDead},
		StateFakeWalk:     {enter: enterFakeWalk, update: updateFakeWalk, physics: physicsDirected},
	}
}

func enterPlay(c *Character, s, _ *State) { c.play(s.Anim, false) }

func enterRestart(c *Character, s, _ *State) { c.play(s.Anim, true) }

// Idle and Run: Fall, Crouch, Jump, Roll, Attack, then Idle/Run.

func updateIdle(c *Character, _ *State) {
	if c.tryFall() || c.tryCrouch() || c.tryJump() || c.tryRoll() || c.tryAttack() {
		return
	}
	if c.input.Axis() != 0 {
		c.switchTo(StateRun)
	}
}

func updateRun(c *Character, _ *State) {
	if c.tryFall() || c.tryCrouch() || c.tryJump() || c.tryRoll() || c.tryAttack() {
		return
	}
	if c.input.Axis() == 0 {
		c.switchTo(StateIdle)
		return
	}
	c.faceAxis()
}

func physicsStill(c *Character, _ *State, _ float64) { c.setVelocityX(0) }

func physicsRun(c *Character, s *State, _ float64) { c.setVelocityX(c.input.Axis() * s.Speed) }

func physicsAir(c *Character, s *State, _ float64) { c.setVelocityX(c.input.Axis() * s.Speed) }

// Jump and Fall.

func enterJump(c *Character, s, _ *State) {
	c.jumpCut = false
	v := c.body.Velocity()
	v.Y = -c.params.JumpSpeed
	c.body.SetVelocity(v)
	c.play(s.Anim, true)
}

func updateJump(c *Character, _ *State) {
	v := c.body.Velocity()
	if v.Y >= 0 {
		c.switchTo(StateFall)
		return
	}
	// Rising, a wall is grabbed only while pushing into it.
	if c.input.Axis() != 0 && c.tryWallSlide() {
		return
	}
	if c.input.Released(ActionJump) {
		c.jumpCut = true
	}
	c.faceAxis()
}

func physicsJump(c *Character, s *State, dt float64) {
	physicsAir(c, s, dt)
	if !c.jumpCut {
		return
	}
	c.jumpCut = false
	v := c.body.Velocity()
	if v.Y < 0 {
		v.Y *= c.params.VariableJumpMultiplier
		c.body.SetVelocity(v)
	}
}

func updateFall(c *Character, _ *State) {
	if c.senses.Grounded {
		c.enterIdleState()
		return
	}
	if c.tryWallSlide() {
		return
	}
	c.faceAxis()
}

// Crouch family. Entering from a standing state plays the transition clip
// first; leaving parks in a stand-up sub-mode until the clip has played.

func enterCrouch(c *Character, s, prev *State) {
	c.standingUp = false
	if prev.Is(CapCrouch) {
		c.play(s.Anim, false)
		return
	}
	c.play("crouch_enter", true)
	c.machine.schedule(deferAnimation, c.params.CrouchEnterDuration, s.Anim)
}

func updateCrouch(c *Character, s *State) {
	if c.standingUp {
		c.tryFall()
		return
	}
	if c.tryFall() || c.tryAttack() || c.trySlide() {
		return
	}
	if !c.input.Held(ActionCrouch) && c.senses.CanStand {
		c.beginStandUp()
		return
	}

	moving := c.input.Axis() != 0
	switch {
	case s.ID == StateCrouchIdle && moving:
		c.switchTo(StateCrouchWalk)
	case s.ID == StateCrouchWalk && !moving:
		c.switchTo(StateCrouchIdle)
	default:
		c.faceAxis()
	}
}

func (c *Character) beginStandUp() {
	if c.standingUp {
		return
	}
	c.standingUp = true
	c.play("crouch_exit", true)
	c.machine.schedule(deferStandUp, c.params.StandUpDuration, "")
}

func physicsCrouchWalk(c *Character, s *State, _ float64) {
	if c.standingUp {
		c.setVelocityX(0)
		return
	}
	c.setVelocityX(c.input.Axis() * s.Speed)
}

func exitCrouch(c *Character, _, _ *State) { c.standingUp = false }

// Roll and Slide.

func updateRoll(c *Character, s *State) {
	if c.tryFall() {
		return
	}
	if s.Elapsed(c.now) >= s.Duration {
		c.enterIdleState()
	}
}

func updateSlide(c *Character, s *State) {
	if c.tryFall() {
		return
	}
	if s.Elapsed(c.now) >= s.Duration {
		c.switchTo(StateCrouchIdle)
	}
}

func physicsDash(c *Character, s *State, _ float64) {
	c.setVelocityX(c.facing * s.Curve.Eval(s.Progress(c.now)) * s.Speed)
}

func exitRoll(c *Character, _, _ *State) { c.rollReadyAt = c.now + c.params.Roll.Cooldown }

func exitSlide(c *Character, _, _ *State) { c.slideReadyAt = c.now + c.params.Slide.Cooldown }

// Wall slide and wall jump.

func enterWallSlide(c *Character, s, _ *State) {
	c.facing = -c.wallDir
	c.play(s.Anim, false)
}

func updateWallSlide(c *Character, _ *State) {
	if c.senses.Grounded {
		c.enterIdleState()
		return
	}
	if c.input.Pressed(ActionJump) {
		c.switchTo(StateWallJump)
		return
	}
	if !c.touchingWall(c.wallDir) || c.input.Axis()*c.wallDir < 0 {
		c.switchTo(StateFall)
	}
}

func physicsWallSlide(c *Character, s *State, _ float64) {
	v := c.body.Velocity()
	v.X = 0
	v.Y = min(v.Y, s.Speed)
	c.body.SetVelocity(v)
}

func enterWallJump(c *Character, s, _ *State) {
	s.dir = -c.wallDir
	c.facing = s.dir
	c.jumpPressedAt = math.Inf(-1)
	c.body.SetVelocity(entity.Vec2{X: s.dir * s.Speed, Y: -c.params.WallJump.Vertical})
	c.play(s.Anim, true)
}

func updateWallJump(c *Character, s *State) {
	if s.Elapsed(c.now) >= s.Duration {
		c.enterIdleState()
	}
}

// physicsDirected drives timed states that move along s.dir.
func physicsDirected(c *Character, s *State, _ float64) {
	c.setVelocityX(s.dir * s.Curve.Eval(s.Progress(c.now)) * s.Speed)
}

// Attacks.

func enterAttack(c *Character, s, _ *State) {
	s.triggered = false
	c.play(s.Anim, true)
}

func updateAttack(c *Character, s *State) {
	if c.tryFall() {
		return
	}
	a := s.Attack
	el := s.Elapsed(c.now)

	if !s.triggered && el >= a.TriggerTime {
		s.triggered = true
		c.resolveAttack(a)
	}

	if el >= a.Duration-a.EndOffset {
		if s.Next != StateNone && c.comboRequested(s) {
			c.switchTo(s.Next)
			return
		}
		if c.tryDash() {
			return
		}
	}

	if el >= a.Duration {
		c.enterIdleState()
	}
}

// comboRequested reports an attack press made after this attack's damage
// frame, including one made this tick.
func (c *Character) comboRequested(s *State) bool {
	return c.atkPressedAt > s.enteredAt+s.Attack.TriggerTime || c.input.Pressed(ActionAttack)
}

// Hurt and Death.

func enterHurt(c *Character, s, _ *State) {
	c.body.SetVelocity(entity.Vec2{})
	c.body.AddImpulse(c.knockback)
	c.knockback = entity.Vec2{}
	c.play(s.Anim, true)
}

func updateHurt(c *Character, s *State) {
	if s.Elapsed(c.now) >= s.Duration {
		c.enterIdleState()
	}
}

func enterDeath(c *Character, s, _ *State) {
	c.body.SetVelocity(entity.Vec2{})
	c.play(s.Anim, true)
	c.events.Emit(event.Event{Kind: event.KindDied, Source: c.id, Life: c.life, Time: c.now})
}

func physicsDead(c *Character, _ *State, _ float64) { c.body.SetVelocity(entity.Vec2{}) }

// FakeWalk.

func enterFakeWalk(c *Character, s, _ *State) {
	c.facing = s.dir
	c.play(s.Anim, false)
}

func updateFakeWalk(c *Character, s *State) {
	if c.tryFall() {
		return
	}
	if s.Elapsed(c.now) >= s.Duration {
		c.enterIdleState()
	}
}
