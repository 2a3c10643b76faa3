package character

import "math"

// Guards try one transition each and report whether it happened. A state's
// update returns as soon as one succeeds.

func (c *Character) switchTo(id StateID) bool {
	return c.machine.SwitchState(id)
}

func (c *Character) tryFall() bool {
	if c.senses.Grounded {
		return false
	}
	return c.switchTo(StateFall)
}

func (c *Character) tryCrouch() bool {
	if !c.senses.Grounded {
		return false
	}
	if !c.input.Held(ActionCrouch) && c.senses.CanStand {
		return false
	}
	if c.input.Axis() != 0 {
		return c.switchTo(StateCrouchWalk)
	}
	return c.switchTo(StateCrouchIdle)
}

func (c *Character) jumpBuffered() bool {
	return c.now-c.jumpPressedAt <= c.params.JumpBuffer
}

func (c *Character) tryJump() bool {
	if !c.senses.Grounded || !c.senses.CanStand || !c.jumpBuffered() {
		return false
	}
	c.jumpPressedAt = math.Inf(-1)
	return c.switchTo(StateJump)
}

func (c *Character) tryRoll() bool {
	if !c.senses.Grounded || c.IsCrouching() || !c.input.Pressed(ActionDash) || c.now < c.rollReadyAt {
		return false
	}
	return c.switchTo(StateRoll)
}

func (c *Character) trySlide() bool {
	if !c.senses.Grounded || !c.IsCrouching() || !c.input.Pressed(ActionDash) || c.now < c.slideReadyAt {
		return false
	}
	return c.switchTo(StateSlide)
}

// tryDash picks Roll or Slide by crouch state.
func (c *Character) tryDash() bool {
	if c.IsCrouching() {
		return c.trySlide()
	}
	return c.tryRoll()
}

// wallSide is the side the character is pressing toward: input first,
// facing otherwise.
func (c *Character) wallSide() float64 {
	if x := c.input.Axis(); x != 0 {
		return math.Copysign(1, x)
	}
	return c.facing
}

func (c *Character) touchingWall(side float64) bool {
	if side < 0 {
		return c.senses.WallLeft
	}
	return c.senses.WallRight
}

func (c *Character) tryWallSlide() bool {
	if c.senses.Grounded {
		return false
	}
	side := c.wallSide()
	if !c.touchingWall(side) {
		return false
	}
	c.wallDir = side
	return c.switchTo(StateWallSlide)
}

func (c *Character) tryAttack() bool {
	if !c.senses.Grounded || !c.input.Pressed(ActionAttack) {
		return false
	}
	if c.IsCrouching() {
		return c.switchTo(StateCrouchAttack)
	}
	return c.switchTo(StateAttackOne)
}

// enterIdleState is the funnel every timed state returns through. It re-runs
// the wall, fall and crouch guards before settling on Idle or Run.
func (c *Character) enterIdleState() {
	if c.tryWallSlide() || c.tryFall() || c.tryCrouch() {
		return
	}
	if c.input.Axis() != 0 {
		c.switchTo(StateRun)
		return
	}
	c.switchTo(StateIdle)
}
