package character

import (
	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/event"
)

// resolveAttack lunges forward, then hits every distinct hittable in the
// attack box. It returns how many targets accepted the hit.
func (c *Character) resolveAttack(a *AttackParams) int {
	if a.Lunge != 0 {
		c.body.SweptMove(entity.Vec2{X: c.facing * a.Lunge})
	}

	box := a.Box.Mirror(c.facing).Translate(c.body.Position())
	n := min(c.probe.OverlapHittables(box, LayerHittable, c.hitBuf[:]), len(c.hitBuf))

	landed := 0
	for i := 0; i < n; i++ {
		target := c.hitBuf[i]
		if target == nil || target == Hittable(c) || seenBefore(c.hitBuf[:i], target) {
			continue
		}

		hit := Hit{
			Damage:    a.Damage,
			Knockback: entity.Vec2{X: a.Knockback.X * c.facing, Y: a.Knockback.Y},
			Attacker:  c.id,
		}
		if !target.TakeHit(hit) {
			continue
		}
		landed++

		e := event.Event{Kind: event.KindHitLanded, Source: c.id, Damage: a.Damage, Time: c.now}
		if id, ok := target.(Identified); ok {
			e.Target = id.ID()
		}
		c.events.Emit(e)
	}

	clear(c.hitBuf[:])
	return landed
}

func seenBefore(hits []Hittable, h Hittable) bool {
	for _, o := range hits {
		if o == h {
			return true
		}
	}
	return false
}
