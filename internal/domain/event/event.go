// Package event carries gameplay notifications from characters to whoever
// is listening: the host scene, the AI, the session state.
package event

import "github.com/google/uuid"

// Kind identifies the notification.
type Kind uint8

const (
	// KindStateChanged fires after every successful state switch.
	KindStateChanged Kind = iota
	// KindTookHit fires when a character accepts damage.
	KindTookHit
	// KindHitLanded fires on the attacker for every target that accepted a hit.
	KindHitLanded
	// KindDied fires once, when a character enters Death.
	KindDied
)

func (k Kind) String() string {
	switch k {
	case KindStateChanged:
		return "StateChanged"
	case KindTookHit:
		return "TookHit"
	case KindHitLanded:
		return "HitLanded"
	case KindDied:
		return "Died"
	default:
		return "Unknown"
	}
}

// Event is a flat payload. Fields that do not apply to a Kind stay zero.
type Event struct {
	Kind   Kind
	Source uuid.UUID
	Target uuid.UUID
	Damage int
	Life   int
	From   string
	To     string
	Time   float64
}

// Handler receives events synchronously on the emitting goroutine.
type Handler func(Event)

// Bus fans events out to subscribers in registration order.
type Bus struct {
	handlers map[Kind][]Handler
	all      []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for one kind of event.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

// SubscribeAll registers h for every kind. It runs after the kind-specific handlers.
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// Emit delivers e to its subscribers.
func (b *Bus) Emit(e Event) {
	for _, h := range b.handlers[e.Kind] {
		h(e)
	}
	for _, h := range b.all {
		h(e)
	}
}
