package replay

import "github.com/younwookim/platformcore/internal/domain/character"

// FrameInput records the held input for a single frame. Press and release
// edges are derived on playback.
type FrameInput struct {
	F int     `json:"f"`           // Frame number
	X float64 `json:"x,omitempty"` // Horizontal axis
	J bool    `json:"j,omitempty"` // Jump
	C bool    `json:"c,omitempty"` // Crouch
	D bool    `json:"d,omitempty"` // Dash
	A bool    `json:"a,omitempty"` // Attack
}

func frameInput(f int, in *character.InputFrame) FrameInput {
	return FrameInput{
		F: f,
		X: in.Axis(),
		J: in.Held(character.ActionJump),
		C: in.Held(character.ActionCrouch),
		D: in.Held(character.ActionDash),
		A: in.Held(character.ActionAttack),
	}
}

func (fi FrameInput) held(a character.Action) bool {
	switch a {
	case character.ActionJump:
		return fi.J
	case character.ActionCrouch:
		return fi.C
	case character.ActionDash:
		return fi.D
	case character.ActionAttack:
		return fi.A
	}
	return false
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
