package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/platformcore/internal/application/sim"
	"github.com/younwookim/platformcore/internal/domain/character"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
	input character.InputFrame
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode reads replay data from r.
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// Next returns the input for the current frame and advances
func (r *Replayer) Next() (character.InputFrame, bool) {
	if r.frame >= len(r.data.Frames) {
		return character.InputFrame{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	r.input.SetAxis(fi.X)
	for _, a := range character.Actions() {
		r.input.Set(a, fi.held(a))
	}
	return r.input, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Level returns the level the replay was recorded on
func (r *Replayer) Level() string {
	return r.data.Level
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.input = character.InputFrame{}
}

// Play feeds every remaining frame into w and returns the final snapshot.
func (r *Replayer) Play(w *sim.World) sim.Snapshot {
	for {
		in, ok := r.Next()
		if !ok {
			return w.Snapshot()
		}
		w.Step(in)
	}
}
