// Package sandbox is the interactive scene: one level, keyboard control of
// the player, debug overlays for colliders, attack boxes and enemy paths.
package sandbox

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/younwookim/platformcore/internal/application/replay"
	"github.com/younwookim/platformcore/internal/application/scene"
	"github.com/younwookim/platformcore/internal/application/sim"
	"github.com/younwookim/platformcore/internal/application/state"
	"github.com/younwookim/platformcore/internal/application/system"
	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

var (
	colorBG        = colornames.Midnightblue
	colorWall      = colornames.Slategray
	colorBreakable = colornames.Sandybrown
	colorPlayer    = colornames.Limegreen
	colorEnemy     = colornames.Crimson
	colorDead      = colornames.Dimgray
	colorFlash     = colornames.White
	colorAttack    = fade(colornames.Orange, 0.5)
	colorPath      = colornames.Cyan
	colorBlocked   = fade(colornames.Darkred, 0.35)
	colorHealthBG  = colornames.Dimgray
	colorHealthFG  = colornames.Limegreen
)

// Builder creates a fresh world. It is called on start, restart and reload.
type Builder func() (*sim.World, error)

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Sandbox) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecording records every played frame and saves to filename on game
// over, on F5 and on exit. An empty filename picks a timestamped one.
func WithRecording(filename string) Option {
	return func(s *Sandbox) {
		s.recordFilename = filename
		s.recording = true
	}
}

// WithReload rebuilds the world whenever reload fires.
func WithReload(reload <-chan struct{}) Option {
	return func(s *Sandbox) { s.reload = reload }
}

// WithKeys replaces the ebiten keyboard. Tests drive the scene through it.
func WithKeys(pressed, justPressed system.KeyState) Option {
	return func(s *Sandbox) {
		s.pressed = pressed
		s.justPressed = justPressed
	}
}

// WithSeed fixes the seed used for screen shake and stored in recordings.
func WithSeed(seed int64) Option {
	return func(s *Sandbox) { s.seed = seed }
}

// Sandbox implements scene.Scene.
type Sandbox struct {
	build   Builder
	physics *config.PhysicsConfig
	logger  *log.Logger

	world    *sim.World
	state    state.Session
	input    *system.InputSystem
	feedback *system.FeedbackSystem

	pressed     system.KeyState
	justPressed system.KeyState
	reload      <-chan struct{}

	seed           int64
	recording      bool
	recorder       *replay.Recorder
	recordFilename string

	showDebug bool
	screenW   int
	screenH   int
}

var _ scene.Scene = (*Sandbox)(nil)

// New builds the first world and returns the scene.
func New(build Builder, physics *config.PhysicsConfig, opts ...Option) (*Sandbox, error) {
	s := &Sandbox{
		build:       build,
		physics:     physics,
		logger:      log.New(io.Discard),
		pressed:     ebiten.IsKeyPressed,
		justPressed: inpututil.IsKeyJustPressed,
		seed:        time.Now().UnixNano(),
		screenW:     physics.Display.ScreenWidth,
		screenH:     physics.Display.ScreenHeight,
	}
	for _, opt := range opts {
		opt(s)
	}

	w, err := build()
	if err != nil {
		return nil, err
	}
	s.start(w)
	return s, nil
}

// start swaps in w and resets everything tied to the previous world.
func (s *Sandbox) start(w *sim.World) {
	if s.world != nil {
		s.world.Close()
	}
	s.world = w
	s.state = state.Live
	s.input = system.NewInputSystemWith(system.DefaultBindings(), s.pressed)
	s.feedback = system.NewFeedbackSystem(&s.physics.Feedback, w.Bus(), w.Player().ID(), s.seed)
	if s.recording {
		s.recorder = replay.NewRecorder(s.seed, w.Level().ID)
		s.logger.Info("recording", "seed", s.seed, "level", w.Level().ID)
	}
}

// World returns the running world.
func (s *Sandbox) World() *sim.World { return s.world }

// State returns the session state.
func (s *Sandbox) State() state.Session { return s.state }

// Recorder returns the active recorder, nil when not recording.
func (s *Sandbox) Recorder() *replay.Recorder { return s.recorder }

// OnEnter implements scene.Scene.
func (s *Sandbox) OnEnter() {
	s.logger.Debug("enter", "level", s.world.Level().ID)
}

// OnExit saves the recording and stops background searches.
func (s *Sandbox) OnExit() {
	s.saveRecording()
	s.world.Close()
}

// Update implements scene.Scene. The world runs at its own fixed frame
// time, one logic frame per call.
func (s *Sandbox) Update(dt float64) (scene.Scene, error) {
	select {
	case <-s.reload:
		s.rebuild("config reloaded")
	default:
	}

	if s.justPressed(ebiten.KeyQ) {
		return nil, ebiten.Termination
	}
	if s.justPressed(ebiten.KeyTab) {
		s.showDebug = !s.showDebug
	}

	if s.state.Simulating() && s.feedback.Frozen() {
		return nil, nil
	}

	if s.justPressed(ebiten.KeyEscape) {
		s.state = s.state.TogglePause()
		return nil, nil
	}
	if s.state.Restartable() && (s.justPressed(ebiten.KeyZ) || s.justPressed(ebiten.KeyR)) {
		s.saveRecording()
		s.rebuild("restart")
		return nil, nil
	}
	if s.state.Simulating() {
		s.updateLive()
	}
	return nil, nil
}

func (s *Sandbox) updateLive() {
	if s.justPressed(ebiten.KeyF5) {
		s.saveRecording()
	}

	frame := s.input.Poll()
	if s.recorder != nil {
		s.recorder.RecordFrame(frame)
	}
	s.world.Step(frame)
	s.feedback.Update()

	if s.world.Player().IsDead() {
		s.state = state.Dead
		s.saveRecording()
	}
}

// rebuild replaces the world. A failing builder keeps the current one.
func (s *Sandbox) rebuild(reason string) {
	w, err := s.build()
	if err != nil {
		s.logger.Error("rebuild failed", "reason", reason, "err", err)
		return
	}
	s.logger.Info(reason, "level", w.Level().ID)
	s.start(w)
}

func (s *Sandbox) saveRecording() {
	if s.recorder == nil || s.recorder.FrameCount() == 0 {
		return
	}

	filename := s.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := s.recorder.Save(filename); err != nil {
		s.logger.Error("failed to save recording", "file", filename, "err", err)
		return
	}
	s.logger.Info("recording saved", "file", filename, "frames", s.recorder.FrameCount())
}

// camera centers on the player inside the stage bounds, then shakes.
func (s *Sandbox) camera() (float64, float64) {
	stage := s.world.Stage()
	p := s.world.Player().Bounds().Center()

	camX := clamp(p.X-float64(s.screenW)/2, 0, stage.PixelWidth()-float64(s.screenW))
	camY := clamp(p.Y-float64(s.screenH)/2, 0, stage.PixelHeight()-float64(s.screenH))
	dx, dy := s.feedback.ShakeOffset()
	return math.Round(camX + dx), math.Round(camY + dy)
}

// Draw implements scene.Scene.
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	camX, camY := s.camera()

	s.drawTiles(screen, camX, camY)
	if s.showDebug {
		s.drawGrid(screen, camX, camY)
	}
	for _, e := range s.world.Enemies() {
		s.drawActor(screen, e, colorEnemy, camX, camY)
		if s.showDebug {
			s.drawPath(screen, e, camX, camY)
		}
	}
	s.drawActor(screen, s.world.Player(), colorPlayer, camX, camY)

	s.drawUI(screen)

	s.drawOverlay(screen)
}

func (s *Sandbox) drawTiles(screen *ebiten.Image, camX, camY float64) {
	stage := s.world.Stage()
	size := stage.TileSize
	startX, startY := int(camX)/size, int(camY)/size
	endX := (int(camX)+s.screenW)/size + 1
	endY := (int(camY)+s.screenH)/size + 1

	for ty := max(startY, 0); ty <= endY && ty < stage.Height; ty++ {
		for tx := max(startX, 0); tx <= endX && tx < stage.Width; tx++ {
			tile := stage.GetTile(tx, ty)
			if !tile.Solid {
				continue
			}
			c := colorWall
			if tile.Type == entity.TileBreakable {
				c = colorBreakable
			}
			r := stage.TileRect(tx, ty)
			fillRect(screen, r, camX, camY, c)
		}
	}
}

// drawGrid shades navigation cells the pathfinder treats as blocked.
func (s *Sandbox) drawGrid(screen *ebiten.Image, camX, camY float64) {
	grid := s.world.Grid()
	size := grid.CellSize()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.Walkable(x, y) {
				continue
			}
			c := grid.CellToWorld(x, y)
			r := entity.Rect{X: c.X - size/2, Y: c.Y - size/2, W: size, H: size}
			fillRect(screen, r, camX, camY, colorBlocked)
		}
	}
}

func (s *Sandbox) drawActor(screen *ebiten.Image, a *sim.Actor, base color.RGBA, camX, camY float64) {
	c := base
	switch {
	case a.IsDead():
		c = colorDead
	case a.IsInvincible() && s.world.Frame()%4 < 2:
		c = colorFlash
	}
	fillRect(screen, a.Bounds(), camX, camY, c)

	// Facing marker at head height.
	b := a.Bounds()
	eyeX := b.Center().X + a.Facing()*b.W/4
	ebitenutil.DrawRect(screen, eyeX-camX-1, b.Y-camY+4, 2, 2, colornames.Black)

	if !s.showDebug {
		return
	}
	if st := a.Machine().Current(); st.Attack != nil {
		box := st.Attack.Box.Mirror(a.Facing()).Translate(a.Position())
		fillRect(screen, box, camX, camY, colorAttack)
	}
	p := a.Position()
	ebitenutil.DebugPrintAt(screen, a.State().String(), int(p.X-camX)-12, int(b.Y-camY)-14)
}

func (s *Sandbox) drawPath(screen *ebiten.Image, a *sim.Actor, camX, camY float64) {
	if a.Brain == nil || a.Brain.Path() == nil {
		return
	}
	pts := a.Brain.Path().Points()
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen,
			float32(pts[i-1].X-camX), float32(pts[i-1].Y-camY),
			float32(pts[i].X-camX), float32(pts[i].Y-camY),
			1, colorPath, false)
	}
	if wp := a.Brain.Waypoint(); wp < len(pts) {
		p := pts[wp]
		vector.DrawFilledRect(screen, float32(p.X-camX)-2, float32(p.Y-camY)-2, 4, 4, colorPath, false)
	}
}

func (s *Sandbox) drawUI(screen *ebiten.Image) {
	player := s.world.Player()

	barX, barY := 10.0, float64(s.screenH-20)
	barW, barH := 100.0, 10.0
	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	ratio := clamp(float64(player.Life())/float64(player.Params().MaxLife), 0, 1)
	ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)

	status := fmt.Sprintf("%s  frame %d  %s", s.world.Level().Name, s.world.Frame(), player.State())
	if s.recorder != nil {
		status += "  REC"
	}
	ebitenutil.DebugPrintAt(screen, status, 10, s.screenH-36)
	ebitenutil.DebugPrint(screen, "A/D: Move | W: Jump | S: Crouch | Shift: Dash | J: Attack | Tab: Debug | ESC: Pause")
}

func (s *Sandbox) drawOverlay(screen *ebiten.Image) {
	title, hint := s.state.Caption()
	if title == "" {
		return
	}

	tint := fade(colornames.Black, 0.5)
	text := title + "\n\n" + hint
	if s.state.Restartable() {
		tint = fade(colornames.Darkred, 0.7)
		text = fmt.Sprintf("%s\n\nSurvived %d frames\n\n%s", title, s.world.Frame(), hint)
	}
	ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(s.screenH), tint)
	ebitenutil.DebugPrintAt(screen, text, s.screenW/2-60, s.screenH/2-30)
}

func fillRect(screen *ebiten.Image, r entity.Rect, camX, camY float64, c color.Color) {
	ebitenutil.DrawRect(screen, r.X-camX, r.Y-camY, r.W, r.H, c)
}

// fade scales a color by alpha, keeping it premultiplied.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}
