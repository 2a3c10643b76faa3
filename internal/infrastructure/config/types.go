package config

// PhysicsConfig is the root config for physics.yaml
type PhysicsConfig struct {
	Display  DisplayConfig   `yaml:"display"`
	Physics  PhysicsSettings `yaml:"physics"`
	Jump     JumpConfig      `yaml:"jump"`
	Feedback FeedbackConfig  `yaml:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

type PhysicsSettings struct {
	// Substeps is the number of fixed physics steps per logic frame.
	Substeps     int     `yaml:"substeps"`
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"maxFallSpeed"`
}

// FixedStep returns the duration of one physics step in seconds.
func (p PhysicsConfig) FixedStep() float64 {
	return 1 / float64(p.Display.Framerate*p.Physics.Substeps)
}

// FrameTime returns the duration of one logic frame in seconds.
func (p PhysicsConfig) FrameTime() float64 {
	return 1 / float64(p.Display.Framerate)
}

type JumpConfig struct {
	ApexModifier   ApexModifierConfig `yaml:"apexModifier"`
	FallMultiplier float64            `yaml:"fallMultiplier"`
}

type ApexModifierConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Threshold         float64 `yaml:"threshold"`
	GravityMultiplier float64 `yaml:"gravityMultiplier"`
}

type FeedbackConfig struct {
	Hitstop     HitstopConfig     `yaml:"hitstop"`
	ScreenShake ScreenShakeConfig `yaml:"screenShake"`
}

type HitstopConfig struct {
	Enabled bool `yaml:"enabled"`
	Frames  int  `yaml:"frames"`
}

type ScreenShakeConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	Decay     float64 `yaml:"decay"`
}
