package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

// Modes accepted by --mode.
const (
	ModeMenu     = "menu"
	ModeSight    = "sight"
	ModeIdentify = "identify"
	ModeRhythm   = "rhythm"
)

type Config struct {
	Mode       string
	Levels     string
	Chart      string
	Difficulty int
	Database   string
	LogFile    string
	FPS        float64
	Seed       int64
	Mute       bool
	Volume     float64
	Music      string

	AdviceURL     string
	GeminiKey     string
	GeminiModel   string
	AdviceTimeout time.Duration
}

// FramePeriod is the target time between two rendered frames.
func (c *Config) FramePeriod() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / c.FPS)
}

// AdviceEnabled reports whether any advice backend is configured.
func (c *Config) AdviceEnabled() bool {
	return c.AdviceURL != "" || c.GeminiKey != ""
}

// Load parses command line arguments, without the program name. Values can
// also come from OPUS_* environment variables.
func Load(args []string) (*Config, error) {
	var c Config
	app := kingpin.New("opus", "Music theory trainer for the terminal.")
	app.Version(Version)
	app.DefaultEnvars()

	app.Flag("mode", "Start straight into a game: menu, sight, identify or rhythm").
		Default(ModeMenu).Short('m').EnumVar(&c.Mode, ModeMenu, ModeSight, ModeIdentify, ModeRhythm)
	app.Flag("levels", "YAML level catalog for note identification").ExistingFileVar(&c.Levels)
	app.Flag("chart", "StepMania .sm chart for rhythm mode").ExistingFileVar(&c.Chart)
	app.Flag("difficulty", "Chart difficulty index").Default("0").Short('d').IntVar(&c.Difficulty)
	app.Flag("db", "Score database").Default("./scores.db").StringVar(&c.Database)
	app.Flag("log-file", "Log destination").Default("opus.log").StringVar(&c.LogFile)
	app.Flag("fps", "Frames per second").Default("60").Short('R').Float64Var(&c.FPS)
	app.Flag("seed", "Random seed, 0 picks one").Default("0").Int64Var(&c.Seed)
	app.Flag("mute", "Disable sound").BoolVar(&c.Mute)
	app.Flag("volume", "Volume in dB").Default("-8").Float64Var(&c.Volume)
	app.Flag("music", "Backing track (.mp3 or .ogg) for rhythm mode").ExistingFileVar(&c.Music)
	app.Flag("advice-url", "Maestro server advice endpoint").StringVar(&c.AdviceURL)
	app.Flag("gemini-key", "Gemini API key, used when no advice URL is set").Envar("GEMINI_API_KEY").StringVar(&c.GeminiKey)
	app.Flag("gemini-model", "Gemini model").Default("gemini-2.5-flash").StringVar(&c.GeminiModel)
	app.Flag("advice-timeout", "Give up on advice after").Default("8s").DurationVar(&c.AdviceTimeout)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if c.FPS <= 0 || c.FPS > 1000 {
		return nil, fmt.Errorf("fps must be within (0, 1000], got %v", c.FPS)
	}
	if c.Difficulty < 0 {
		return nil, fmt.Errorf("difficulty must not be negative, got %v", c.Difficulty)
	}
	c.Mode = strings.ToLower(c.Mode)
	return &c, nil
}
