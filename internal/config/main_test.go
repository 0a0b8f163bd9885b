package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c, err := Load(nil)
	if nil != err {
		t.Log("unable to load defaults", err)
		t.FailNow()
	}
	if c.Mode != ModeMenu || c.FPS != 60 || c.Volume != -8 || c.AdviceTimeout != 8*time.Second {
		t.Log("defaults", c)
		t.Fail()
	}
	if c.FramePeriod() != time.Second/60 {
		t.Log("frame period", c.FramePeriod())
		t.Fail()
	}
}

var flagTests = map[string][]string{
	"mode":  {"--mode", "rhythm", "--fps", "120", "--mute"},
	"short": {"-m", "rhythm", "-R", "120", "--mute"},
}

func TestFlags(t *testing.T) {
	for name, args := range flagTests {
		c, err := Load(args)
		if nil != err || c.Mode != ModeRhythm || c.FPS != 120 || !c.Mute {
			t.Log("Case  ", name)
			t.Log("Config", c, err)
			t.Fail()
		}
	}
}

var badArgs = [][]string{
	{"--mode", "harmony"},
	{"--fps", "0"},
	{"--difficulty", "-1"},
	{"--levels", "/does/not/exist.yaml"},
	{"--advice-timeout", "soon"},
}

func TestRejects(t *testing.T) {
	for _, args := range badArgs {
		if _, err := Load(args); nil == err {
			t.Log("accepted", args)
			t.Fail()
		}
	}
}

func TestExistingFiles(t *testing.T) {
	levels := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(levels, []byte("levels: []\n"), 0o644); nil != err {
		t.FailNow()
	}
	c, err := Load([]string{"--levels", levels})
	if nil != err || c.Levels != levels {
		t.Log(c, err)
		t.Fail()
	}
}

func TestGeminiKeyFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	c, err := Load(nil)
	if nil != err || c.GeminiKey != "secret" || !c.AdviceEnabled() {
		t.Log(c, err)
		t.Fail()
	}
}
