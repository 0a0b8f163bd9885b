package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"git.lost.host/meutraa/opus/internal/advice"
	"git.lost.host/meutraa/opus/internal/audio"
	"git.lost.host/meutraa/opus/internal/config"
	"git.lost.host/meutraa/opus/internal/game"
	"git.lost.host/meutraa/opus/internal/parser"
	"git.lost.host/meutraa/opus/internal/render"
	"git.lost.host/meutraa/opus/internal/score"
	"git.lost.host/meutraa/opus/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	if err := godotenv.Load(); nil != err && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to read .env: %w", err)
	}
	cfg, err := config.Load(os.Args[1:])
	if nil != err {
		return err
	}

	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var psr parser.Parser = &parser.DefaultParser{}
	var lpsr parser.CatalogParser = &parser.LevelParser{Staff: game.TrebleIdentification}
	var scr score.Scorer = &score.DefaultScorer{}

	// The terminal belongs to the renderer, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	if err := scr.Init(cfg.Database); nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}
	defer scr.Deinit()

	catalog := &game.DefaultCatalog
	if cfg.Levels != "" {
		if catalog, err = lpsr.Parse(cfg.Levels); nil != err {
			return err
		}
	}

	var chart *game.Chart
	if cfg.Chart != "" {
		charts, err := psr.Parse(cfg.Chart)
		if nil != err {
			return fmt.Errorf("unable to parse chart: %w", err)
		}
		if cfg.Difficulty >= len(charts) {
			return fmt.Errorf("chart has %v difficulties, %v requested", len(charts), cfg.Difficulty)
		}
		chart = charts[cfg.Difficulty]
	}

	var player audio.Player = audio.Silent{}
	synth := audio.NewSynth(audio.Options{Volume: cfg.Volume, Mute: cfg.Mute})
	if err := synth.Open(); nil != err {
		log.Println("continuing without sound:", err)
		synth = nil
	} else {
		defer synth.Close()
		player = synth
	}

	var music *audio.Track
	if cfg.Music != "" {
		if music, err = audio.LoadTrack(cfg.Music); nil != err {
			log.Println("unable to load music:", err)
		} else {
			defer music.Close()
		}
	}

	var provider advice.Provider
	switch {
	case cfg.AdviceURL != "":
		provider = advice.NewRemote(cfg.AdviceURL, nil)
	case cfg.GeminiKey != "":
		provider = advice.NewGemini(advice.GeminiConfig{APIKey: cfg.GeminiKey, Model: cfg.GeminiModel})
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		if err := r.Deinit(); nil != err {
			log.Println(err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &Program{
		Config:   cfg,
		Renderer: r,
		Theme:    th,
		Scorer:   scr,
		Audio:    player,
		Synth:    synth,
		Music:    music,
		Advisor:  advice.NewAdvisor(provider, cfg.AdviceTimeout),
		Catalog:  catalog,
		Chart:    chart,
	}
	p.Init(ctx)
	r.RenderLoop(cfg.FramePeriod(), func(dt time.Duration) bool {
		return p.Frame(keyChannel, dt)
	})
	return nil
}
