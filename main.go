package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/epicycles/internal/config"
	"github.com/iburimskiy/epicycles/internal/game"
	"github.com/iburimskiy/epicycles/internal/geom"
	"github.com/iburimskiy/epicycles/internal/log"
	"github.com/iburimskiy/epicycles/internal/scene"
	"github.com/iburimskiy/epicycles/internal/sonify"
	"github.com/iburimskiy/epicycles/internal/svgpath"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.svg]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if cfg.SVG == "" && flag.NArg() > 0 {
		cfg.SVG = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lg := log.New(cfg.LogLevel, cfg.LogDir)

	if cfg.SVG == "" {
		name, err := pickSVG()
		if err != nil {
			lg.Errorf("file dialog: %v", err)
		}
		cfg.SVG = name
	}

	var s *scene.Scene
	if cfg.SVG != "" {
		var err error
		if s, err = scene.Load(cfg.SVG, cfg, lg); err != nil {
			lg.Errorf("%v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		lg.Info("Loaded SVG", slog.String("svg", cfg.SVG),
			slog.Int("points", len(s.Outline)), slog.Int("arrows", s.Figure.Len()))
	}

	if cfg.Export != "" {
		if err := export(cfg.Export, s, cfg.Points); err != nil {
			lg.Errorf("export: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		lg.Infof("exported %d outline points to %s", cfg.Points, cfg.Export)
		return
	}

	player := sonify.NewPlayer(beep.SampleRate(cfg.SampleRate), cfg.AudioRate, config.ScopeRingSize)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Epicycles - Space: pause, O: open SVG, A: audio, Esc/Q: quit")
	ebiten.SetTPS(config.TPS)

	g := game.New(cfg, s, player, lg)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		lg.Errorf("%v", err)
		panic(err)
	}
}

// pickSVG asks for an SVG file. Cancelling returns an empty name.
func pickSVG() (string, error) {
	name, err := zenity.SelectFile(
		zenity.Title("Open SVG"),
		zenity.FileFilters{{
			Name:     "SVG images",
			Patterns: []string{"*.svg"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return name, err
}

// export writes n points of the reconstructed outline, traced over one
// period, as a closed SVG path.
func export(name string, s *scene.Scene, n int) error {
	if s == nil {
		return errors.New("-export needs an SVG to read")
	}
	if s.Figure.Len() == 0 || n == 0 {
		return fmt.Errorf("%s: nothing to export", s.Name)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = svgpath.WriteSVG(f, [][]geom.Point{s.Export(n)}, svgpath.WriteOptions{
		Closed: true,
		Margin: 10,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
