package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-manylight-renderer/pkg/integrator"
	"github.com/df07/go-manylight-renderer/pkg/log"
	"github.com/df07/go-manylight-renderer/pkg/renderer"
	"github.com/df07/go-manylight-renderer/pkg/scene"
	"github.com/urfave/cli"
)

var logger = log.New("manylight")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := renderer.DefaultConfig()

	app := cli.NewApp()
	app.Name = "manylight"
	app.Usage = "render scenes with virtual point lights and many-light clustering"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene",
			Description: `
Generate virtual lights for the scene, shoot gather points, cluster the lights
per gather group and write the final image as a PNG file.

Flags override the values of the optional JSON config file.`,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scene, s", Value: "cornell", Usage: "scene name (" + strings.Join(scene.Names(), ", ") + ")"},
				cli.StringFlag{Name: "config, c", Usage: "JSON render config"},
				cli.IntFlag{Name: "width", Value: defaults.Width, Usage: "image width"},
				cli.IntFlag{Name: "height", Value: defaults.Height, Usage: "image height"},
				cli.IntFlag{Name: "spp", Value: defaults.SamplesPerPixel, Usage: "samples per pixel"},
				cli.IntFlag{Name: "indirect", Value: defaults.IndirectLights, Usage: "indirect virtual lights"},
				cli.IntFlag{Name: "direct", Value: defaults.DirectLightsPerSource, Usage: "virtual lights per area source"},
				cli.IntFlag{Name: "groups", Value: defaults.GroupCount, Usage: "target number of gather groups"},
				cli.IntFlag{Name: "neighbors", Value: defaults.NeighborCount, Usage: "neighbor groups used by the clustering"},
				cli.IntFlag{Name: "budget", Value: defaults.ClusterBudget, Usage: "representative lights per gather group"},
				cli.IntFlag{Name: "light-groups", Value: defaults.LightGroupCount, Usage: "spatial light groups, 0 to cluster all lights together"},
				cli.StringFlag{Name: "mode", Value: string(defaults.FinalMode), Usage: "final pass: groups or scanlines"},
				cli.Int64Flag{Name: "seed", Value: defaults.Seed, Usage: "random seed"},
				cli.IntFlag{Name: "workers", Value: defaults.NumWorkers, Usage: "parallel workers, 0 for one per CPU"},
				cli.Float64Flag{Name: "gamma", Value: 2.0, Usage: "gamma used for the PNG"},
				cli.StringFlag{Name: "out, o", Value: "out.png", Usage: "image filename"},
				cli.StringFlag{Name: "cuts", Usage: "also write the per-pixel cut size heatmap to this file"},
			},
			Action: renderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: listScenes,
		},
	}
	return app
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// buildConfig starts from the config file, if any, and applies the flags set
// on the command line
func buildConfig(ctx *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		loaded, err := renderer.LoadConfig(path)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	ints := []struct {
		flag  string
		value *int
	}{
		{"width", &config.Width},
		{"height", &config.Height},
		{"spp", &config.SamplesPerPixel},
		{"indirect", &config.IndirectLights},
		{"direct", &config.DirectLightsPerSource},
		{"groups", &config.GroupCount},
		{"neighbors", &config.NeighborCount},
		{"budget", &config.ClusterBudget},
		{"light-groups", &config.LightGroupCount},
		{"workers", &config.NumWorkers},
	}
	for _, f := range ints {
		if ctx.IsSet(f.flag) {
			*f.value = ctx.Int(f.flag)
		}
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("mode") {
		mode, err := integrator.ParseFinalMode(ctx.String("mode"))
		if err != nil {
			return config, err
		}
		config.FinalMode = mode
	}
	config.RecordCutSize = ctx.String("cuts") != ""

	return config, config.Validate()
}

func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	s, err := scene.New(ctx.String("scene"))
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(s, config, renderer.NewLogReporter(logger))
	if err != nil {
		return err
	}
	logger.Noticef("rendering %q at %dx%d, %d spp, using %d workers",
		s.Name, config.Width, config.Height, config.SamplesPerPixel, r.GetNumWorkers())

	// Interrupts cancel the render between tasks
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := r.Render(renderCtx)
	if err != nil {
		return err
	}
	logger.Noticef("render statistics\n%s", result.Stats.Table())

	if err := writePNG(ctx.String("out"), result.Image.ToRGBA(ctx.Float64("gamma"))); err != nil {
		return err
	}
	if path := ctx.String("cuts"); path != "" {
		if err := writePNG(path, result.Image.CutSizeImage()); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("while encoding %s: %w", path, err)
	}
	logger.Noticef("wrote %s", path)
	return nil
}

func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(ctx.App.Writer, "%-12s %s\n", info.Name, info.Description)
	}
	return nil
}
