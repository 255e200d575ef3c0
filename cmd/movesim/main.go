package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scenario"
	"github.com/milk9111/platformer/sim"
)

func main() {
	configPath := flag.String("config", "", "settings file (defaults to ./platformer.yaml if present)")
	scriptName := flag.String("script", "run_jump", "input script in prefabs/scripts (basename, .tengo optional)")
	levelName := flag.String("level", "", "level prefab (defaults to prefabs.level setting)")
	frames := flag.Int("frames", 300, "number of frame ticks to simulate")
	dt := flag.Float64("dt", 0, "frame tick seconds (defaults to 1/sim.frame_rate)")
	jitter := flag.Float64("jitter", 0, "random spread added to each frame dt, in seconds")
	seed := flag.Int64("seed", 1, "seed for frame dt jitter")
	quiet := flag.Bool("q", false, "print only the summary")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	prefabs.Dir = cfg.Prefabs.Dir
	level := *levelName
	if level == "" {
		level = cfg.Prefabs.Level
	}
	levelSpec, err := prefabs.LoadLevelSpec(level)
	if err != nil {
		log.Fatal(err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	script, err := scenario.Load(*scriptName)
	if err != nil {
		log.Fatal(err)
	}

	runner, err := sim.NewRunner(sim.Options{
		Level:         *levelSpec,
		Player:        *playerSpec,
		FixedStep:     cfg.FixedStep(),
		MaxFrameDelta: cfg.Sim.MaxFrameDelta,
		Input:         script.WithLogger(logger),
		Logger:        logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	frameDt := *dt
	if frameDt <= 0 {
		frameDt = cfg.FrameStep()
	}
	rng := rand.New(rand.NewSource(*seed))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	logger.Info("simulating", "script", script.Name(), "level", levelSpec.Name, "frames", *frames, "dt", frameDt, "jitter", *jitter)
	for i := 0; i < *frames; i++ {
		step := frameDt
		if *jitter > 0 {
			step += (rng.Float64()*2 - 1) * *jitter
		}
		entry := runner.Frame(step)
		if !*quiet {
			fmt.Fprintln(out, entry)
		}
	}
	fmt.Fprintln(out, sim.Summarize(runner.Trace()))
}
