package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/exrok/game-of-life/model"
	"github.com/exrok/game-of-life/utils"
)

// loadConfig merges the JSON config file with any command line overrides.
// A bare positional argument is taken as the iteration count.
func loadConfig() utils.Config {
	var (
		configPath = flag.String("config", "config.json", "path to JSON config file")
		width      = flag.Int("width", 0, "grid width")
		height     = flag.Int("height", 0, "grid height")
		iterations = flag.Int("iterations", 0, "number of generations to run")
		seed       = flag.Int64("seed", 0, "seed for the initial random state")
		density    = flag.Float64("density", 0, "initial live-cell density")
		render     = flag.Bool("render", false, "render each generation to the terminal")
		verify     = flag.Bool("verify", false, "check each generation against the naive reference")
	)
	flag.Parse()

	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("Using default configuration (config file not found)")
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = *width
		case "height":
			config.Height = *height
		case "iterations":
			config.Iterations = *iterations
		case "seed":
			config.Seed = *seed
		case "density":
			config.RandomDensity = *density
		case "render":
			config.Render = *render
		case "verify":
			config.Verify = *verify
		}
	})

	if flag.NArg() > 0 {
		n, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			log.WithError(err).Fatalf("bad iteration count argument: %q", flag.Arg(0))
		}
		config.Iterations = n
	}

	return config
}

// runBenchmark times a block of Advance calls as a whole and reports
// throughput and the final checksum for cross-run comparison
func runBenchmark(config utils.Config, kernel *model.Kernel, sigChan <-chan os.Signal) {
	fmt.Printf("Grid: %dx%d | Iterations: %d | Seed: %d | Density: %.2f\n",
		config.Width, config.Height, config.Iterations, config.Seed, config.RandomDensity)

	var (
		stats     = utils.NewStats()
		completed = 0
	)
loop:
	for i := 0; i < config.Iterations; i++ {
		select {
		case <-sigChan:
			log.Warnf("interrupted after %d generations", completed)
			break loop
		default:
		}
		kernel.Advance()
		completed++
	}
	stats.Finish(completed, config.Width*config.Height)

	fmt.Printf("Completed %d generations in %.3fs\n",
		completed, time.Since(stats.StartTime).Seconds())
	fmt.Printf("Performance: %.1f gen/sec | %.0f cell updates/sec\n",
		stats.GenerationsPerSecond, stats.CellsPerSecond)
	fmt.Printf("Checksum: %016x\n", kernel.Checksum())
}

// runRender draws each generation to the terminal at the configured frame rate
func runRender(config utils.Config, kernel *model.Kernel, sigChan <-chan os.Signal) {
	var (
		renderer  = &model.TerminalRenderer{}
		stats     = utils.NewStats()
		lastFrame = time.Now()
	)

	for generation := 0; generation < config.Iterations; generation++ {
		select {
		case <-sigChan:
			fmt.Printf("\nStopped at generation %d\n", generation)
			return
		default:
		}

		renderer.Clear()
		population := kernel.Population()
		stats.Update(generation, population, time.Since(lastFrame))
		lastFrame = time.Now()

		fmt.Printf("Gen: %d | Living: %d | %.1f gen/sec | Checksum: %016x\n",
			generation, population, stats.GenerationsPerSecond, kernel.Checksum())
		renderer.Display(kernel)

		kernel.Advance()
		time.Sleep(config.FrameRate)
	}
}

// runVerify steps the kernel and the naive reference in lockstep from the
// same initial state and compares every cell after every generation
func runVerify(config utils.Config, kernel *model.Kernel, sigChan <-chan os.Signal) {
	reference := mirrorKernel(kernel)

	for generation := 1; generation <= config.Iterations; generation++ {
		select {
		case <-sigChan:
			log.Warnf("interrupted after %d generations", generation-1)
			return
		default:
		}

		kernel.Advance()
		reference = reference.NextGeneration()

		for y := 0; y < config.Height; y++ {
			for x := 0; x < config.Width; x++ {
				if kernel.Cell(x, y) != reference.Cell(x, y) {
					log.Fatalf("divergence at generation %d, cell (%d,%d): kernel=%v reference=%v",
						generation, x, y, kernel.Cell(x, y), reference.Cell(x, y))
				}
			}
		}
	}

	fmt.Printf("Verified %d generations on %dx%d | Checksum: %016x\n",
		config.Iterations, config.Width, config.Height, kernel.Checksum())
}

// mirrorKernel copies the kernel's current state into a fresh reference board
func mirrorKernel(kernel *model.Kernel) *model.Reference {
	reference := model.NewReference(kernel.GetWidth(), kernel.GetHeight())
	for y := 0; y < kernel.GetHeight(); y++ {
		for x := 0; x < kernel.GetWidth(); x++ {
			if kernel.Cell(x, y) {
				_ = reference.Set(x, y, true)
			}
		}
	}
	return reference
}
