package main

import (
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/exrok/game-of-life/model"
)

func main() {
	config := loadConfig()
	if err := config.Validate(); err != nil {
		log.WithError(err).Fatal("bad configuration")
	}

	kernel, err := model.NewKernel(config.Width, config.Height)
	if err != nil {
		log.WithError(err).Fatal("failed to construct board")
	}

	rng := rand.New(rand.NewSource(config.Seed))
	if err = model.Randomize(kernel, rng, config.RandomDensity); err != nil {
		log.WithError(err).Fatal("failed to seed board")
	}

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch {
	case config.Verify:
		runVerify(config, kernel, sigChan)
	case config.Render:
		runRender(config, kernel, sigChan)
	default:
		runBenchmark(config, kernel, sigChan)
	}
}
