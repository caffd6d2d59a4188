package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	CellsPerSecond       float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records a single generation's population and duration
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Finish records the totals for a batch of generations timed as a whole
func (s *Stats) Finish(generations, cellsPerGeneration int) {
	s.TotalGenerations = generations
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.GenerationsPerSecond = float64(generations) / elapsed
		s.CellsPerSecond = float64(generations) * float64(cellsPerGeneration) / elapsed
	}
}
