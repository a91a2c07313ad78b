package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	ChangedCells         int
	TotalRepainted       int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one frame: the generation shown, its population, how many
// cells were repainted and how long the frame took.
func (s *Stats) Update(generation, population, changed int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	s.ChangedCells = changed
	s.TotalRepainted += changed
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

// Summary formats the end-of-run report
func (s *Stats) Summary() string {
	return fmt.Sprintf("Final stats: %d generations in %.1f seconds\n"+
		"Average: %.1f gen/sec, %.1f avg population, %d cells repainted\n",
		s.TotalGenerations, time.Since(s.StartTime).Seconds(),
		s.GenerationsPerSecond, s.AveragePopulation, s.TotalRepainted)
}
