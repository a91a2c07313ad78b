package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-term/model"
	"github.com/sheikhrachel/go-gol-term/terminal"
	"github.com/sheikhrachel/go-gol-term/utils"
)

// historySize is how many grid hashes are kept for stagnation detection
const historySize = 5

// gameTerminal is what the loop needs from a terminal session
type gameTerminal interface {
	Size() (width, height int)
	Screen() tcell.Screen
	Poll() terminal.Command
	WaitResume(ctx context.Context) terminal.Command
}

// newRNG returns the seeding PRNG; seed 0 draws one from the clock
func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// initializeGame sizes the grid to the terminal, seeds generation 0 and
// draws the frame.
func initializeGame(config utils.Config, session gameTerminal) (
	*model.Engine,
	*model.TerminalRenderer,
	*model.History,
	error,
) {
	width, height := session.Size()
	if width < model.MinGridSize || height < model.MinGridSize {
		return nil, nil, nil, errors.Errorf("[initializeGame] terminal %dx%d is too small, need at least %dx%d",
			width, height, model.MinGridSize, model.MinGridSize)
	}

	grid := model.NewGrid(width, height)
	if err := grid.Seed(config.AliveCells, newRNG(config.Seed)); err != nil {
		return nil, nil, nil, errors.Wrap(err, "[initializeGame] failed to seed grid")
	}

	renderer := model.NewTerminalRenderer(session.Screen(), width, height)
	renderer.DrawFrame()

	return model.NewEngine(grid, config.EngineWorkers()), renderer, model.NewHistory(historySize), nil
}

// updateGameState records the latest generation and returns its population
// and status label
func updateGameState(engine *model.Engine, history *model.History) (int, string) {
	var (
		grid        = engine.Grid()
		plane       = model.CurrentPlane(engine.Generation())
		livingCells = grid.CountLivingCells(plane)
		isStagnant  = history.Record(grid.Hash(plane))
	)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	return livingCells, status
}

// formatStatus builds the bottom-border status label
func formatStatus(config utils.Config, livingCells int, status string) string {
	if !config.ShowStats {
		return ""
	}
	return fmt.Sprintf(" Pop: %d | %s ", livingCells, status)
}

// sleep waits for d or until ctx is done, reporting whether to keep going
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// runGame drives seed -> { poll -> advance -> diff -> paint -> sleep } until
// the generation cap, a quit key or ctx cancellation.
func runGame(ctx context.Context, config utils.Config, session gameTerminal) (*utils.Stats, error) {
	engine, renderer, history, err := initializeGame(config, session)
	if err != nil {
		return nil, err
	}

	var (
		stats         = utils.NewStats()
		lastFrameTime = time.Now()
	)

	paint := func() {
		livingCells, status := updateGameState(engine, history)
		painted := renderer.Paint(engine.Generation(), engine.Changes(),
			formatStatus(config, livingCells, status))
		stats.Update(engine.Generation(), livingCells, painted, time.Since(lastFrameTime))
		lastFrameTime = time.Now()
	}

	paint()
	for engine.Generation() < config.MaxGenerations {
		switch session.Poll() {
		case terminal.CommandQuit:
			return stats, nil
		case terminal.CommandPause:
			if session.WaitResume(ctx) == terminal.CommandQuit {
				return stats, nil
			}
		}
		if ctx.Err() != nil {
			return stats, nil
		}

		engine.Advance()
		paint()

		if !sleep(ctx, config.Delay()) {
			return stats, nil
		}
	}
	return stats, nil
}
