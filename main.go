package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-term/terminal"
	"github.com/sheikhrachel/go-gol-term/utils"
)

const configFile = "config.json"

func main() {
	log.SetFlags(0)
	log.SetPrefix("gol: ")
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration - fall back to defaults if the file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.Printf("using default configuration: %v", err)
	}

	config, err = utils.ParseArgs(args, config)
	if err != nil {
		if errors.Cause(err) == utils.ErrHelp {
			fmt.Fprint(os.Stderr, utils.Usage)
			return 0
		}
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, utils.Usage)
		return 2
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := terminal.Open()
	if err != nil {
		log.Printf("terminal setup failed: %v", err)
		return 1
	}

	stats, err := playSession(ctx, config, session)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	fmt.Print(stats.Summary())
	return 0
}

// playSession runs the game and restores the terminal on every exit path,
// including a panic out of the engine.
func playSession(ctx context.Context, config utils.Config, session *terminal.Session) (*utils.Stats, error) {
	defer session.Close()
	return runGame(ctx, config, session)
}
