package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/config"
	"github.com/rs/zerolog/log"
)

const usage = `usage: gridiron [-config file] [-v] <command> [flags]

commands:
  login            log in and remember the session
  logout           forget the session
  whoami           show the logged in user
  register         create an account
  profile update   change name, alias or password
  leagues search   find leagues to join
  leagues join     join a league
  leagues create   create a league in the current season
  seasons weeks    preview the weeks of a season
  seasons create   create a season (admin)
  teams list       list teams
  teams create     create a team
  players create   create a player (admin)
  players batch    upload a JSON file of players (admin)
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("gridiron", flag.ContinueOnError)
	configPath := global.String("config", getEnv("GRIDIRON_CONFIG", ""), "path to a yaml config file")
	verbose := global.Bool("v", false, "debug logging")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := global.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridiron: %v\n", err)
		return 2
	}
	setupLogger(cfg, *verbose)

	cmd, rest, ok := lookup(global.Args())
	if !ok {
		global.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := setupServices(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to start")
		return 1
	}
	defer services.Close()

	if cmd.session {
		if err := restoreSession(ctx, services); err != nil {
			log.Warn().Err(err).Msg("failed to restore session")
		}
	}

	if err := cmd.run(ctx, services, rest, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", apierr.UserMessage(err))
		log.Debug().Err(err).Str("command", cmd.name).Msg("command failed")
		return 1
	}
	return 0
}

// restoreSession loads the saved token and waits for its profile
func restoreSession(ctx context.Context, services *Services) error {
	if err := services.Session.Init(ctx); err != nil {
		return err
	}
	_, err := services.Session.WaitSettled(ctx)
	return err
}
