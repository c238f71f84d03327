// Package main is the entry point for the taskcli CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskcli/internal/backend/rest"
	"taskcli/internal/cli"
	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/logging"
	"taskcli/internal/service"
	"taskcli/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory. The shell subscribes to session expiry here;
	// the transport layer only clears the store and signals.
	factory := func(ctx context.Context, cfg *config.Config, store *session.Store) (service.Service, error) {
		client, err := rest.New(cfg, store, logging.New(cfg.Debug))
		if err != nil {
			return nil, err
		}
		client.Gateway().OnSessionExpired(func() {
			fmt.Fprintln(os.Stderr, "session expired; please log in again")
		})
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
