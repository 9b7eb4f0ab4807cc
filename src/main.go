package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"elevsim/src/config"
	"elevsim/src/console"
	"elevsim/src/control"
	"elevsim/src/dispatcher"
	"elevsim/src/remote"
	"elevsim/src/simulator"
	"elevsim/src/utils"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "elevsim.yaml", "YAML config file, ignored if missing")
	envPath := flag.String("env", ".env", "dotenv file with ELEVSIM_ overrides, ignored if missing")
	connect := flag.String("connect", "", "control a running simulator at this address instead of starting one")
	headless := flag.Bool("headless", false, "run without the interactive console")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	consoleActive := *connect != "" || !*headless
	closeLog, err := utils.InitLogger(cfg.LogLevel, cfg.LogFile, consoleActive)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *connect != "" {
		err = runClient(ctx, *connect)
	} else {
		err = runSimulation(ctx, cfg, *headless)
	}
	if err != nil {
		slog.Error("Exiting", "err", err)
		closeLog()
		os.Exit(1)
	}
}

func runClient(ctx context.Context, addr string) error {
	client, err := remote.Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer client.Close()
	slog.Info("Connected", "addr", client.RemoteAddr())
	return console.Run(ctx, client, os.Stdout)
}

// runSimulation stops everything once the console quits, a signal arrives or
// any part fails.
func runSimulation(ctx context.Context, cfg config.Config, headless bool) error {
	d, err := dispatcher.New(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	sim := simulator.New(d, cfg.FleetSize, cfg.TickInterval)
	ctrl := control.New(d, sim)
	var srv *remote.Server
	if cfg.RemoteAddr != "" {
		if srv, err = remote.Listen(cfg.RemoteAddr, ctrl); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sim.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-sim.Updates():
				slog.Debug("Elevator update", "elevator", e.ID, "floor", e.Floor, "status", e.Status(), "targets", e.PendingTargets())
			}
		}
	})
	if srv != nil {
		g.Go(func() error {
			return srv.Serve(ctx)
		})
	}
	if !headless {
		g.Go(func() error {
			defer cancel()
			return console.Run(ctx, ctrl, os.Stdout)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
