package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/RTradeLtd/Dispatch/action"
	"github.com/RTradeLtd/Dispatch/config"
	"github.com/RTradeLtd/Dispatch/internal"
	"github.com/RTradeLtd/Dispatch/log"
	"github.com/RTradeLtd/Dispatch/metrics"
	"github.com/RTradeLtd/Dispatch/resolver"
	"github.com/RTradeLtd/Dispatch/server"
	"github.com/RTradeLtd/Dispatch/views"
)

func runDaemon(configPath string, devMode bool) {
	// load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		internal.Fatal(err.Error())
	}
	if devMode {
		cfg.SetDefaults(true)
	}

	println("preparing to start daemon")

	// initialize logger
	println("initializing logger")
	l, err := log.NewLogger(cfg.LogPath, devMode)
	if err != nil {
		internal.Fatal(err.Error())
	}
	defer l.Sync()
	l = l.With("version", Version)
	if cfg.LogPath != "" {
		println("logger initialized - output will be written to", cfg.LogPath)
	}

	// register dynamic view actions for every dispatch target
	println("initializing action table")
	var (
		targets = targetsFromConfig(cfg.Dispatch)
		table   = action.NewTable()
		v       = views.New(l, cfg.Views.Dir, cfg.Views.Reload)
	)
	for _, t := range append([]resolver.Target{targets.For("")}, appTargets(targets)...) {
		if err := table.Register(v.Descriptor(t.App, t.Controller, t.Action)); err != nil &&
			err.Error() != action.ErrActionExists {
			internal.Fatal(err.Error())
		}
	}

	// initialize route handler
	println("initializing route handler")
	m := metrics.New()
	h, err := resolver.New(l, resolver.Options{
		Selector:           table,
		Invokers:           action.HandlerInvokers{},
		Diagnostics:        m,
		Recorder:           m,
		Targets:            targets,
		TemplateRoot:       cfg.Dispatch.TemplateRoot,
		CacheExpiry:        cfg.Cache.Expiry.Std(),
		CacheCleanInterval: cfg.Cache.CleanInterval.Std(),
		CacheSize:          cfg.Cache.Size,
	})
	if err != nil {
		internal.Fatal(err.Error())
	}
	defer h.Close()

	// initialize server
	println("initializing server")
	e := server.New(l, server.EngineOpts{
		Version:  Version,
		Timeout:  cfg.API.Timeout.Std(),
		DebugKey: []byte(cfg.Debug.Key),
	}, h, table, m)

	// handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-signals
		cancel()
	}()

	// serve endpoints
	println("spinning up server")
	if err := e.Run(ctx, cfg.API); err != nil {
		println(err.Error())
	}
	println("server shut down")
}

func targetsFromConfig(cfg config.Dispatch) resolver.Targets {
	var targets = resolver.Targets{
		Default: resolver.Target(cfg.Default),
		Apps:    make(map[string]resolver.Target, len(cfg.Apps)),
	}
	for app, t := range cfg.Apps {
		targets.Apps[strings.ToLower(app)] = resolver.Target(t)
	}
	return targets
}

func appTargets(targets resolver.Targets) []resolver.Target {
	var list = make([]resolver.Target, 0, len(targets.Apps))
	for _, t := range targets.Apps {
		if t.Valid() {
			list = append(list, t)
		}
	}
	return list
}
