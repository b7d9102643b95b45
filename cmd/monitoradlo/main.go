// Command monitoradlo is the display layout editor daemon. It loads the
// kanshi configuration, tracks connected outputs through niri and serves
// the editor API.
// Run with --mock to use fixed demo outputs (no compositor required).
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/monitoradlo/monitoradlo-go/internal/api"
	"github.com/monitoradlo/monitoradlo-go/internal/auth"
	"github.com/monitoradlo/monitoradlo-go/internal/config"
	"github.com/monitoradlo/monitoradlo-go/internal/controller"
	"github.com/monitoradlo/monitoradlo-go/internal/events"
	"github.com/monitoradlo/monitoradlo-go/internal/identity"
	"github.com/monitoradlo/monitoradlo-go/internal/kanshi"
	"github.com/monitoradlo/monitoradlo-go/internal/maintenance"
	"github.com/monitoradlo/monitoradlo-go/internal/niri"
	"github.com/monitoradlo/monitoradlo-go/internal/notify"
	"github.com/monitoradlo/monitoradlo-go/internal/zeroconf"
)

func main() {
	var (
		mock      = flag.Bool("mock", false, "use fixed demo outputs instead of querying niri")
		addr      = flag.String("addr", "127.0.0.1:7447", "HTTP listen address")
		cfgDir    = flag.String("config-dir", "", "editor directory for keys, lock and backups (default: ~/.config/monitoradlo)")
		kanshiCfg = flag.String("kanshi-config", "", "kanshi configuration file (default: ~/.config/kanshi/config)")
		refresh   = flag.Duration("refresh", 5*time.Second, "live output poll interval (0 disables polling)")
		advertise = flag.Bool("advertise", false, "advertise the editor API over mDNS")
		notifyOn  = flag.Bool("notify", false, "show desktop notifications on save and external edits")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	home, err := os.UserHomeDir()
	if err != nil && (*cfgDir == "" || *kanshiCfg == "") {
		slog.Error("cannot determine home directory", "err", err)
		os.Exit(1)
	}
	if *cfgDir == "" {
		*cfgDir = filepath.Join(home, ".config", "monitoradlo")
	}
	if *kanshiCfg == "" {
		*kanshiCfg = filepath.Join(home, ".config", "kanshi", "config")
	}
	if err := os.MkdirAll(*cfgDir, 0755); err != nil {
		slog.Error("cannot create config directory", "path", *cfgDir, "err", err)
		os.Exit(1)
	}

	lock, err := config.AcquireLock(*cfgDir)
	if err != nil {
		slog.Error("cannot lock config directory", "path", *cfgDir, "err", err)
		os.Exit(1)
	}
	defer lock.Release()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Live output backend
	var backend controller.Backend
	if *mock {
		slog.Info("using demo outputs")
		backend = niri.NewMock(nil)
	} else {
		backend = niri.NewClient()
	}

	backupDir := filepath.Join(*cfgDir, "backups")
	store := config.NewKanshiStore(*kanshiCfg, backupDir)
	bus := events.NewBus()

	ctrl, err := controller.New(store, bus, backend, kanshi.NewReloader())
	if err != nil {
		slog.Error("controller initialization failed", "path", *kanshiCfg, "err", err)
		os.Exit(1)
	}

	// External edits of the kanshi file
	watcher, err := config.NewWatcher(*kanshiCfg, func() {
		if _, err := ctrl.ReloadExternal(); err != nil {
			slog.Warn("reloading changed config failed", "path", *kanshiCfg, "err", err)
		}
	})
	if err != nil {
		slog.Warn("config watcher unavailable", "path", *kanshiCfg, "err", err)
	} else {
		defer watcher.Close()
	}

	authSvc, err := auth.NewService(*cfgDir)
	if err != nil {
		slog.Error("auth service initialization failed", "err", err)
		os.Exit(1)
	}
	defer authSvc.Close()

	// Live refresh and backup pruning
	maint := maintenance.New(backend, ctrl, *refresh, backupDir, func(available bool) {
		slog.Info("live output source availability changed", "available", available)
	})
	go maint.Start(ctx)

	if *notifyOn {
		var n notify.Notifier = notify.Nop{}
		if d, err := notify.NewDBus(); err != nil {
			slog.Warn("desktop notifications unavailable", "err", err)
		} else {
			defer d.Close()
			n = d
		}
		go notify.Watch(ctx, bus, n)
	}

	info := identity.Get()
	if *advertise {
		zc := zeroconf.New(info.InstanceName(), listenPort(*addr), info.Version, !authSvc.IsOpenMode())
		go func() {
			if err := zc.Start(ctx); err != nil {
				slog.Warn("zeroconf failed", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.NewRouter(ctrl, authSvc, bus, store),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout (needed for SSE)
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("monitoradlo listening", "addr", *addr, "mock", *mock, "kanshi", *kanshiCfg, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down...")

	if ctrl.Dirty() {
		slog.Warn("exiting with unsaved changes", "path", *kanshiCfg)
	}

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Warn("server shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
}

// listenPort extracts the port from a listen address, defaulting to 80.
func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 80
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 80
	}
	return port
}
