package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/countdown/audio"
	"github.com/lixenwraith/countdown/config"
	"github.com/lixenwraith/countdown/core"
	"github.com/lixenwraith/countdown/countdown"
	"github.com/lixenwraith/countdown/engine"
	"github.com/lixenwraith/countdown/input"
	"github.com/lixenwraith/countdown/status"
	"github.com/lixenwraith/countdown/ui"
)

var version = "dev"

var (
	configFlag   = flag.String("config", config.DefaultPath, "Path to TOML config file")
	durationFlag = flag.Int("duration", 0, "Prefill and set the duration in seconds")
	debugFlag    = flag.Bool("debug", false, "Enable file logging")
	muteFlag     = flag.Bool("mute", false, "Disable the completion chime")
	versionFlag  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println("countdown", version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "countdown: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Only the default path may be absent
	cfg, err := config.Load(*configFlag, *configFlag == config.DefaultPath)
	if err != nil {
		return err
	}

	overrides, err := input.LoadKeyConfig(cfg.Keys)
	if err != nil {
		return err
	}
	keys := input.MergeKeyTable(input.DefaultKeyTable(), overrides)

	zl, logFile, err := setupLogging(*debugFlag, cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer zl.Sync()
	logger := zl.Sugar()
	logger.Infow("Starting", "version", version, "config", *configFlag)

	player := newPlayer(cfg.Audio, logger)
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	core.SetCrashTerminal(screen)

	// Panic Recovery: restore the terminal even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	tasks := make(chan func(), 16)
	sched := engine.NewLoopScheduler(tasks, engine.NewMonotonicTimeProvider(), logger.Named("scheduler"))
	reg := status.NewRegistry()

	var view *ui.View
	widget := countdown.New(sched,
		countdown.WithLogger(logger.Named("widget")),
		countdown.WithRegistry(reg),
		countdown.OnExpire(player.PlayChime),
		countdown.OnChange(func() { view.Invalidate() }),
	)
	view = ui.NewView(screen, widget, reg)
	ctrl := ui.NewController(view, widget, keys, logger.Named("input"))

	if *durationFlag > 0 {
		widget.Field().SetText(strconv.Itoa(*durationFlag))
		widget.SetDuration()
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	core.Go(func() { pollEvents(screen, events, quit) })

	view.Draw()
	for running := true; running; {
		select {
		case ev := <-events:
			running = ctrl.HandleEvent(ev)
		case task := <-tasks:
			task()
		}
		view.Flush()
	}

	close(quit)
	widget.Close()
	sched.Wait()
	logger.Infow("Exiting", "stats", reg.Snapshot())
	return nil
}

// pollEvents forwards terminal events until the screen is finalized or quit closes
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

func newPlayer(cfg config.AudioConfig, logger *zap.SugaredLogger) audio.Player {
	if !cfg.Enabled || *muteFlag {
		return audio.NoopPlayer{}
	}
	p, err := audio.NewChimePlayer(cfg.Volume, logger.Named("audio"))
	if err != nil {
		logger.Warnw("Audio unavailable, continuing without chime", "error", err)
		return audio.NoopPlayer{}
	}
	return p
}
