package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-celebrate/internal/audio"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
	"github.com/tartampluch/go-celebrate/internal/engine"
	"github.com/tartampluch/go-celebrate/internal/server"
	"github.com/tartampluch/go-celebrate/internal/tui"
	"github.com/tartampluch/go-celebrate/internal/ui"
)

// options holds the parsed command line.
type options struct {
	configPath string
	debug      bool
	tui        bool
	serve      bool
}

// main is the application entry point.
// It delegates to runMain so deferred calls (like closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	flag.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.configPath, config.FlagConfig, "", config.FlagDescConfig)
	flag.BoolVar(&opts.tui, config.FlagTUI, false, config.FlagDescTUI)
	flag.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// The terminal display owns stdout, so TUI runs log to the file only.
	logCloser := setupLogging(opts.debug, !opts.tui)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		if opts.tui {
			fmt.Fprintln(os.Stderr, err)
		}
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run loads the greeting, wires the engine and starts the chosen display.
func run(ctx context.Context, opts options) error {
	log := slog.With(config.LogKeyComponent, config.CompMain)

	g, err := config.LoadGreeting(opts.configPath)
	if err != nil {
		return err
	}

	recipient, imported := importRecipient(ctx, &g)

	clock := engine.RealClock{}
	target := engine.NextTarget(clock.Now(), g.Birthday)
	log.Info(config.MsgTargetComputed,
		config.LogKeyTarget, target,
		config.LogKeyName, g.DisplayName(),
	)

	if opts.serve || g.ServerPort != 0 {
		startInviteServer(ctx, g, target, recipient, imported)
	}

	catalog := display.NewCatalog(config.DefaultLanguage)

	music := audio.Load(g.AudioFile, true)
	defer closeTrack(music)

	if opts.tui {
		celebration := engine.NewCelebration(target)
		runner := engine.NewRunner(celebration, clock, g.FrameInterval())
		return runTerminal(ctx, runner, catalog, g, music)
	}

	celebration := engine.NewCelebration(target, engine.WithEasing(ui.Easing))
	runner := engine.NewRunner(celebration, clock, g.FrameInterval())
	return runWindow(ctx, runner, catalog, g, music)
}

// importRecipient overlays the configured vCard onto the greeting. Import
// failures keep the configured values.
func importRecipient(ctx context.Context, g *config.Greeting) (engine.Recipient, bool) {
	if g.Recipient.Source == "" {
		return engine.Recipient{}, false
	}

	r, err := engine.NewImporter().Import(ctx, g.Recipient)
	if err != nil {
		slog.Warn(config.MsgRecipientFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return engine.Recipient{}, false
	}
	r.ApplyTo(g)
	return r, true
}

// startInviteServer publishes the invite on localhost in the background.
func startInviteServer(ctx context.Context, g config.Greeting, target time.Time, r engine.Recipient, imported bool) {
	log := slog.With(config.LogKeyComponent, config.CompMain)

	port := g.ServerPort
	if port == 0 {
		port = config.DefaultServerPort
	}

	name := g.DisplayName()
	summary := fmt.Sprintf(config.FallbackSummary, name)
	if age := r.AgeAt(target); imported && age > 0 {
		summary = fmt.Sprintf(config.FormatSummaryAge, summary, age)
	}

	data, err := engine.BuildInvite(engine.InviteOptions{
		Name:     name,
		Summary:  summary,
		Target:   target,
		Reminder: config.ICalTrigger,
	}, time.Now())
	if err != nil {
		log.Error(config.ErrICalEncode, config.LogKeyError, err)
		return
	}

	srv := server.NewInviteServer(port)
	srv.Update(data)

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Error(config.ErrServerStartup,
				config.LogKeyPort, port,
				config.LogKeyError, err,
			)
		}
	}()
}

// runWindow drives the Fyne display until the window closes or ctx ends.
func runWindow(ctx context.Context, runner *engine.Runner, catalog *display.Catalog, g config.Greeting, music *audio.Track) error {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	gui := ui.NewGreetingApp(app.NewWithID(config.AppID), runCtx, g, catalog, runner)
	if music != nil {
		gui.Music = music
	}
	voice := audio.Load(g.VoiceMessage, false)
	defer closeTrack(voice)
	if voice != nil {
		gui.Voice = voice
	}

	runner.Sink = gui
	gui.BuildWindow()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runner.Run(runCtx)
	}()

	// Blocks until the main window closes.
	gui.Run()

	stop()
	wg.Wait()
	return nil
}

// runTerminal drives the tcell display until the user quits or ctx ends.
func runTerminal(ctx context.Context, runner *engine.Runner, catalog *display.Catalog, g config.Greeting, music *audio.Track) error {
	screen, err := tui.OpenScreen()
	if err != nil {
		return err
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	term := tui.New(screen, catalog, g.DisplayName(), runner)
	if music != nil {
		term.Music = music
	}
	runner.Sink = term
	music.Play()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runner.Run(runCtx)
	}()

	term.Run(runCtx)

	stop()
	wg.Wait()
	return nil
}

func closeTrack(t *audio.Track) {
	if err := t.Close(); err != nil {
		slog.Warn(config.MsgAudioFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Records always go to the
// log file in the user cache dir, and to stdout when toStdout is set.
func setupLogging(debugMode, toStdout bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if toStdout {
		writers = append(writers, os.Stdout)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
