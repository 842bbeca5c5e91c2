// Command zombie-survival runs the zombie survival simulation in the
// terminal: once, as a batch, through the interactive menu or against a
// remote simulation server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"

	"github.com/Thokas/zombie-survival/internal/api"
	"github.com/Thokas/zombie-survival/internal/config"
	"github.com/Thokas/zombie-survival/internal/game"
	"github.com/Thokas/zombie-survival/internal/menu"
	"github.com/Thokas/zombie-survival/internal/models"
	"github.com/Thokas/zombie-survival/internal/narrate"
	zsotel "github.com/Thokas/zombie-survival/internal/otel"
	"github.com/Thokas/zombie-survival/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

// ========================= Config =========================

type options struct {
	scenario    string
	batch       int
	interactive bool
	remote      string
	profile     string
	logLevel    string
	dump        bool
	color       bool
	version     bool
}

type cliEnv struct {
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	Remote       string `env:"REMOTE"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		stop()
		config.Exitf("zombie-survival: %v", err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("zombie-survival", flag.ContinueOnError)
	fs.SetOutput(stderr)
	settingsFlags := config.BindSettings(fs, models.DefaultSettings())

	var opts options
	fs.StringVar(&opts.scenario, "scenario", "", "YAML scenario file")
	fs.IntVar(&opts.batch, "batch", 0, "number of runs (overrides the scenario's runs)")
	fs.BoolVar(&opts.interactive, "interactive", false, "show the menu")
	fs.StringVar(&opts.remote, "remote", "", "simulation server base URL (env ZS_REMOTE)")
	fs.StringVar(&opts.profile, "profile", "", "write a profile: cpu, mem, mutex or block")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.dump, "dump", false, "print the resolved scenario as YAML and exit")
	fs.BoolVar(&opts.color, "color", true, "colored narration")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintf(stdout, "zombie-survival %s %s\n", buildVersion, buildTime)
		return nil
	}
	if opts.batch < 0 {
		return fmt.Errorf("-batch must not be negative")
	}

	logger, err := config.NewLogger(stderr, opts.logLevel, "zombie-survival")
	if err != nil {
		return err
	}

	if opts.profile != "" {
		stopProfile, err := startProfile(opts.profile)
		if err != nil {
			return err
		}
		defer stopProfile()
	}

	var env cliEnv
	if err := config.ParseEnv(&env); err != nil {
		return err
	}
	if opts.remote == "" {
		opts.remote = env.Remote
	}
	shutdown, err := zsotel.Setup(ctx, "zombie-survival-cli", env.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("tracing shutdown", "err", err)
		}
	}()

	sc, err := settingsFlags.Resolve(opts.scenario)
	if err != nil {
		return err
	}
	if opts.dump {
		data, err := config.MarshalScenario(sc)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}
	if opts.batch > 0 {
		sc.Runs = opts.batch
	}
	if sc.Name != "" {
		logger.Info("scenario", "name", sc.Name, "runs", sc.Runs)
	}

	r := &runner{out: stdout, logger: logger, color: opts.color}
	if opts.remote != "" {
		r.remote = api.NewClient(opts.remote)
		logger.Info("remote mode", "url", opts.remote)
	}

	if opts.interactive {
		m := menu.New(newInput(stdin, stdout), stdout, sc.Settings, func(s models.Settings) error {
			return r.single(ctx, s)
		})
		return m.Loop()
	}
	if sc.Runs == 1 {
		return r.single(ctx, sc.Settings)
	}
	return r.batch(ctx, sc.Settings, sc.Runs)
}

func startProfile(mode string) (func(), error) {
	var m func(*profile.Profile)
	switch mode {
	case "cpu":
		m = profile.CPUProfile
	case "mem":
		m = profile.MemProfile
	case "mutex":
		m = profile.MutexProfile
	case "block":
		m = profile.BlockProfile
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	p := profile.Start(m, profile.ProfilePath("./prof"), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}

// newInput uses raw key presses on a terminal and plain lines otherwise.
func newInput(stdin io.Reader, stdout io.Writer) menu.Input {
	if f, ok := stdin.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return menu.NewKeyboardInput(stdin, stdout)
		}
	}
	return menu.NewLineInput(stdin)
}

// ========================= Runs =========================

type runner struct {
	out    io.Writer
	logger *log.Logger
	color  bool
	remote *api.Client
}

func (r *runner) simulate(ctx context.Context, s models.Settings, sink game.Sink) (game.Result, error) {
	if r.remote != nil {
		return r.remote.RunSimulation(ctx, s)
	}
	return game.Run(ctx, s, game.WithSink(game.Sinks(sink, narrate.LogSink{Logger: r.logger})))
}

// single narrates one run and prints its report. Remote runs only get
// the report since the server returns the finished result.
func (r *runner) single(ctx context.Context, s models.Settings) error {
	opts := narrate.Options{Locale: s.Locale, Story: s.StoryMode, Color: r.color}
	res, err := r.simulate(ctx, s, narrate.NewNarrator(r.out, opts))
	if err != nil {
		return err
	}
	r.logger.Info("run finished", "id", res.ID, "seed", res.Seed, "winner", res.Winner(), "elapsed", res.Elapsed)
	return narrate.WriteReport(r.out, res, opts)
}

// batch runs n simulations without narration. A fixed seed is advanced
// per run so every run differs but the batch stays reproducible.
func (r *runner) batch(ctx context.Context, s models.Settings, n int) error {
	store := stats.NewStore(n)
	for i := 1; i <= n; i++ {
		runSettings := s
		if s.Seed != 0 {
			runSettings.Seed = s.Seed + int64(i-1)
		}
		res, err := r.simulate(ctx, runSettings, nil)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		if err := narrate.WriteRunLine(r.out, i, store.Save(res), s.Locale); err != nil {
			return err
		}
	}
	if best, ok := store.BestToday(); ok {
		r.logger.Info("best run", "id", best.ID, "seed", best.Seed, "kills", best.Kills)
	}
	return narrate.WriteTotals(r.out, store.Totals(), s.Locale)
}
