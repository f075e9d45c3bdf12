package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
	"github.com/voxelbrain/goptions"

	"github.com/wfcheck/wfcheck/internal/config"
	"github.com/wfcheck/wfcheck/internal/wflog"
	"github.com/wfcheck/wfcheck/pkg/wfcheck"
)

// Version holds the current version of wfcheck.
var Version = "(development)"

var printfStdOut = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

var exit = func(code int) { os.Exit(code) }

var usage = func() {
	goptions.PrintHelp()
	exit(1)
}

func main() {
	var options struct {
		Debug   bool   `goptions:"-D, --debug, description='Enable debugging'"`
		Trace   bool   `goptions:"-T, --trace, description='Enable trace mode debugging (very verbose)'"`
		Version bool   `goptions:"-v, --version, description='Display version information'"`
		Color   string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Config  string `goptions:"-c, --config, description='Path to a wfcheck config file (defaults: see internal/config)'"`
		Action  goptions.Verbs
		Check   struct {
			Strict bool               `goptions:"--strict, description='Force the strict assignability ladder, overriding config'"`
			Help   bool               `goptions:"--help, -h"`
			Files  goptions.Remainder `goptions:"description='Fixture YAML files to check'"`
		} `goptions:"check"`
	}

	if err := goptions.Parse(&options); err != nil {
		usage()
	}

	if options.Debug {
		wflog.DebugOn = true
	}
	if options.Trace {
		wflog.TraceOn = true
		wflog.DebugOn = true
	}

	if options.Version {
		printfStdOut("%s - Version %s\n", os.Args[0], Version)
		exit(0)
		return
	}

	if options.Check.Help {
		usage()
		return
	}

	shouldEnableColor := false
	switch options.Color {
	case "on":
		shouldEnableColor = true
	case "off":
		shouldEnableColor = false
	case "auto", "":
		shouldEnableColor = isatty.IsTerminal(os.Stderr.Fd())
	default:
		wflog.PrintfStdErr("Invalid --color option: %s. Must be 'on', 'off', or 'auto'.\n", options.Color)
		exit(1)
		return
	}
	ansi.Color(shouldEnableColor)
	wflog.SetColor(shouldEnableColor)

	switch options.Action {
	case "check":
		if len(options.Check.Files) == 0 {
			wflog.PrintfStdErr("%s\n", "check requires at least one fixture file")
			exit(1)
			return
		}

		mgr := config.NewManager()
		if options.Config != "" {
			if err := mgr.Load(options.Config); err != nil {
				wflog.PrintfStdErr("loading config: %s\n", err.Error())
				exit(1)
				return
			}
		}
		opts := checkerOptions(mgr.Get().Checker, options.Check.Strict)

		exitCode := 0
		for _, file := range options.Check.Files {
			if err := runCheck(file, opts); err != nil {
				wflog.PrintfStdErr("%s: %s\n", file, err.Error())
				exitCode = 2
			}
		}
		exit(exitCode)
	default:
		usage()
	}
}

// checkerOptions translates a loaded CheckerConfig into wfcheck.Options.
// --strict forces strict mode on regardless of what the config says,
// mirroring how the teacher's own --strict flags are opt-in overrides
// rather than config mirrors.
func checkerOptions(cfg config.CheckerConfig, forceStrict bool) wfcheck.Options {
	opts := wfcheck.Options{
		StrictMode:    cfg.StrictMode,
		MaxTypeDepth:  cfg.MaxTypeDepth,
		MaxCycleDepth: cfg.MaxCycleDepth,
	}
	if forceStrict {
		opts.StrictMode = true
	}
	return opts
}

// runCheck loads one fixture, runs the cycle and loop checks ahead of the
// type/link-merge checks (a cyclic or malformed-loop graph makes the edge
// enumerator's results meaningless), then runs StaticCheck and logs any
// warnings to stderr.
func runCheck(path string, opts wfcheck.Options) error {
	graph, err := loadFixture(path)
	if err != nil {
		return err
	}

	if err := wfcheck.CycleCheckDepth(graph.stepInputs, opts.MaxCycleDepth); err != nil {
		return err
	}
	if err := wfcheck.LoopCheck(graph.steps); err != nil {
		return err
	}

	warnings, err := wfcheck.StaticCheckWithOptions(
		graph.workflowInputs, graph.workflowOutputs,
		graph.stepInputs, graph.stepOutputs,
		graph.paramToStep, opts,
	)
	if warnings != "" {
		wflog.WARN("%s", warnings)
	}
	if err != nil {
		return err
	}

	printfStdOut("%s: ok\n", path)
	return nil
}
