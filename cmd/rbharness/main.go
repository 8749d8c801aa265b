// rbharness is the line-oriented command harness's CLI entry point
// (spec.md §6.2): it wires stdin/stdout or -i/-o files into the harness
// package and maps its outcome onto an exit code.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/lersek/rbcontainer/harness"
	"github.com/lersek/rbcontainer/internal/config"
	"github.com/lersek/rbcontainer/internal/rlog"
	"github.com/lersek/rbcontainer/rbtree"
)

var (
	inputFlag = &cli.StringFlag{
		Name:  "i",
		Usage: "read commands from PATH instead of standard input",
	}
	outputFlag = &cli.StringFlag{
		Name:  "o",
		Usage: "write responses to PATH instead of standard output",
	}
	helpFlag = &cli.BoolFlag{
		Name:  "h",
		Usage: "print usage and the command list on the error stream and exit",
	}
	defaultsFlag = &cli.StringFlag{
		Name:  "defaults",
		Usage: "load a YAML file of non-standard defaults (e.g. max_nodes)",
	}
)

func main() {
	app := &cli.App{
		Name:                   "rbharness",
		Usage:                  "drive an intrusive red-black tree container from a line-oriented command script",
		UsageText:              "rbharness [-i PATH] [-o PATH]",
		Flags:                  []cli.Flag{inputFlag, outputFlag, helpFlag, defaultsFlag},
		Action:                 run,
		HideHelp:               true,
		HideVersion:            true,
		UseShortOptionHandling: true,
	}

	if err := app.Run(os.Args); err != nil {
		if isUsageRequest(err) {
			fmt.Fprintf(os.Stderr, "usage: %s\n", app.UsageText)
			fmt.Fprint(os.Stderr, harness.CommandList)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "rbharness:", err)
		os.Exit(1)
	}
}

// errShowUsage signals the -h flag; it is not a real failure.
var errShowUsage = errors.New("rbharness: usage requested")

func isUsageRequest(err error) bool { return errors.Is(err, errShowUsage) }

func run(ctx *cli.Context) error {
	if ctx.Bool(helpFlag.Name) {
		return errShowUsage
	}
	if ctx.NArg() > 0 {
		return fmt.Errorf("rbharness: unexpected argument %q", ctx.Args().First())
	}

	cfg := config.Config{
		InputPath:  ctx.String(inputFlag.Name),
		OutputPath: ctx.String(outputFlag.Name),
	}
	if path := ctx.String(defaultsFlag.Name); path != "" {
		var err error
		cfg, err = config.LoadDefaultsYAML(cfg, path)
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rlog.SetDefault(rlog.NewLogger(rlog.NewTerminalHandlerWithLevel(os.Stderr, rlog.LevelInfo, term.IsTerminal(int(os.Stderr.Fd())))))

	in, interactive, closeIn, err := openInput(cfg.InputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	rlog.Root().Info("rbharness starting", "input", describeStream(cfg.InputPath), "output", describeStream(cfg.OutputPath))

	var opts []rbtree.Option
	if cfg.MaxNodes > 0 {
		opts = append(opts, rbtree.WithMaxNodes(cfg.MaxNodes))
	}

	h := harness.New(out, os.Stderr, interactive, opts...)
	runErr := h.Run(in)

	snap := h.Metrics()
	rlog.Root().Info("rbharness finished",
		"inserts", snap.Inserts, "finds", snap.Finds, "deletes", snap.Deletes, "validates", snap.Validates,
		"error", runErr,
	)

	return runErr
}

// describeStream renders a path for logging, naming the standard stream
// explicitly when none was given.
func describeStream(path string) string {
	if path == "" {
		return "<stdio>"
	}
	return path
}

func openInput(path string) (in *os.File, interactive bool, closeFn func(), err error) {
	if path == "" {
		return os.Stdin, term.IsTerminal(int(os.Stdin.Fd())), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false, nil, fmt.Errorf("rbharness: open input: %w", err)
	}
	return f, false, func() { f.Close() }, nil
}

func openOutput(path string) (out *os.File, closeFn func(), err error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("rbharness: create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
