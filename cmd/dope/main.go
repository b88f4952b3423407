// Package main provides the dope CLI for inspecting layouts and memory-mapped arrays.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/born-ml/dope/internal/memory"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("usage")

// buildLogger constructs the logger used under -v and -check.
var buildLogger = zap.NewDevelopment

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "dope:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errUsage
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "dope %s\n", version)
		return nil
	case "layout":
		return runLayout(args[1:], out)
	case "create":
		return runCreate(args[1:], out)
	case "inspect":
		return runInspect(args[1:], out)
	default:
		usage(out)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "dope - multidimensional array layouts")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  layout     Describe a layout")
	fmt.Fprintln(out, "  create     Create a file sized for a layout and fill it")
	fmt.Fprintln(out, "  inspect    Print elements of a file through a layout")
}

// newLogger returns a development logger when verbose is set, and a no-op logger otherwise.
// The memory package logs allocations through it.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := buildLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	memory.SetLogger(logger)
	return logger, nil
}
