package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lost-woods/randtest/src/battery"
	"github.com/lost-woods/randtest/src/bits"
	"github.com/lost-woods/randtest/src/report"
)

// Exit codes. The first four match the classic randtest tool.
const (
	exitOK = iota
	exitUsage
	exitInvalidMode
	exitInputUnavailable
	exitOutputUnavailable
	exitResourceExhausted
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue):
		return exitUsage
	case errors.Is(err, bits.ErrInvalidMode):
		return exitInvalidMode
	case errors.Is(err, bits.ErrInputUnavailable):
		return exitInputUnavailable
	case errors.Is(err, report.ErrOutputUnavailable):
		return exitOutputUnavailable
	case errors.Is(err, battery.ErrResourceExhausted):
		return exitResourceExhausted
	}
	return exitUsage
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "\n\n%s\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return exitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
