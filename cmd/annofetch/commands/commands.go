package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/ncobase/annofetch/ecode"
)

// Execute runs the root command with args and returns the process exit code.
// Errors are reported once on stderr; usage errors also print the usage.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if ecode.Is(err, ecode.KindUsage) {
		if cmd == nil {
			cmd = rootCmd
		}
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return ecode.ExitCode(err)
}
