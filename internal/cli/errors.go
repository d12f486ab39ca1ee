package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// usageError is reported with exit code 2.
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

const indexHint = "Hint: run `todo print` to see valid indexes"

// parseIndex turns a 1-based display index into a slice index.
func parseIndex(op, arg string, n int) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &usageError{msg: fmt.Sprintf("%s: not a number: %s", op, arg)}
	}
	if v < 1 || v > n {
		return 0, &usageError{
			msg:  fmt.Sprintf("%s: index out of range: have %d, got %d", op, n, v),
			hint: indexHint,
		}
	}
	return v - 1, nil
}

// usageArgs reports argument-count errors as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &usageError{msg: err.Error(), hint: "Run `" + cmd.CommandPath() + " --help` for usage"}
		}
		return nil
	}
}
