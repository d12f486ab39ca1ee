package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/tada/internal/ui"
)

// Run executes the command line and returns an exit code (0 ok, 1 error,
// 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &App{out: stdout, errOut: stderr}
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if app.closer != nil {
		_ = app.closer.Close()
	}
	if err == nil {
		return 0
	}
	p := app.printer
	if p == nil {
		p = ui.NewPrinter(stdout, stderr, "classic", false)
	}
	p.Fail(err.Error())

	var ue *usageError
	if errors.As(err, &ue) {
		if ue.hint != "" {
			p.Hint(ue.hint)
		}
		return 2
	}
	return 1
}
