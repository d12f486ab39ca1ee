package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/tada/internal/model"
)

const maxContentWidth = 80

// Printer writes non-interactive output: status lines and the framed list.
type Printer struct {
	out, errOut io.Writer
	theme       Theme
}

// NewPrinter builds a printer for out/errOut. Colors follow the terminal
// unless noColor is set.
func NewPrinter(out, errOut io.Writer, theme string, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, errOut: errOut, theme: NewTheme(theme, r)}
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.out, p.theme.Success.Render(p.theme.SymOK+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.errOut, p.theme.Error.Render(p.theme.SymFail+" "+msg))
}

func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.errOut, p.theme.Muted.Render(msg))
}

// ProgressBar renders a bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// List prints todos (already in display order) inside a framed panel.
func (p *Printer) List(todos []model.Todo, group bool) {
	t := p.theme
	d, pn := model.Stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), pn,
		t.Accent.Render("Total"), len(todos),
	)

	lines := []string{header, t.Muted.Render(ProgressBar(d, d+pn, 28)), ""}
	if group {
		lines = append(lines, p.groupLines(todos)...)
	} else {
		lines = append(lines, p.flatLines(todos, 0)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	p.Panel(lines)
}

// Panel draws lines in a bordered box using the theme border.
func (p *Printer) Panel(lines []string) {
	box := lipgloss.NewStyle().
		Border(p.theme.Border).
		Padding(0, 1)
	fmt.Fprintln(p.out, box.Render(strings.Join(lines, "\n")))
}

// flatLines numbers rows from offset+1 so grouped output keeps the indexes
// the CLI commands accept.
func (p *Printer) flatLines(todos []model.Todo, offset int) []string {
	t := p.theme
	if len(todos) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		idx := fmt.Sprintf("%2d.", offset+i+1)
		box, style := t.BoxUnchecked, t.Muted
		if td.Completed {
			box, style = t.BoxChecked, t.Success
		}
		content := ansi.Truncate(td.Content, maxContentWidth, "...")
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), style.Render(box), content))
	}
	return out
}

func (p *Printer) groupLines(todos []model.Todo) []string {
	t := p.theme
	var pend, done []string
	for i, td := range todos {
		line := p.flatLines([]model.Todo{td}, i)[0]
		if td.Completed {
			done = append(done, line)
		} else {
			pend = append(pend, line)
		}
	}
	section := func(title string, rows []string) []string {
		out := []string{t.Accent.Render(title)}
		if len(rows) == 0 {
			return append(out, t.Muted.Render("(none)"))
		}
		return append(out, rows...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
