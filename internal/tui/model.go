// Package tui is the interactive list: every change is sent to the
// collection and followed by a full re-fetch and rebuild of the rows.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/live"
	"github.com/idilsaglam/tada/internal/loader"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
)

const doubleClick = 400 * time.Millisecond

// Backend is the subset of the collection client the list needs.
type Backend interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, content string) (model.Todo, error)
	Toggle(ctx context.Context, id model.ID) (model.Todo, error)
	Replace(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id model.ID) error
	reorder.PositionWriter
}

// Options configures a Model.
type Options struct {
	Backend   Backend
	Indicator *loader.Indicator
	Theme     string
	// Changes, when set, triggers a refresh on every remote change.
	Changes <-chan live.Change
	Logger  *log.Logger
	// Title overrides the header label.
	Title string
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeGrab
)

type click struct {
	id model.ID
	at time.Time
}

// Model is the bubbletea model for the interactive list.
type Model struct {
	ctx     context.Context
	backend Backend
	ind     *loader.Indicator
	logger  *log.Logger
	title   string

	todos  []model.Todo
	cursor int
	loaded bool

	mode    mode
	ti      textinput.Model
	inErr   string
	editing model.ID

	// pointer drag: pressed is set on button down, drag once the pointer moves
	pressed   model.ID
	drag      *reorder.Drag
	lastClick click
	stale     bool

	spin    spinner.Model
	busy    <-chan struct{}
	changes <-chan live.Change

	status string
	err    error

	keys   keyMap
	help   help.Model
	styles styles
	width  int
	height int

	now func() time.Time
}

// New builds the list model. ctx bounds every request issued from it.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	title := opts.Title
	if title == "" {
		title = "Todos"
	}

	m := Model{
		ctx:     ctx,
		backend: opts.Backend,
		ind:     opts.Indicator,
		logger:  logger,
		title:   title,
		ti:      ti,
		spin:    sp,
		changes: opts.Changes,
		keys:    defaultKeys(),
		help:    help.New(),
		styles:  newStyles(opts.Theme),
		width:   80,
		height:  24,
		now:     time.Now,
	}
	if opts.Indicator != nil {
		ch := make(chan struct{}, 1)
		opts.Indicator.Watch(func(bool) {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
		m.busy = ch
	}
	return m
}

// Todos is the snapshot currently rendered.
func (m Model) Todos() []model.Todo { return slices.Clone(m.todos) }

// Err is the last request error, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), waitBusy(m.busy), waitLive(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ti.Width = max(10, msg.Width-12)
		return m, nil

	case todosLoadedMsg:
		if msg.err != nil {
			return m.fail("load", msg.err), nil
		}
		if m.drag != nil {
			m.stale = true
			return m, nil
		}
		m.rebuild(msg.todos)
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			return m.fail(msg.op, msg.err), nil
		}
		m.err = nil
		return m, m.fetch()

	case toggledMsg:
		if msg.err != nil {
			return m.fail("toggle", msg.err), nil
		}
		m.err = nil
		if i := model.Index(m.todos, msg.todo.ID); i >= 0 {
			m.todos[i].Completed = msg.todo.Completed
		}
		return m, m.fetch()

	case reorderSavedMsg:
		if msg.err != nil {
			return m.fail("reorder", msg.err), nil
		}
		m.err = nil
		m.status = "order saved"
		if m.stale {
			m.stale = false
			return m, m.fetch()
		}
		return m, nil

	case busyMsg:
		cmds := []tea.Cmd{waitBusy(m.busy)}
		if m.ind.Visible() {
			cmds = append(cmds, m.spin.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.ind.Visible() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case liveMsg:
		if !msg.ok {
			m.changes = nil
			return m, nil
		}
		m.logger.Debug("remote change", "op", msg.change.Op, "id", msg.change.ID)
		return m, tea.Batch(m.fetch(), waitLive(m.changes))

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeGrab:
			return m.updateGrab(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeAdd || m.mode == modeEdit {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	return m, nil
}

// rebuild replaces every row with the new snapshot.
func (m *Model) rebuild(todos []model.Todo) {
	m.todos = todos
	m.loaded = true
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) fail(op string, err error) Model {
	m.err = fmt.Errorf("%s: %w", op, err)
	m.status = ""
	m.logger.Error("request failed", "op", op, "err", err)
	return m
}

func (m Model) selected() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return model.Todo{}, false
	}
	return m.todos[m.cursor], true
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m.startInput(modeAdd, "", "New item...")
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.toggle(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.remove(t.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m.startEdit(t)
		}
	case key.Matches(msg, m.keys.Grab):
		if t, ok := m.selected(); ok {
			d, err := reorder.Start(model.IDs(m.todos), t.ID)
			if err != nil {
				return m.fail("move", err), nil
			}
			m.drag = d
			m.mode = modeGrab
		}
	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		return m, m.fetch()
	}
	return m, nil
}

func (m Model) startInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.inErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m, m.ti.Focus()
}

func (m Model) startEdit(t model.Todo) (tea.Model, tea.Cmd) {
	m.editing = t.ID
	if i := model.Index(m.todos, t.ID); i >= 0 {
		m.cursor = i
	}
	return m.startInput(modeEdit, t.Content, "Edit item...")
}

func (m Model) closeInput() Model {
	m.mode = modeBrowse
	m.editing = ""
	m.inErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closeInput(), nil
	case tea.KeyEnter:
		content := strings.TrimSpace(m.ti.Value())
		if m.mode == modeAdd {
			if content == "" {
				m.inErr = "content cannot be empty"
				return m, nil
			}
			return m.closeInput(), m.create(content)
		}
		id := m.editing
		m = m.closeInput()
		i := model.Index(m.todos, id)
		// an empty edit leaves the row as it was
		if content == "" || i < 0 {
			return m, nil
		}
		m.todos[i].Content = content
		return m, m.replace(m.todos[i])
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.drag.Step(-1)
	case key.Matches(msg, m.keys.Down):
		m.drag.Step(1)
	case key.Matches(msg, m.keys.Drop):
		return m.drop()
	case key.Matches(msg, m.keys.Cancel):
		m.applyOrder(m.drag.Cancel())
		m.drag = nil
		m.mode = modeBrowse
		return m, m.refetchIfStale()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	m.applyOrder(m.drag.Order())
	m.cursor = m.drag.Index()
	return m, nil
}

// drop finishes the current drag and writes the new positions one by one.
func (m Model) drop() (tea.Model, tea.Cmd) {
	assignments := m.drag.End()
	dragged := m.drag.Dragged()
	m.drag = nil
	m.pressed = ""
	m.mode = modeBrowse

	order := make([]model.ID, len(assignments))
	for i, a := range assignments {
		order[i] = a.ID
	}
	m.applyOrder(order)
	for i := range m.todos {
		m.todos[i].Position = i
	}
	if i := model.Index(m.todos, dragged); i >= 0 {
		m.cursor = i
	}
	m.status = "saving order..."
	return m, m.persist(assignments)
}

func (m *Model) refetchIfStale() tea.Cmd {
	if !m.stale {
		return nil
	}
	m.stale = false
	return m.fetch()
}

// applyOrder rearranges the rendered rows to match order.
func (m *Model) applyOrder(order []model.ID) {
	byID := make(map[model.ID]model.Todo, len(m.todos))
	for _, t := range m.todos {
		byID[t.ID] = t
	}
	next := make([]model.Todo, 0, len(order))
	for _, id := range order {
		if t, ok := byID[id]; ok {
			next = append(next, t)
		}
	}
	m.todos = next
}

// Run starts the program on the alternate screen with mouse reporting.
func Run(ctx context.Context, opts Options) error {
	if opts.Backend == nil {
		return errors.New("tui: nil backend")
	}
	p := tea.NewProgram(New(ctx, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
