package hostbubbletea

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/renderer"
	"github.com/vireoui/vireo/internal/view"
)

// Model is a Bubbletea model wrapping a root view.Node, the Go analogue of
// the teacher's BubbleModel: it owns the root's lifecycle (mount/unmount),
// forwards terminal messages down as reactive state, and renders the host
// tree to a string on every frame.
type Model struct {
	mu sync.RWMutex

	root     view.Node
	hostRoot *node
	rend     *Renderer
	scope    *reactivity.EffectScope

	testMode bool
	width    int
	height   int

	// OnKey and OnWindowSize hold the callbacks installed by
	// WithKeyHandler and WithWindowSizeHandler; key presses and resizes
	// reach application code only through them.
	OnKey         func(key string)
	OnWindowSize  func(width, height int)
	initialized bool
}

// Option configures a Model, mirroring the teacher's functional RunOption.
type Option func(*Model)

// WithTestMode disables alt-screen/mouse entry, for running under non-tty
// test harnesses.
func WithTestMode() Option { return func(m *Model) { m.testMode = true } }

// WithKeyHandler registers a callback invoked with the string form of every
// key press (spec.md's host bindings are event-source agnostic; this is how
// hostbubbletea exposes terminal input to application code).
func WithKeyHandler(fn func(key string)) Option {
	return func(m *Model) { m.OnKey = fn }
}

// WithWindowSizeHandler registers a callback invoked on terminal resize.
func WithWindowSizeHandler(fn func(width, height int)) Option {
	return func(m *Model) { m.OnWindowSize = fn }
}

// NewModel builds and Inits the root view and returns the Bubbletea model
// driving it; the root is mounted into a fresh host root node later, by
// Init. build is called once, inside a fresh reactivity scope, to
// construct the root view.Node — keeping the whole tree's effects owned by
// a scope this Model can dispose on quit.
func NewModel(build func(ctx view.Context) view.Node, opts ...Option) *Model {
	rend := New()
	m := &Model{rend: rend, scope: reactivity.NewScope()}
	for _, opt := range opts {
		opt(m)
	}

	m.hostRoot = newNode(kindElement)
	m.hostRoot.attrs["root"] = true

	m.scope.Run(func() {
		ctx := view.Context{Renderer: rend}
		m.root = build(ctx)
		m.root.Init(ctx)
	})
	return m
}

// Init implements tea.Model: it mounts the root into the host tree and, for
// a real terminal, enters the alt screen.
func (m *Model) Init() tea.Cmd {
	m.mu.Lock()
	m.initialized = true
	m.root.Mount(m.hostRoot, nil, renderer.Append)
	m.mu.Unlock()

	if m.testMode {
		return nil
	}
	return tea.EnterAltScreen
}

// Update implements tea.Model. Keyboard and resize events are forwarded to
// the registered handlers, whose job is to write into reactive state the
// component tree reads. Signal writes only queue render effects on the
// scheduler's pre queue (spec.md §5's batching); Update ends each message
// with an explicit FlushSync so the host tree reflects every write before
// View is next called, matching how the teacher's BubbleModel.Update runs
// ExecuteUpdateHooks synchronously after mutating props.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.OnKey != nil {
			m.OnKey(msg.String())
		}
	case tea.WindowSizeMsg:
		m.mu.Lock()
		m.width, m.height = msg.Width, msg.Height
		m.mu.Unlock()
		if m.OnWindowSize != nil {
			m.OnWindowSize(msg.Width, msg.Height)
		}
	}
	reactivity.DefaultScheduler().FlushSync()
	return m, nil
}

// View implements tea.Model: it renders the current host tree to a string.
// Reactive updates already landed synchronously in Update/handler calls, so
// this is a pure read with no scheduling side effects of its own.
func (m *Model) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hostRoot.render()
}

// Dispose tears down the root's scope, cascading to every effect/watcher
// the component tree created.
func (m *Model) Dispose() {
	m.root.Dispose()
	m.scope.Dispose()
}

// Run builds, mounts and drives a view tree as a terminal application,
// eliminating Bubbletea boilerplate the way the teacher's bubbly.Run does.
// It blocks until the program exits (quit keypress or the Bubbletea
// program's own termination) and disposes the root scope on return.
func Run(build func(ctx view.Context) view.Node, opts ...Option) error {
	m := NewModel(build, opts...)
	defer m.Dispose()

	var teaOpts []tea.ProgramOption
	if !m.testMode {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, teaOpts...)
	_, err := p.Run()
	return err
}
