package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/logging"
	"github.com/san-kum/slopefield/internal/session"
	"github.com/san-kum/slopefield/internal/viewport"
)

const (
	plotTop     = 1
	footerRows  = 3
	helpWidth   = 44
	minPlotRows = 4
	minPlotCols = 10
)

// inputField adapts a textinput to session.TextField. It lives behind a
// pointer so every copy of Model edits the same widget.
type inputField struct {
	ti textinput.Model
}

func (f *inputField) Text() string     { return f.ti.Value() }
func (f *inputField) SetText(s string) { f.ti.SetValue(s); f.ti.CursorEnd() }

type Options struct {
	Viewport *viewport.Viewport
	ODE      string
	Seeds    []dynamo.Point
	MaxSteps int
	Theme    Theme
	Logger   *log.Logger
}

// Model is the bubbletea model of the terminal front end. All state that
// matters lives in the session controller; Model only maps terminal cells
// and keys to controller events.
type Model struct {
	ctrl    *session.Controller
	surface *BrailleSurface
	input   *inputField
	clicks  *session.ClickTracker
	keys    keyMap
	help    help.Model
	styles  styles
	log     *log.Logger
	now     func() time.Time

	width, height int
	status        string
	statusErr     bool
}

func New(opts Options) (Model, error) {
	ti := textinput.New()
	ti.Prompt = "dy/dx=: "
	ti.Placeholder = session.DefaultODE
	ti.CharLimit = 256
	input := &inputField{ti: ti}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = ThemeMinimal
	}

	surface := NewBrailleSurface(80, 20)
	ctrl, err := session.New(session.Options{
		Viewport: opts.Viewport,
		Surface:  surface,
		Text:     input,
		Logger:   logger,
		ODE:      opts.ODE,
		Seeds:    opts.Seeds,
		MaxSteps: opts.MaxSteps,
	})
	if err != nil {
		return Model{}, err
	}

	return Model{
		ctrl:    ctrl,
		surface: surface,
		input:   input,
		clicks:  session.NewClickTracker(),
		keys:    defaultKeys(),
		help:    help.New(),
		styles:  newStyles(theme),
		log:     logger,
		now:     time.Now,
		width:   80,
		height:  20 + plotTop + footerRows,
		status:  "double click to add initial point",
	}, nil
}

func (m Model) Controller() *session.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if m.input.ti.Focused() {
			return m.inputKey(msg)
		}
		return m.plotKey(msg)
	}
	return m, nil
}

// layout sizes the plot to the window, leaving room for the help panel
// when it is open, and redraws.
func (m *Model) layout() {
	cols := m.width
	if m.ctrl.HelpOpen() && m.width-helpWidth >= minPlotCols {
		cols = m.width - helpWidth
	}
	rows := m.height - plotTop - footerRows
	if rows < minPlotRows {
		rows = minPlotRows
	}
	if cols < minPlotCols {
		cols = minPlotCols
	}
	m.input.ti.Width = m.width - len(m.input.ti.Prompt) - 1
	c, r := m.surface.Size()
	if c == cols && r == rows {
		return
	}
	m.surface.Resize(cols, rows)
	m.ctrl.Redraw()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	return m, tea.Quit
}

func (m Model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	case key.Matches(msg, m.keys.Submit):
		if err := m.ctrl.Submit(m.input.Text()); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("plotted dy/dx = "+m.ctrl.Func().Source(), false)
		}
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		m.input.ti.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input.ti, cmd = m.input.ti.Update(msg)
	return m, cmd
}

func (m Model) plotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.ctrl.Viewport()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.ctrl.Pan(0, v.GridSpacing)
	case key.Matches(msg, m.keys.Down):
		m.ctrl.Pan(0, -v.GridSpacing)
	case key.Matches(msg, m.keys.Left):
		m.ctrl.Pan(-v.GridSpacing, 0)
	case key.Matches(msg, m.keys.Right):
		m.ctrl.Pan(v.GridSpacing, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctrl.Zoom(1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctrl.Zoom(-1)
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.ClearSeeds()
		m.setStatus("solutions cleared", false)
	case key.Matches(msg, m.keys.Seed):
		m.ctrl.AddSeed(v.Center())
		m.setStatus("seed at "+v.Center().String(), false)
	case key.Matches(msg, m.keys.Focus):
		return m, m.input.ti.Focus()
	case key.Matches(msg, m.keys.Help):
		m.ctrl.ToggleHelp()
		m.layout()
	}
	return m, nil
}

// hit maps a terminal cell to a region and, for the plot, a plot cell.
func (m Model) hit(x, y int) (session.Region, int, int) {
	cols, rows := m.surface.Size()
	switch {
	case y >= plotTop && y < plotTop+rows && x >= 0 && x < cols:
		return session.RegionPlot, x, y - plotTop
	case y == plotTop+rows:
		return session.RegionText, x, 0
	}
	return session.RegionNone, x, y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	region, col, row := m.hit(msg.X, msg.Y)
	ev := session.Event{Region: region}
	if region == session.RegionPlot {
		p := m.surface.CellToData(col, row)
		ev.X, ev.Y = p.X, p.Y
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			ev.Button = session.ButtonPrimary
			if region == session.RegionPlot {
				ev.Double = m.clicks.Press(m.now(), float64(msg.X), float64(msg.Y))
				if ev.Double {
					m.setStatus("seed at "+ev.Point().String(), false)
				}
			}
			m.ctrl.Press(ev)
			if region == session.RegionText {
				return m, m.input.ti.Focus()
			}
		case tea.MouseButtonRight:
			ev.Button = session.ButtonSecondary
			m.ctrl.Press(ev)
			if region == session.RegionPlot {
				m.setStatus("solutions cleared", false)
			}
		case tea.MouseButtonWheelUp:
			ev.Button = session.ButtonWheelUp
			m.ctrl.Scroll(ev)
		case tea.MouseButtonWheelDown:
			ev.Button = session.ButtonWheelDown
			m.ctrl.Scroll(ev)
		}
	case tea.MouseActionRelease:
		// X10 mouse mode does not say which button was released.
		ev.Button = session.ButtonPrimary
		m.ctrl.Release(ev)
	case tea.MouseActionMotion:
		m.ctrl.Motion(ev)
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) header() string {
	v := m.ctrl.Viewport()
	ode := "(none)"
	if f := m.ctrl.Func(); f != nil {
		ode = f.Source()
	}
	info := fmt.Sprintf("  center (%.2f, %.2f)  size %.3g×%.3g  step %.3g  seeds %d",
		v.CenterX, v.CenterY, v.Width, v.Height, v.Step, len(m.ctrl.Seeds()))
	return m.styles.header.Render("dy/dx = "+ode) + m.styles.label.Render(info)
}

func (m Model) helpPanel() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Help") + "\n")
	for _, line := range session.HelpLines {
		b.WriteString(m.styles.value.Render(line) + "\n")
	}
	b.WriteString("\n")
	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			b.WriteString(m.styles.header.Render(fmt.Sprintf("%-7s", h.Key)) + " " + m.styles.label.Render(h.Desc) + "\n")
		}
	}
	_, rows := m.surface.Size()
	return m.styles.panel.Width(helpWidth - 2).MaxHeight(rows).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) View() string {
	plot := m.surface.Render(m.styles.field, m.styles.curve)
	if m.ctrl.HelpOpen() {
		plot = lipgloss.JoinHorizontal(lipgloss.Top, plot, m.helpPanel())
	}

	status := m.styles.status.Render(m.status)
	if m.statusErr {
		status = m.styles.err.Render(m.status)
	}

	return strings.Join([]string{
		m.header(),
		plot,
		m.input.ti.View(),
		status,
		m.help.View(m.keys),
	}, "\n")
}

// Run starts the terminal front end and blocks until the user quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
