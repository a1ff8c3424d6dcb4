package gui

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/logging"
	"github.com/san-kum/slopefield/internal/session"
	"github.com/san-kum/slopefield/internal/viewport"
)

const (
	windowW = 980
	windowH = 760

	// pixels a second press may drift and still count as a double-click
	clickRadius = 4
)

// Theme colors
var (
	ColBg      = rl.NewColor(250, 250, 250, 255)
	ColPlot    = rl.NewColor(255, 255, 255, 255)
	ColFrame   = rl.NewColor(60, 60, 60, 255)
	ColArrow   = rl.NewColor(120, 120, 120, 255)
	ColText    = rl.NewColor(30, 30, 30, 255)
	ColTextDim = rl.NewColor(130, 130, 130, 255)
	ColError   = rl.NewColor(200, 30, 30, 255)
	ColPanel   = rl.NewColor(240, 240, 235, 245)
)

var (
	plotRect = Rect{X: 60, Y: 40, W: 640, H: 640}
	textRect = Rect{X: 60, Y: 705, W: 640, H: 32}
	helpRect = Rect{X: 720, Y: 40, W: 240, H: 200}
)

type Options struct {
	Viewport *viewport.Viewport
	ODE      string
	Seeds    []dynamo.Point
	MaxSteps int
	// Color is the curve color as #rrggbb.
	Color  string
	Logger *log.Logger
}

type App struct {
	ctrl   *session.Controller
	scene  *Scene
	text   *TextBox
	clicks *session.ClickTracker
	log    *log.Logger

	Font  rl.Font
	Curve rl.Color

	status    string
	statusErr bool
}

// initWindow opens the raylib window at 60 FPS with the default exit key
// disabled, so escape only leaves the text box.
func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowW, windowH, "slopefield")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when the system has it and the raylib
// default font otherwise.
func loadFont() rl.Font {
	const path = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// parseColor reads #rrggbb.
func parseColor(s string) (rl.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rl.Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rl.Color{}, false
	}
	return rl.GetColor(uint(v<<8 | 0xff)), true
}

// NewApp builds the scene and the session controller. The window must
// already be open because fonts are GPU textures.
func NewApp(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	curve, ok := parseColor(opts.Color)
	if !ok {
		curve = rl.NewColor(0x1f, 0x77, 0xb4, 255)
	}

	scene := NewScene(plotRect)
	text := NewTextBox(256)
	ctrl, err := session.New(session.Options{
		Viewport: opts.Viewport,
		Surface:  scene,
		Text:     text,
		Logger:   logger,
		ODE:      opts.ODE,
		Seeds:    opts.Seeds,
		MaxSteps: opts.MaxSteps,
	})
	if err != nil {
		return nil, err
	}

	clicks := session.NewClickTracker()
	clicks.Radius = clickRadius

	return &App{
		ctrl:   ctrl,
		scene:  scene,
		text:   text,
		clicks: clicks,
		log:    logger,
		Font:   loadFont(),
		Curve:  curve,
		status: "double click to add initial point",
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	initWindow()
	defer rl.CloseWindow()
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.ctrl.Closed() {
		a.Update()
		a.Draw()
	}
}

// event maps a window position to a controller event.
func (a *App) event(pos rl.Vector2) session.Event {
	x, y := float64(pos.X), float64(pos.Y)
	switch {
	case a.scene.Plot.Contains(x, y):
		p := a.scene.ToData(x, y)
		return session.Event{Region: session.RegionPlot, X: p.X, Y: p.Y}
	case textRect.Contains(x, y):
		return session.Event{Region: session.RegionText}
	}
	return session.Event{}
}

func (a *App) Update() {
	if rl.WindowShouldClose() {
		a.ctrl.Close()
		return
	}
	a.handleMouse()
	if a.text.Focused {
		a.handleText()
	} else {
		a.handleKeys()
	}
}

func (a *App) handleMouse() {
	pos := rl.GetMousePosition()
	ev := a.event(pos)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		ev.Button = session.ButtonPrimary
		if ev.Region == session.RegionPlot {
			ev.Double = a.clicks.Press(time.Now(), float64(pos.X), float64(pos.Y))
			if ev.Double {
				a.setStatus("seed at "+ev.Point().String(), false)
			}
		}
		a.text.Focused = ev.Region == session.RegionText
		a.ctrl.Press(ev)
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		ev.Button = session.ButtonSecondary
		a.ctrl.Press(ev)
		if ev.Region == session.RegionPlot {
			a.setStatus("solutions cleared", false)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		ev.Button = session.ButtonPrimary
		a.ctrl.Release(ev)
	}

	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		a.ctrl.Motion(ev)
	}

	if w := rl.GetMouseWheelMove(); w != 0 {
		ev.Button = session.ButtonWheelUp
		if w < 0 {
			ev.Button = session.ButtonWheelDown
		}
		ev.Step = float64(w)
		a.ctrl.Scroll(ev)
	}
}

func (a *App) handleText() {
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		a.text.Insert(rune(r))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace):
		a.text.Backspace()
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		if err := a.ctrl.Submit(a.text.Text()); err != nil {
			a.setStatus(err.Error(), true)
		} else {
			a.setStatus("plotted dy/dx = "+a.ctrl.Func().Source(), false)
		}
	case rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyTab):
		a.text.Focused = false
	}
}

func (a *App) handleKeys() {
	v := a.ctrl.Viewport()
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		switch r {
		case '?':
			a.ctrl.ToggleHelp()
		case 'c':
			a.ctrl.ClearSeeds()
			a.setStatus("solutions cleared", false)
		case 's':
			a.ctrl.AddSeed(v.Center())
		case '+', '=':
			a.ctrl.Zoom(1)
		case '-':
			a.ctrl.Zoom(-1)
		case 'q':
			a.ctrl.Close()
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyTab):
		a.text.Focused = true
	case rl.IsKeyPressed(rl.KeyF1):
		a.ctrl.ToggleHelp()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.ctrl.CloseHelp()
	case rl.IsKeyPressed(rl.KeyUp):
		a.ctrl.Pan(0, v.GridSpacing)
	case rl.IsKeyPressed(rl.KeyDown):
		a.ctrl.Pan(0, -v.GridSpacing)
	case rl.IsKeyPressed(rl.KeyLeft):
		a.ctrl.Pan(-v.GridSpacing, 0)
	case rl.IsKeyPressed(rl.KeyRight):
		a.ctrl.Pan(v.GridSpacing, 0)
	}
}

func (a *App) setStatus(s string, isErr bool) {
	a.status, a.statusErr = s, isErr
}
