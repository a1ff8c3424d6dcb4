package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/session"
)

func vec(x, y float64) rl.Vector2 { return rl.NewVector2(float32(x), float32(y)) }

func rect(r Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawPlot()
	a.drawAxes()
	a.drawTextBox()
	a.drawHUD()
	if a.ctrl.HelpOpen() {
		a.drawHelp()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y float64, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, vec(x, y), float32(size), 1, color)
}

func (a *App) drawPlot() {
	p := a.scene.Plot
	rl.DrawRectangleRec(rect(p), ColPlot)

	rl.BeginScissorMode(int32(p.X), int32(p.Y), int32(p.W), int32(p.H))
	for _, s := range a.scene.Arrows() {
		rl.DrawLineEx(vec(s.X0, s.Y0), vec(s.X1, s.Y1), 1.5, ColArrow)
	}
	for _, t := range a.scene.Curves() {
		a.drawHalf(t.Backward)
		a.drawHalf(t.Forward)
		if t.Marker {
			if x, y, ok := a.scene.ToScreen(t.Seed); ok {
				rl.DrawCircleV(vec(x, y), 4, a.Curve)
			}
		}
	}
	rl.EndScissorMode()

	rl.DrawRectangleLinesEx(rect(p), 1, ColFrame)
}

func (a *App) drawHalf(pl dynamo.Polyline) {
	pts := a.scene.Polyline(pl)
	if len(pts) < 2 {
		return
	}
	strip := make([]rl.Vector2, len(pts))
	for i, q := range pts {
		strip[i] = vec(q[0], q[1])
	}
	rl.DrawLineStrip(strip, a.Curve)
}

// drawAxes labels the plot edges with the viewport bounds.
func (a *App) drawAxes() {
	p, b := a.scene.Plot, a.scene.Bounds()
	a.drawText(fmt.Sprintf("%.2f", b.XMin), p.X, p.Y+p.H+4, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%.2f", b.XMax), p.X+p.W-40, p.Y+p.H+4, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%.2f", b.YMax), p.X-52, p.Y, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%.2f", b.YMin), p.X-52, p.Y+p.H-14, 14, ColTextDim)
	a.drawText("x", p.X+p.W/2, p.Y+p.H+4, 14, ColTextDim)
	a.drawText("y", p.X-20, p.Y+p.H/2, 14, ColTextDim)
}

func (a *App) drawTextBox() {
	frame := ColFrame
	if a.text.Focused {
		frame = a.Curve
	}
	rl.DrawRectangleRec(rect(textRect), ColPlot)
	rl.DrawRectangleLinesEx(rect(textRect), 1, frame)

	a.drawText("dy/dx=", textRect.X-56, textRect.Y+8, 16, ColText)
	text := a.text.Text()
	col := ColText
	if strings.HasPrefix(text, "INVALID") {
		col = ColError
	}
	a.drawText(text, textRect.X+8, textRect.Y+8, 16, col)

	if a.text.Focused && int(rl.GetTime()*2)%2 == 0 {
		w := rl.MeasureTextEx(a.Font, text, 16, 1).X
		x := textRect.X + 9 + float64(w)
		rl.DrawLineEx(vec(x, textRect.Y+6), vec(x, textRect.Y+textRect.H-6), 1, ColText)
	}
}

func (a *App) drawHUD() {
	ode := "(none)"
	if f := a.ctrl.Func(); f != nil {
		ode = f.Source()
	}
	a.drawText("dy/dx = "+ode, plotRect.X, 12, 18, ColText)

	v := a.ctrl.Viewport()
	x := helpRect.X
	y := helpRect.Y + helpRect.H + 20
	if !a.ctrl.HelpOpen() {
		y = helpRect.Y
	}
	lines := []string{
		fmt.Sprintf("center (%.2f, %.2f)", v.CenterX, v.CenterY),
		fmt.Sprintf("size   %.3g x %.3g", v.Width, v.Height),
		fmt.Sprintf("step   %.3g", v.Step),
		fmt.Sprintf("seeds  %d", len(a.ctrl.Seeds())),
		fmt.Sprintf("%d FPS", rl.GetFPS()),
	}
	for i, l := range lines {
		a.drawText(l, x, y+float64(i)*20, 14, ColTextDim)
	}

	col := ColTextDim
	if a.statusErr {
		col = ColError
	}
	a.drawText(a.status, x, textRect.Y+8, 14, col)
	a.drawText("[?] HELP  [TAB] EDIT  [Q] QUIT", x, plotRect.Y+plotRect.H-14, 14, ColTextDim)
}

func (a *App) drawHelp() {
	rl.DrawRectangleRec(rect(helpRect), ColPanel)
	rl.DrawRectangleLinesEx(rect(helpRect), 1, ColFrame)
	a.drawText("Help", helpRect.X+10, helpRect.Y+10, 18, ColText)

	y := helpRect.Y + 40
	for _, line := range session.HelpLines {
		for _, l := range wrap(line, 28) {
			a.drawText(l, helpRect.X+10, y, 14, ColText)
			y += 18
		}
	}
}

// wrap breaks s into lines of at most width bytes at spaces.
func wrap(s string, width int) []string {
	var lines []string
	line := ""
	for _, w := range strings.Fields(s) {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
