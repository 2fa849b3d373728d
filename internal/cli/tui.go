package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/core/view"
)

// Editor styles
var (
	editCurveStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	editBaseStyle     = lipgloss.NewStyle().Foreground(colorDim)
	editAnchorStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	editHandleStyle   = lipgloss.NewStyle().Foreground(colorBlue)
	editGuideStyle    = lipgloss.NewStyle().Foreground(colorGray)
	editSelectedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	editTabStyle      = lipgloss.NewStyle().Foreground(colorGray)
	editActiveTab     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Underline(true)
)

const (
	// canvasTop is the number of lines drawn above the canvas.
	canvasTop = 2
	// canvasChrome is the number of lines around the canvas.
	canvasChrome = canvasTop + 3

	nudgeSmall = 0.01
	nudgeLarge = 0.05
	zoomStep   = 1.25
	// grabRadius is how close, in surface units, a click must land to pick up
	// an anchor or handle.
	grabRadius = 3.0
)

func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <config>",
		Short: "Edit edges in an interactive terminal editor",
		Long: `Open the edge library of a puzzle config in a terminal editor.

Keys:
  tab/shift+tab  next/previous edge      [ ]  previous/next point
  t              cycle anchor/handles    arrows, H J K L  nudge (0.01, 0.05)
  s              smooth point            m    toggle Free/Continuous
  i              insert after point      x    delete point
  + -            zoom                    r    reset view
  w, ctrl+s      save                    q    quit

Mouse: drag anchors and handles (or empty space to pan), scroll to zoom,
right-click to insert a point.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			m := newEditorModel(cfg, func(cfg grid.Config) error { return saveConfig(cfg, path) })
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(editorModel); ok && fm.dirty {
				printWarning("Quit with unsaved changes")
			}
			return nil
		},
	}
}

// =============================================================================
// editorModel - Interactive edge editor
// =============================================================================

// target is the part of a point being edited.
type target int

const (
	targetAnchor target = iota
	targetLeft
	targetRight
)

func (t target) String() string {
	switch t {
	case targetLeft:
		return "in handle"
	case targetRight:
		return "out handle"
	default:
		return "anchor"
	}
}

func (t target) side() bezier.Side {
	if t == targetLeft {
		return bezier.SideLeft
	}
	return bezier.SideRight
}

type drag struct {
	pan    bool
	last   view.ScreenPoint
	point  int
	target target
}

type editorModel struct {
	cfg  grid.Config
	save func(grid.Config) error

	edge   int
	point  int
	target target
	tr     view.Transform
	width  int
	height int

	drag     *drag
	dirty    bool
	quitting bool
	status   string
	err      error
}

func newEditorModel(cfg grid.Config, save func(grid.Config) error) editorModel {
	m := editorModel{cfg: cfg, save: save}
	m.resize(80, 24)
	return m
}

func (m *editorModel) resize(w, h int) {
	m.width, m.height = max(w, 20), max(h-canvasChrome, 5)
	zoom, pan := m.tr.Zoom, m.tr.Pan
	m.tr = view.New(float64(m.width), float64(m.height*2), float64(m.width)/10)
	if zoom != 0 {
		m.tr.Zoom, m.tr.Pan = zoom, pan
	}
}

func (m editorModel) current() (edge.Edge, bool) {
	if m.edge < 0 || m.edge >= len(m.cfg.EdgeConfigs) {
		return edge.Edge{}, false
	}
	return m.cfg.EdgeConfigs[m.edge], true
}

// targets lists what can be grabbed at point i: the first anchor only has an
// outgoing handle and the last only an incoming one.
func targets(e edge.Edge, i int) []target {
	switch {
	case i == 0:
		return []target{targetAnchor, targetRight}
	case i == e.Last():
		return []target{targetAnchor, targetLeft}
	default:
		return []target{targetAnchor, targetLeft, targetRight}
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.quitting = false
	}
	m.err = nil

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.dirty && !m.quitting {
			m.quitting = true
			m.status = "unsaved changes; press q again to quit or w to save"
			return m, nil
		}
		return m, tea.Quit
	case "w", "ctrl+s":
		if err := m.save(m.cfg); err != nil {
			m.err = err
			return m, nil
		}
		m.dirty = false
		m.status = "saved"
	case "tab":
		m.selectEdge(m.edge + 1)
	case "shift+tab":
		m.selectEdge(m.edge - 1)
	case "]":
		m.selectPoint(m.point + 1)
	case "[":
		m.selectPoint(m.point - 1)
	case "t":
		if e, ok := m.current(); ok {
			ts := targets(e, m.point)
			for i, t := range ts {
				if t == m.target {
					m.target = ts[(i+1)%len(ts)]
					break
				}
			}
		}
	case "up":
		m.nudge(0, -nudgeSmall)
	case "down":
		m.nudge(0, nudgeSmall)
	case "left":
		m.nudge(-nudgeSmall, 0)
	case "right":
		m.nudge(nudgeSmall, 0)
	case "K":
		m.nudge(0, -nudgeLarge)
	case "J":
		m.nudge(0, nudgeLarge)
	case "H":
		m.nudge(-nudgeLarge, 0)
	case "L":
		m.nudge(nudgeLarge, 0)
	case "s":
		m.apply(func(e edge.Edge) (edge.Edge, error) { return e.Smooth(m.point) })
	case "m":
		m.apply(func(e edge.Edge) (edge.Edge, error) { return e.ToggleMode(m.point) })
	case "u":
		m.toggleSelected()
	case "i":
		m.insertAfter()
	case "x":
		m.apply(func(e edge.Edge) (edge.Edge, error) { return e.DeletePoint(m.point) })
		if e, ok := m.current(); ok {
			m.selectPoint(min(m.point, e.Last()))
		}
	case "+", "=":
		m.tr = m.tr.WithZoom(zoomStep, m.centre())
	case "-", "_":
		m.tr = m.tr.WithZoom(1/zoomStep, m.centre())
	case "r":
		m.tr = m.tr.Reset()
	}
	return m, nil
}

func (m *editorModel) handleMouse(msg tea.MouseMsg) {
	at := view.ScreenPoint{X: float64(msg.X), Y: float64(msg.Y-canvasTop) * 2}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.tr = m.tr.WithZoom(zoomStep, at)
	case msg.Button == tea.MouseButtonWheelDown:
		m.tr = m.tr.WithZoom(1/zoomStep, at)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.insertAt(m.tr.FromView(at))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if i, t, ok := m.grab(at); ok {
			m.point, m.target = i, t
			m.drag = &drag{point: i, target: t}
		} else {
			m.drag = &drag{pan: true, last: at}
		}
	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		if m.drag.pan {
			m.tr = m.tr.WithPan(at.X-m.drag.last.X, at.Y-m.drag.last.Y)
			m.drag.last = at
			return
		}
		m.moveTo(m.drag.point, m.drag.target, m.tr.FromView(at))
	case msg.Action == tea.MouseActionRelease:
		m.drag = nil
	}
}

// grab finds the anchor or handle under the pointer. Anchors win ties, so a
// collapsed handle is reached with t and the arrow keys.
func (m editorModel) grab(at view.ScreenPoint) (int, target, bool) {
	e, ok := m.current()
	if !ok {
		return 0, 0, false
	}
	dist := func(v bezier.Vector2) float64 {
		p := m.tr.ToView(v)
		return math.Hypot(p.X-at.X, p.Y-at.Y)
	}

	best, bestT, bestD := -1, targetAnchor, grabRadius
	for i, p := range e.Points {
		for _, t := range targets(e, i) {
			pos := p.Position
			switch t {
			case targetLeft:
				pos = p.LeftAbs()
			case targetRight:
				pos = p.RightAbs()
			}
			d := dist(pos)
			if d < bestD {
				best, bestT, bestD = i, t, d
			}
		}
	}
	return best, bestT, best >= 0
}

func (m *editorModel) selectEdge(i int) {
	n := len(m.cfg.EdgeConfigs)
	if n == 0 {
		return
	}
	m.edge = ((i % n) + n) % n
	m.point, m.target = 0, targetAnchor
}

func (m *editorModel) selectPoint(i int) {
	e, ok := m.current()
	if !ok {
		return
	}
	m.point = max(0, min(e.Last(), i))
	if !containsTarget(targets(e, m.point), m.target) {
		m.target = targetAnchor
	}
}

func containsTarget(ts []target, t target) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

// apply replaces the current edge with fn's result and records errors in the
// status line.
func (m *editorModel) apply(fn func(edge.Edge) (edge.Edge, error)) {
	e, ok := m.current()
	if !ok {
		return
	}
	e, err := fn(e)
	if err != nil {
		m.err = err
		return
	}
	cfg, err := m.cfg.WithEdge(e)
	if err != nil {
		m.err = err
		return
	}
	m.cfg, m.dirty, m.status = cfg, true, ""
}

func (m *editorModel) moveTo(i int, t target, pos bezier.Vector2) {
	m.apply(func(e edge.Edge) (edge.Edge, error) {
		if t == targetAnchor {
			return e.MovePoint(i, pos)
		}
		return e.MoveHandleTo(i, t.side(), pos)
	})
}

func (m *editorModel) nudge(dx, dy float64) {
	e, ok := m.current()
	if !ok {
		return
	}
	p := e.Points[m.point]
	pos := p.Position
	switch m.target {
	case targetLeft:
		pos = p.LeftAbs()
	case targetRight:
		pos = p.RightAbs()
	}
	m.moveTo(m.point, m.target, pos.Add(bezier.Vec(dx, dy)))
}

// insertAfter inserts a point halfway along the segment leaving the selected point.
// toggleSelected adds or removes the current edge from the generation selection.
func (m *editorModel) toggleSelected() {
	e, ok := m.current()
	if !ok {
		return
	}
	cfg, err := m.cfg.WithSelected(e.ID, !m.cfg.IsSelected(e.ID))
	if err != nil {
		m.err = err
		return
	}
	m.cfg, m.dirty = cfg, true
	if cfg.IsSelected(e.ID) {
		m.status = e.ID + " used for generation"
	} else {
		m.status = e.ID + " not used for generation"
	}
}

func (m *editorModel) insertAfter() {
	e, ok := m.current()
	if !ok {
		return
	}
	segs := e.Segments()
	if len(segs) == 0 {
		return
	}
	i := min(m.point, len(segs)-1)
	m.insertAt(segs[i].Eval(0.5))
}

func (m *editorModel) insertAt(pos bezier.Vector2) {
	var idx int
	m.apply(func(e edge.Edge) (edge.Edge, error) {
		out, i, err := e.InsertPoint(pos)
		idx = i
		return out, err
	})
	if m.err == nil {
		m.point, m.target = idx, targetAnchor
	}
}

func (m editorModel) centre() view.ScreenPoint {
	return view.ScreenPoint{X: m.tr.Width / 2, Y: m.tr.Height / 2}
}

// =============================================================================
// Rendering
// =============================================================================

// canvas is a character grid with one style per cell.
type canvas struct {
	w, h   int
	cells  [][]rune
	styles [][]*lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h), styles: make([][]*lipgloss.Style, h)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]*lipgloss.Style, w)
	}
	return c
}

// set plots r at surface point p; surface y runs at twice the row resolution.
func (c *canvas) set(p view.ScreenPoint, r rune, style *lipgloss.Style) {
	x, y := int(math.Round(p.X)), int(math.Round(p.Y/2))
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
	c.styles[y][x] = style
}

func (c *canvas) line(a, b view.ScreenPoint, r rune, style *lipgloss.Style) {
	n := int(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)/2)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.set(view.ScreenPoint{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, r, style)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		for x, r := range row {
			if s := c.styles[y][x]; s != nil {
				b.WriteString(s.Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		if y < len(c.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m editorModel) drawEdge(e edge.Edge) *canvas {
	c := newCanvas(m.width, m.height)
	c.line(m.tr.ToView(bezier.Vec(0, 0)), m.tr.ToView(bezier.Vec(1, 0)), '─', &editBaseStyle)

	for _, seg := range e.Segments() {
		const steps = 64
		prev := m.tr.ToView(seg.Eval(0))
		for i := 1; i <= steps; i++ {
			next := m.tr.ToView(seg.Eval(float64(i) / steps))
			c.line(prev, next, '•', &editCurveStyle)
			prev = next
		}
	}

	for i, p := range e.Points {
		anchor := m.tr.ToView(p.Position)
		for _, t := range targets(e, i)[1:] {
			h := p.RightAbs()
			if t == targetLeft {
				h = p.LeftAbs()
			}
			hv := m.tr.ToView(h)
			c.line(anchor, hv, '·', &editGuideStyle)
			style := &editHandleStyle
			if i == m.point && t == m.target {
				style = &editSelectedStyle
			}
			c.set(hv, '◆', style)
		}
	}
	for i, p := range e.Points {
		r, style := '○', &editAnchorStyle
		if p.Mode() == bezier.ModeContinuous {
			r = '●'
		}
		if i == m.point && m.target == targetAnchor {
			style = &editSelectedStyle
		}
		c.set(m.tr.ToView(p.Position), r, style)
	}
	return c
}

func (m editorModel) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(m.cfg.EdgeConfigs))
	for i, e := range m.cfg.EdgeConfigs {
		label := e.Name
		if m.cfg.IsSelected(e.ID) {
			label += " " + iconSuccess
		}
		if i == m.edge {
			tabs = append(tabs, editActiveTab.Render(label))
		} else {
			tabs = append(tabs, editTabStyle.Render(label))
		}
	}
	title := StyleTitle.Render("jigsaw edit")
	if m.dirty {
		title += StyleWarning.Render(" *")
	}
	b.WriteString(title + "  " + strings.Join(tabs, StyleDim.Render(" │ ")))
	b.WriteString("\n\n")

	e, ok := m.current()
	if !ok {
		b.WriteString(StyleDim.Render("The edge library is empty."))
		b.WriteString(strings.Repeat("\n", m.height))
	} else {
		b.WriteString(m.drawEdge(e).String())
	}
	b.WriteString("\n\n")

	if ok {
		p := e.Points[m.point]
		fmt.Fprintf(&b, "%s %s  %s %d/%d  %s  %s (%s, %s)  %s %.0f%%",
			StyleDim.Render("edge"), StyleValue.Render(e.ID),
			StyleDim.Render("point"), m.point, e.Last(),
			StyleNumber.Render(string(p.Mode())),
			StyleDim.Render(m.target.String()),
			edge.FormatFloat(round3(p.Position.X)), edge.FormatFloat(round3(p.Position.Y)),
			StyleDim.Render("zoom"), m.zoomPercent())
	}
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError + " " + m.err.Error()))
	case m.status != "":
		b.WriteString(StyleDim.Render(m.status))
	default:
		b.WriteString(StyleDim.Render("tab edge  u use  [ ] point  t handle  arrows move  s smooth  m mode  i insert  x delete  w save  q quit"))
	}
	return b.String()
}

func (m editorModel) zoomPercent() float64 {
	if m.tr.Zoom == 0 {
		return 100
	}
	return m.tr.Zoom * 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
