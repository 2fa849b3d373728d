package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/view"
)

// EdgeSVG draws e in editor space through tr.
func EdgeSVG(e edge.Edge, tr view.Transform) []byte {
	w, h := edge.FormatFloat(tr.Width), edge.FormatFloat(tr.Height)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n", w, h, w, h)
	buf.WriteString(`  <defs>` + "\n")
	buf.WriteString(`    <pattern id="grid" width="40" height="40" patternUnits="userSpaceOnUse">` + "\n")
	buf.WriteString(`      <path d="M 40 0 L 0 0 0 40" fill="none" stroke="#00000008" stroke-width="1" />` + "\n")
	buf.WriteString(`    </pattern>` + "\n")
	buf.WriteString(`  </defs>` + "\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="white" />` + "\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="url(#grid)" />` + "\n")

	axisL, axisR := tr.ToView(bezier.Vec(0, 0)), tr.ToView(bezier.Vec(1, 0))
	guide(&buf, axisL.X, axisL.Y, axisR.X, axisR.Y)
	guide(&buf, axisL.X, 0, axisL.X, tr.Height)
	guide(&buf, axisR.X, 0, axisR.X, tr.Height)

	d := viewPath(e, tr)
	fmt.Fprintf(&buf, `  <path d="%s" stroke="#3b82f6" stroke-width="6" stroke-linecap="round" fill="none" opacity="0.05" />`+"\n", d)
	fmt.Fprintf(&buf, `  <path d="%s" stroke="#3b82f6" stroke-width="3" stroke-linecap="round" fill="none" />`+"\n", d)

	for i, p := range e.Points {
		pos := tr.ToView(p.Position)
		for _, side := range handleSides(e, i) {
			hp := tr.ToView(p.Position.Add(p.Handle(side)))
			fmt.Fprintf(&buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#9ca3af" stroke-width="1" />`+"\n",
				f(pos.X), f(pos.Y), f(hp.X), f(hp.Y))
			stroke := "#9ca3af"
			if p.Mode() == bezier.ModeFree {
				stroke = "#10b981"
			}
			fmt.Fprintf(&buf, `  <circle class="handle" cx="%s" cy="%s" r="5" fill="#ffffff" stroke="%s" stroke-width="2" />`+"\n",
				f(hp.X), f(hp.Y), stroke)
		}
		fill, stroke := "white", "#3b82f6"
		if e.IsEndpoint(i) {
			fill, stroke = "#ef4444", "#ffffff"
		}
		fmt.Fprintf(&buf, `  <circle class="anchor" cx="%s" cy="%s" r="7" fill="%s" stroke="%s" stroke-width="2" />`+"\n",
			f(pos.X), f(pos.Y), fill, stroke)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// handleSides lists the handles the editor shows for anchor i: endpoints only
// show the handle pointing into the curve.
func handleSides(e edge.Edge, i int) []bezier.Side {
	switch {
	case e.Len() == 1:
		return nil
	case i == 0:
		return []bezier.Side{bezier.SideRight}
	case i == e.Last():
		return []bezier.Side{bezier.SideLeft}
	}
	return []bezier.Side{bezier.SideLeft, bezier.SideRight}
}

func viewPath(e edge.Edge, tr view.Transform) string {
	if e.Len() < 2 {
		return ""
	}
	var b bytes.Buffer
	start := tr.ToView(e.Points[0].Position)
	fmt.Fprintf(&b, "M %s %s", f(start.X), f(start.Y))
	for _, s := range e.Segments() {
		p1, p2, p3 := tr.ToView(s.P1), tr.ToView(s.P2), tr.ToView(s.P3)
		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s", f(p1.X), f(p1.Y), f(p2.X), f(p2.Y), f(p3.X), f(p3.Y))
	}
	return b.String()
}

func guide(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e7eb" stroke-width="1" stroke-dasharray="4" />`+"\n",
		f(x1), f(y1), f(x2), f(y2))
}

func f(v float64) string { return edge.FormatFloat(v) }
