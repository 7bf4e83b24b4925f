package scene

import (
	"fmt"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorLine     = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorLabel    = color.RGBA{0x11, 0x11, 0x11, 0xff}

	// depth palette for discs without a reachable avatar (PNG output)
	discPalette = []color.RGBA{
		{0x7e, 0x9c, 0xd8, 0xff},
		{0x98, 0xbb, 0x6c, 0xff},
		{0xe6, 0xc3, 0x84, 0xff},
		{0xd2, 0x7e, 0x99, 0xff},
		{0x7a, 0xa8, 0x9f, 0xff},
	}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WriteSVG renders the scene to w. Pattern definitions go into <defs>;
// each node circle is filled from its pattern so the avatar image clips to
// the disc. Elements are emitted in paint order, lines first.
func (s *Scene) WriteSVG(w io.Writer, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	canvas.Def()
	for _, el := range s.order {
		ne, ok := el.(*NodeElement)
		if !ok {
			continue
		}
		p := s.patterns[ne.Node.ID]
		size := int(p.Size)
		fmt.Fprintf(canvas.Writer,
			"<pattern id=%q patternUnits=\"userSpaceOnUse\" x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\">\n",
			patternID(p.NodeID), -size/2, -size/2, size, size)
		if p.Href != "" {
			canvas.Image(0, 0, size, size, p.Href)
		}
		fmt.Fprintln(canvas.Writer, "</pattern>")
	}
	canvas.DefEnd()

	for _, el := range s.order {
		switch e := el.(type) {
		case *LineElement:
			canvas.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2),
				fmt.Sprintf("stroke:%s;stroke-width:2", css(colorLine)))
		case *NodeElement:
			canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", int(e.X), int(e.Y)))
			canvas.Circle(0, 0, int(e.Radius),
				fmt.Sprintf("fill:url(#%s);stroke:%s;stroke-width:1.5", patternID(e.Node.ID), css(colorStroke)))
			canvas.Gend()
		}
	}

	canvas.End()
	return nil
}

// SavePNG rasterizes the scene to path. Avatar images are not fetched;
// discs are filled from a depth palette with the node ID as label.
func (s *Scene) SavePNG(path string, width, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, el := range s.order {
		le, ok := el.(*LineElement)
		if !ok {
			continue
		}
		dc.SetColor(colorLine)
		dc.SetLineWidth(2)
		dc.DrawLine(le.X1, le.Y1, le.X2, le.Y2)
		dc.Stroke()
	}

	for _, el := range s.order {
		ne, ok := el.(*NodeElement)
		if !ok {
			continue
		}
		dc.SetColor(discPalette[ne.Node.Depth%len(discPalette)])
		dc.DrawCircle(ne.X, ne.Y, ne.Radius)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(ne.X, ne.Y, ne.Radius)
		dc.Stroke()
		dc.SetColor(colorLabel)
		dc.DrawStringAnchored(ne.Node.ID, ne.X, ne.Y+ne.Radius+12, 0.5, 0.5)
	}

	return dc.SavePNG(path)
}

func patternID(nodeID string) string {
	return "avatar-" + nodeID
}
