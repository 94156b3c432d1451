package regionstats

import (
	"fmt"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
)

type Plot struct {
	Fig *grob.Fig
	Lay *grob.Layout
}

type Opt func(plot *Plot) *Plot

func NewPlot(opt ...Opt) *Plot {
	fig := &grob.Fig{}
	lay := &grob.Layout{}
	fig.Layout = lay
	p := &Plot{Fig: fig, Lay: lay}
	for _, o := range opt {
		o(p)
	}

	return p
}

func WithWidth(w float64) Opt {
	if w < 0.0 {
		panic(fmt.Errorf("negative width"))
	}
	return func(p *Plot) *Plot {
		p.Lay.Width = w
		return p
	}
}

func WithHeight(h float64) Opt {
	if h < 0.0 {
		panic(fmt.Errorf("negative height"))
	}
	return func(p *Plot) *Plot {
		p.Lay.Height = h
		return p
	}
}

func WithTitle(title string) Opt {
	return func(p *Plot) *Plot { p.Lay.Title = &grob.LayoutTitle{Text: title}; return p }
}

func WithLegend(show bool) Opt {
	return func(p *Plot) *Plot {
		if show {
			p.Lay.Showlegend = grob.True
		} else {
			p.Lay.Showlegend = grob.False
		}

		return p
	}
}

func WithXlabel(label string) Opt {
	return func(p *Plot) *Plot {
		if p.Lay.Xaxis == nil {
			p.Lay.Xaxis = &grob.LayoutXaxis{}
		}

		if p.Lay.Xaxis.Title == nil {
			p.Lay.Xaxis.Title = &grob.LayoutXaxisTitle{}
			p.Lay.Xaxis.Title.Text = ""
		}

		xAxis := p.Lay.Xaxis

		subTitle := ""
		xLabel := xAxis.Title.Text.(string)
		if ind := strings.Index(xLabel, "<br>"); ind > 0 {
			subTitle = xLabel[ind:]
		}

		xAxis.Title.Text = label + subTitle
		return p
	}
}

func WithYlabel(label string) Opt {
	return func(p *Plot) *Plot {
		if p.Lay.Yaxis == nil {
			p.Lay.Yaxis = &grob.LayoutYaxis{}
		}
		if p.Lay.Yaxis.Title == nil {
			p.Lay.Yaxis.Title = &grob.LayoutYaxisTitle{}
		}

		yAxis := p.Lay.Yaxis
		yAxis.Title.Text = label
		return p
	}
}

// PlotLine adds a line trace. The x values are typically date labels.
func (p *Plot) PlotLine(x []string, y []float64, seriesName, color string, width float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("xy plots require equal lengths")
	}

	tr := &grob.Scatter{Name: seriesName, X: x, Y: y,
		Mode: grob.ScatterModeLines, Line: &grob.ScatterLine{Color: color, Width: width}}

	p.Fig.AddTraces(tr)

	return nil
}

// PlotBar adds a bar trace.
func (p *Plot) PlotBar(x []string, y []float64, seriesName string) error {
	if len(x) != len(y) {
		return fmt.Errorf("bar plots require equal lengths")
	}

	tr := &grob.Bar{Name: seriesName, X: x, Y: y}

	p.Fig.AddTraces(tr)

	return nil
}

// Render writes the figure as a self-contained HTML file.
func (p *Plot) Render(fileName string) {
	offline.ToHtml(p.Fig, fileName)
}
