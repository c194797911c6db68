package web

import (
	"strconv"

	"career-recommender/internal/recommend"
)

const (
	chartTitle    = "Career Recommendation Breakdown"
	chartHeight   = 200.0
	chartBarWidth = 60.0
	chartGap      = 40.0
	chartTop      = 30.0
	chartMax      = 100.0
)

var barColors = []string{"#4c78a8", "#f58518", "#54a24b"}

// Chart is the bar chart drawn on the result page.
type Chart struct {
	Title  string
	TitleX float64
	Width  float64
	Height float64
	Base   float64
	Bars   []Bar
}

// Bar is one metric bar in SVG user units.
type Bar struct {
	Label  string
	Value  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string
	LabelX float64
}

func newChart(metrics []recommend.Metric) Chart {
	c := Chart{
		Title:  chartTitle,
		Width:  chartGap + float64(len(metrics))*(chartBarWidth+chartGap),
		Height: chartTop + chartHeight + 40,
		Base:   chartTop + chartHeight,
	}
	c.TitleX = c.Width / 2
	for i, m := range metrics {
		score := min(max(m.Score, 0), chartMax)
		h := chartHeight * score / chartMax
		x := chartGap + float64(i)*(chartBarWidth+chartGap)
		c.Bars = append(c.Bars, Bar{
			Label:  m.Name,
			Value:  strconv.FormatFloat(m.Score, 'f', -1, 64),
			X:      x,
			Y:      c.Base - h,
			Width:  chartBarWidth,
			Height: h,
			Color:  barColors[i%len(barColors)],
			LabelX: x + chartBarWidth/2,
		})
	}
	return c
}
