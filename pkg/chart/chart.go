// Package chart builds the bar-chart view model for monthly report counts.
package chart

import "fmt"

const (
	Title       = "Bar Chart - Late Students"
	SeriesLabel = "Student"
	Color       = "#0770e0"
	Caption     = "Showing total late students for the last 6 months"
	tickLength  = 3
)

// Point is one month of the series.
type Point struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Bar is a rendered data point.
type Bar struct {
	Month string `json:"month"`
	Tick  string `json:"tick"`
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Chart is a fully resolved bar chart ready for any renderer.
type Chart struct {
	ClassName   string `json:"class_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SeriesLabel string `json:"series_label"`
	Color       string `json:"color"`
	Bars        []Bar  `json:"bars"`
	Total       int    `json:"total"`
	Footer      string `json:"footer"`
	Caption     string `json:"caption"`
}

// DefaultSeries is the sample series shown when no data is supplied.
func DefaultSeries() []Point {
	return []Point{
		{Month: "January", Count: 186},
		{Month: "February", Count: 305},
		{Month: "March", Count: 237},
		{Month: "April", Count: 73},
		{Month: "May", Count: 209},
		{Month: "June", Count: 214},
	}
}

// Build lays out one bar per point. An empty series falls back to DefaultSeries.
func Build(className string, items []Point) Chart {
	if len(items) == 0 {
		items = DefaultSeries()
	}

	bars := make([]Bar, 0, len(items))
	total := 0
	for _, p := range items {
		bars = append(bars, Bar{
			Month: p.Month,
			Tick:  Tick(p.Month),
			Value: p.Count,
			Label: fmt.Sprintf("%d", p.Count),
		})
		total += p.Count
	}

	return Chart{
		ClassName:   className,
		Title:       Title,
		Description: fmt.Sprintf("%s - %s", items[0].Month, items[len(items)-1].Month),
		SeriesLabel: SeriesLabel,
		Color:       Color,
		Bars:        bars,
		Total:       total,
		Footer:      fmt.Sprintf("Total Students : %d", total),
		Caption:     Caption,
	}
}

// Tick truncates a month name to its axis label.
func Tick(month string) string {
	runes := []rune(month)
	if len(runes) <= tickLength {
		return month
	}
	return string(runes[:tickLength])
}

// Max returns the tallest bar value, at least 1 so renderers can scale safely.
func (c Chart) Max() int {
	highest := 1
	for _, b := range c.Bars {
		if b.Value > highest {
			highest = b.Value
		}
	}
	return highest
}
