// Package types provides shared types for the dashboard feature.
package types //nolint:revive // intentional: imported with alias dashtypes

import (
	dash "github.com/leapstack-labs/tabview/internal/dashboard"
)

// UploadField is the multipart field holding the CSV file.
const UploadField = "file"

// ViewSignals are the datastar signals sent by the page and column widgets.
type ViewSignals struct {
	Page   string `json:"page"`
	X      string `json:"x"`
	Y      string `json:"y"`
	Column string `json:"column"`
	Lat    string `json:"lat"`
	Lon    string `json:"lon"`
}

// Selections converts the signals into view selections.
func (s ViewSignals) Selections() dash.Selections {
	return dash.Selections{X: s.X, Y: s.Y, Column: s.Column, Lat: s.Lat, Lon: s.Lon}
}

// SignalsFor returns the signals that reproduce the page and selections of out.
func SignalsFor(out dash.Output) ViewSignals {
	sel := out.Selections
	return ViewSignals{
		Page:   out.Page.Slug(),
		X:      sel.X,
		Y:      sel.Y,
		Column: sel.Column,
		Lat:    sel.Lat,
		Lon:    sel.Lon,
	}
}

// StatusData is the sidebar summary of the session's dataset.
type StatusData struct {
	Loaded bool
	Name   string
	Rows   int
	Width  int
}

// PageData is everything the full page shell needs.
type PageData struct {
	Output dash.Output
	Status StatusData
	IsDev  bool
}
