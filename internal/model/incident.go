package model

import "time"

// Incident is the canonical, defaulted form of a submitted traffic report.
// It is built once by the normaliser and never mutated afterwards; all
// downstream scoring reads this shape.
type Incident struct {
	Description        string
	Type               string
	Severity           string
	Location           string
	FullAddress        string
	Tags               []string
	PhotoURL           string
	CreatedAt          *time.Time
	ReporterReputation *float64
}

// HasPhoto reports whether a non-blank photo URL was supplied.
func (i *Incident) HasPhoto() bool {
	return i.PhotoURL != ""
}
