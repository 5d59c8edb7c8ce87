package domain

import "time"

// UseCaseReport result of one pipeline run
type UseCaseReport struct {
	Industry string
	UseCases []string
	Datasets []string
	File     string
}

// Run stored pipeline run
type Run struct {
	ID        int64
	Industry  string
	UseCases  []string
	Datasets  []string
	File      string
	CreatedAt time.Time
}
