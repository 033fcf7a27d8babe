package ports

import (
	"context"

	"revreview/domain/report"
)

// Fetcher runs the report query and returns the complete result set
type Fetcher interface {
	Fetch(ctx context.Context) (*report.Result, error)
}

// DocumentBuilder lays out a result as a worksheet document
type DocumentBuilder interface {
	Build(columns []string, rows []report.Row) (*report.Document, error)
}

// ReportWriter persists a built document and returns the path it was saved to
type ReportWriter interface {
	Save(doc *report.Document) (string, error)
}
