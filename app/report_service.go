package app

import (
	"context"
	"time"

	"revreview/internal"
	"revreview/internal/errors"
	"revreview/ports"

	"github.com/google/uuid"
)

// ReportService runs one export: fetch the rows, lay them out, save the workbook
type ReportService struct {
	fetcher ports.Fetcher
	builder ports.DocumentBuilder
	writer  ports.ReportWriter
	logger  *internal.Logger
}

// NewReportService creates a report service
func NewReportService(fetcher ports.Fetcher, builder ports.DocumentBuilder, writer ports.ReportWriter, logger *internal.Logger) *ReportService {
	return &ReportService{
		fetcher: fetcher,
		builder: builder,
		writer:  writer,
		logger:  logger,
	}
}

// Run executes the export once and returns the saved path. Any failure
// aborts the run; nothing is retried.
func (s *ReportService) Run(ctx context.Context) (string, error) {
	runID := uuid.New()
	start := time.Now()
	s.logger.Info("[ReportService] run %s started", runID)

	result, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("[ReportService] run %s fetch failed: %v", runID, err)
		return "", err
	}

	buildStart := time.Now()
	doc, err := s.builder.Build(result.Columns, result.Rows)
	if err != nil {
		s.logger.Error("[ReportService] run %s layout failed: %v", runID, err)
		return "", errors.Wrap(err, "failed to build report")
	}
	s.logger.Debug("[ReportService] laid out %d rows x %d columns in %s",
		doc.RowCount(), doc.ColumnCount(), time.Since(buildStart).Round(time.Millisecond))

	path, err := s.writer.Save(doc)
	if err != nil {
		s.logger.Error("[ReportService] run %s save failed: %v", runID, err)
		return "", err
	}

	s.logger.Info("[ReportService] run %s saved %d data rows to %s in %s",
		runID, doc.RowCount()-1, path, time.Since(start).Round(time.Millisecond))
	return path, nil
}
