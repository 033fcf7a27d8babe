package excel

import (
	"os"
	"path/filepath"
	"time"

	"revreview/domain/report"
	"revreview/internal"
	"revreview/internal/errors"

	"github.com/google/uuid"
)

// FileExt is the extension of saved reports
const FileExt = ".xlsx"

// Writer saves documents as dated workbooks in a fixed directory
type Writer struct {
	dir      string
	baseName string
	now      func() time.Time
	logger   *internal.Logger
}

// NewWriter creates a writer for <dir>/<baseName>_<YYYYMMDD>.xlsx
func NewWriter(dir, baseName string, now func() time.Time, logger *internal.Logger) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{dir: dir, baseName: baseName, now: now, logger: logger}
}

// OutputPath returns the path the report for the current run date is saved to
func (w *Writer) OutputPath() string {
	return filepath.Join(w.dir, w.baseName+"_"+w.now().Format("20060102")+FileExt)
}

// Save renders doc in memory, then writes it to a temporary file in the
// output directory and renames it into place. Nothing is left at the final
// path unless the whole write succeeded.
func (w *Writer) Save(doc *report.Document) (string, error) {
	f, err := Render(doc)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize workbook")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Write("failed to create output directory", err)
	}

	target := w.OutputPath()
	tmpPath := filepath.Join(w.dir, "."+w.baseName+"-"+uuid.NewString()+".tmp")
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Write("failed to create output file", err)
	}
	committed := false
	defer func() {
		if !committed {
			out.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := buf.WriteTo(out); err != nil {
		return "", errors.Write("failed to write output file", err)
	}
	if err := out.Sync(); err != nil {
		return "", errors.Write("failed to flush output file", err)
	}
	if err := out.Close(); err != nil {
		return "", errors.Write("failed to close output file", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", errors.Write("failed to move output file into place", err)
	}
	committed = true

	w.logger.Debug("[Writer] wrote %d rows to %s", doc.RowCount(), target)
	return target, nil
}
