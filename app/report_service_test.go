package app

import (
	"context"
	stderrors "errors"
	"testing"

	"revreview/domain/report"
	"revreview/internal"
	"revreview/internal/errors"
	"revreview/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context) (*report.Result, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*report.Result)
	return result, args.Error(1)
}

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) Save(doc *report.Document) (string, error) {
	args := m.Called(doc)
	return args.String(0), args.Error(1)
}

func newBuilder() *layout.Builder {
	return layout.NewBuilder(layout.Options{
		SheetName:   "Review Report",
		Rules:       report.ReviewLayout(),
		DefaultRule: report.DefaultRule,
		FontName:    "Calibri",
		FontSize:    10,
	})
}

func TestRunSavesBuiltDocument(t *testing.T) {
	fetcher := new(MockFetcher)
	writer := new(MockWriter)
	ctx := context.Background()

	fetcher.On("Fetch", ctx).Return(&report.Result{
		Columns: []string{"User", "Note"},
		Rows:    []report.Row{{"bob", "x&amp;y"}, {"amy", nil}},
	}, nil)
	writer.On("Save", mock.MatchedBy(func(doc *report.Document) bool {
		first, _ := doc.Cell(2, 2)
		return doc.RowCount() == 3 && doc.ColumnCount() == 2 && first.Value == "x&y"
	})).Return("/out/RevSolReview_20250101.xlsx", nil)

	svc := NewReportService(fetcher, newBuilder(), writer, internal.Discard())
	path, err := svc.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, "/out/RevSolReview_20250101.xlsx", path)
	fetcher.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestRunStopsOnFetchError(t *testing.T) {
	fetcher := new(MockFetcher)
	writer := new(MockWriter)
	ctx := context.Background()

	fetcher.On("Fetch", ctx).Return(nil, errors.Connection(stderrors.New("host unreachable")))

	svc := NewReportService(fetcher, newBuilder(), writer, internal.Discard())
	path, err := svc.Run(ctx)

	assert.Empty(t, path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConnectionError, errors.GetCode(err))
	writer.AssertNotCalled(t, "Save", mock.Anything)
}

func TestRunStopsOnLayoutError(t *testing.T) {
	fetcher := new(MockFetcher)
	writer := new(MockWriter)
	ctx := context.Background()

	fetcher.On("Fetch", ctx).Return(&report.Result{
		Columns: []string{"User", "Note"},
		Rows:    []report.Row{{"short row"}},
	}, nil)

	svc := NewReportService(fetcher, newBuilder(), writer, internal.Discard())
	_, err := svc.Run(ctx)

	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	writer.AssertNotCalled(t, "Save", mock.Anything)
}

func TestRunPropagatesWriteError(t *testing.T) {
	fetcher := new(MockFetcher)
	writer := new(MockWriter)
	ctx := context.Background()

	fetcher.On("Fetch", ctx).Return(&report.Result{Columns: []string{"User"}, Rows: []report.Row{}}, nil)
	writer.On("Save", mock.Anything).Return("", errors.Write("failed to create output file", stderrors.New("disk full")))

	svc := NewReportService(fetcher, newBuilder(), writer, internal.Discard())
	_, err := svc.Run(ctx)

	require.Error(t, err)
	assert.Equal(t, errors.CodeWriteError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "disk full")
}
