package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"revreview/adapters/excel"
	"revreview/adapters/sqlsource"
	"revreview/app"
	"revreview/domain/report"
	"revreview/internal"
	"revreview/internal/config"
	"revreview/internal/errors"
	"revreview/internal/layout"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	_ "github.com/godror/godror"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
)

type options struct {
	envFile string
	outDir  string
	date    string
	connect sqlsource.ConnectFunc
}

func main() {
	if err := newRootCmd(os.Stdout, sqlx.ConnectContext).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\n❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer, connect sqlsource.ConnectFunc) *cobra.Command {
	opts := options{connect: connect}

	cmd := &cobra.Command{
		Use:   "revreview",
		Short: "Export the review table to a dated Excel report",
		Long: `Run the review query and save the rows as a formatted workbook.

The report is written to <OUTPUT_DIR>/<REPORT_BASE_NAME>_<YYYYMMDD>.xlsx.
Connection settings come from the environment or a .env file.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "\n✅ Excel report saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv file with connection settings (default .env if present)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "output directory (env: OUTPUT_DIR, default OUTBOX beside the executable)")
	cmd.Flags().StringVar(&opts.date, "date", "", "report date as YYYYMMDD (default today)")
	return cmd
}

func run(ctx context.Context, opts options) (string, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return "", err
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if opts.outDir != "" {
		cfg.Report.OutputDir = opts.outDir
	}

	now, err := reportClock(opts.date)
	if err != nil {
		return "", err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel), os.Stderr)

	dsn, err := cfg.Database.DSN()
	if err != nil {
		return "", err
	}
	source := sqlsource.NewSource(string(cfg.Database.Driver), dsn, sqlsource.ReviewQuery(cfg.Database.Driver), logger).
		WithConnect(opts.connect)

	builder := layout.NewBuilder(layout.Options{
		SheetName:   cfg.Report.SheetName,
		Rules:       report.ReviewLayout(),
		DefaultRule: report.DefaultRule,
		FontName:    cfg.Report.FontName,
		FontSize:    cfg.Report.FontSize,
	})
	writer := excel.NewWriter(cfg.Report.OutputDir, cfg.Report.BaseName, now, logger)

	return app.NewReportService(source, builder, writer, logger).Run(ctx)
}

// reportClock returns the clock used for the output file name
func reportClock(date string) (func() time.Time, error) {
	if date == "" {
		return time.Now, nil
	}
	t, err := time.ParseInLocation("20060102", date, time.Local)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid --date %q, expected YYYYMMDD", date))
	}
	return func() time.Time { return t }, nil
}
