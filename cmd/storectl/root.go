package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storepulse/internal/config"
	"storepulse/internal/dataprocessing"
	apierrors "storepulse/internal/errors"
	"storepulse/internal/files"
	"storepulse/internal/infrastructure"
	"storepulse/internal/middleware"
	"storepulse/internal/services"
	handlers "storepulse/internal/transport/http"
	api "storepulse/pkg/contracts/api/v1"
)

const sourceCLI = "cli"

var (
	cfg    *config.Config
	logger *slog.Logger

	flagDataset     string
	flagSheet       string
	flagLogLevel    string
	flagClusters    []string
	flagIncomeGroup []string
	flagGapMin      int
	flagGapMax      int
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Inspect and export the Boston grocery store dashboard data",
	Long: `Runs the dashboard's filter and segment pipeline against the store
spreadsheet from the command line.

Filters mirror the dashboard sidebar. An omitted filter selects everything;
an explicitly empty one selects nothing.

Examples:
  storectl summary --cluster 0 --cluster 2
  storectl segments --gap-min -20 --limit 10
  storectl export --income-group High --out high_income.csv
  storectl snapshot --url http://localhost:8080 --out dashboard.png`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagDataset != "" {
			c.Dataset.Path = flagDataset
		}
		if flagSheet != "" {
			c.Dataset.Sheet = flagSheet
		}
		cfg = c

		level := flagLogLevel
		if level == "" {
			level = cfg.Logging.Level
		}
		logger = infrastructure.NewLogger(level, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataset, "dataset", "", "path of the store spreadsheet (default from config)")
	pf.StringVar(&flagSheet, "sheet", "", "worksheet name (default: first sheet)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "log level written to stderr")
	pf.StringSliceVar(&flagClusters, "cluster", nil, "clusters to include (repeatable)")
	// Labels are taken whole; commas are not separators here
	pf.StringArrayVar(&flagIncomeGroup, "income-group", nil, "income group to include (repeat for more)")
	pf.IntVar(&flagGapMin, "gap-min", 0, "lower bound of the gap range")
	pf.IntVar(&flagGapMax, "gap-max", 0, "upper bound of the gap range")

	rootCmd.AddCommand(summaryCmd, segmentsCmd, exportCmd, snapshotCmd)
}

// newDashboardService builds the pipeline service the HTTP server uses,
// without metrics
func newDashboardService() *services.DashboardService {
	validation := middleware.NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false))
	return services.NewDashboardService(
		dataprocessing.NewDatasetCache(logger),
		files.NewManager(cfg.Paths, logger).ResolveDataset(cfg.DatasetPath(), cfg.Dataset.Discover),
		cfg.Dataset.Sheet,
		logger,
		services.WithValidator(validation),
	)
}

// viewRequest turns the filter flags into a request. Only flags given on
// the command line take part, so `--cluster ""` selects nothing.
func viewRequest(cmd *cobra.Command) (api.ViewRequest, error) {
	q := url.Values{}
	flags := cmd.Flags()

	if flags.Changed("cluster") {
		q[handlers.ParamCluster] = append([]string{}, flagClusters...)
		if len(flagClusters) == 0 {
			q[handlers.ParamCluster] = []string{""}
		}
	}
	if flags.Changed("income-group") {
		q[handlers.ParamIncomeGroup] = append([]string{}, flagIncomeGroup...)
	}
	if flags.Changed("gap-min") {
		q.Set(handlers.ParamGapMin, strconv.Itoa(flagGapMin))
	}
	if flags.Changed("gap-max") {
		q.Set(handlers.ParamGapMax, strconv.Itoa(flagGapMax))
	}

	return handlers.ParseViewQuery(q)
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return infrastructure.EnsureTraceID(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
