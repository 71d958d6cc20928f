package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakchai-01/school-pos/internal/config"
	"github.com/sakchai-01/school-pos/internal/db"
	"github.com/sakchai-01/school-pos/internal/order"
	"github.com/sakchai-01/school-pos/internal/report"
)

var (
	reportShopID int64
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a shop's sales report",
	Long:  `Reads the POS database directly and writes a shop's sales report as CSV or a printable HTML page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportShopID == 0 {
			return fmt.Errorf("--shop is required")
		}
		if reportFormat != "csv" && reportFormat != "html" {
			return fmt.Errorf("--format must be csv or html, got %q", reportFormat)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		database, err := db.Open(filepath.Join(cfg.DataDir, "pos.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		orders := order.NewStore(database)
		ctx := cmd.Context()

		menuRows, err := orders.MenuSalesReport(ctx, reportShopID)
		if err != nil {
			return err
		}

		out := os.Stdout
		if reportOut != "" {
			f, err := os.Create(reportOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", reportOut, err)
			}
			defer f.Close()
			out = f
		}

		if reportFormat == "csv" {
			return report.WriteCSV(out, menuRows)
		}

		daily, err := orders.DailySalesReport(ctx, reportShopID)
		if err != nil {
			return err
		}
		page, err := report.Printable(fmt.Sprintf("Shop %d", reportShopID), menuRows, daily, time.Now())
		if err != nil {
			return err
		}
		_, err = out.Write(page)
		return err
	},
}

func init() {
	reportCmd.Flags().Int64Var(&reportShopID, "shop", 0, "shop id to report on")
	reportCmd.Flags().StringVar(&reportFormat, "format", "csv", "output format: csv or html")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output file (default stdout)")
	rootCmd.AddCommand(reportCmd)
}
