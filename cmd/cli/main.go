package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/cashbookhq/cashbook/internal/infrastructure/config"
	"github.com/cashbookhq/cashbook/internal/infrastructure/postgres"
)

var (
	baseURL string
	ownerID string
	timeout time.Duration
	retries int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cashbook-cli",
		Short: "Cashbook CLI tool",
		Long:  `A command line interface for interacting with the Cashbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Cashbook API")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "Owner ID requests are scoped to")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 0, "Retries for transient request failures")

	rootCmd.AddCommand(entryCmd(), settleCmd(), summaryCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Entry operations",
	}

	var (
		entryType     string
		category      string
		paymentMethod string
		amount        string
		entryDate     string
		notes         string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new entry",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"entry_type":     entryType,
				"category":       category,
				"payment_method": paymentMethod,
				"amount":         json.Number(amount),
				"entry_date":     entryDate,
				"notes":          notes,
			}
			doRequest(http.MethodPost, "/api/v1/entries", body)
		},
	}

	addCmd.Flags().StringVar(&entryType, "type", "", "Entry type (Cash Inflow, Cash Outflow, Credit, Advance)")
	addCmd.Flags().StringVar(&category, "category", "", "Category (Sales, COGS, Opex, Assets)")
	addCmd.Flags().StringVar(&paymentMethod, "method", "Cash", "Payment method (Cash, Bank, None)")
	addCmd.Flags().StringVar(&amount, "amount", "", "Amount")
	addCmd.Flags().StringVar(&entryDate, "date", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	var (
		period string
		start  string
		end    string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries for a period",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/entries"+periodParams(period, start, end), nil)
		},
	}

	listCmd.Flags().StringVar(&period, "period", "all-time", "Period selector (all-time, this-year, this-month, custom)")
	listCmd.Flags().StringVar(&start, "start", "", "Custom period start (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&end, "end", "", "Custom period end (YYYY-MM-DD)")

	cmd.AddCommand(addCmd, listCmd)

	return cmd
}

func settleCmd() *cobra.Command {
	var (
		amount         string
		settlementDate string
	)

	cmd := &cobra.Command{
		Use:   "settle <entry-id>",
		Short: "Settle a Credit or Advance entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"amount":          json.Number(amount),
				"settlement_date": settlementDate,
			}
			doRequest(http.MethodPost, "/api/v1/entries/"+args[0]+"/settle", body)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Settlement amount")
	cmd.Flags().StringVar(&settlementDate, "date", time.Now().Format("2006-01-02"), "Settlement date (YYYY-MM-DD)")

	return cmd
}

func summaryCmd() *cobra.Command {
	var (
		period string
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the cash and profit summary for a period",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/summary"+periodParams(period, start, end), nil)
		},
	}

	cmd.Flags().StringVar(&period, "period", "all-time", "Period selector (all-time, this-year, this-month, custom)")
	cmd.Flags().StringVar(&start, "start", "", "Custom period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Custom period end (YYYY-MM-DD)")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration operations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Printf("Failed to load configuration: %v\n", err)
				os.Exit(1)
			}

			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Printf("Failed to load configuration: %v\n", err)
				os.Exit(1)
			}

			if err := postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(upCmd, downCmd)

	return cmd
}

func periodParams(period, start, end string) string {
	params := "?period=" + period
	if start != "" {
		params += "&start=" + start
	}

	if end != "" {
		params += "&end=" + end
	}

	return params
}

// doRequest issues one API call, retrying transient failures when --retries
// is set. Retry policy lives here with the caller, never in the engine.
func doRequest(method, path string, body map[string]any) {
	client := &http.Client{Timeout: timeout}

	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}

	var (
		status   int
		response []byte
	)

	operation := func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequest(method, baseURL+path, reqBody)
		if err != nil {
			return backoff.Permanent(err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Owner-ID", ownerID)

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		response, _ = io.ReadAll(resp.Body)
		status = resp.StatusCode

		if status >= 500 {
			return fmt.Errorf("server error: %d", status)
		}

		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries))
	if err := backoff.Retry(operation, b); err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, response, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(response))
	}

	if status >= 400 {
		os.Exit(1)
	}
}
