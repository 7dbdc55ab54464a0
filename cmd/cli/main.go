package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/app"
	"github.com/dvloznov/spendwise/internal/assembler"
	"github.com/dvloznov/spendwise/internal/config"
	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/export"
	"github.com/dvloznov/spendwise/internal/jobs"
	"github.com/dvloznov/spendwise/internal/logger"
	"github.com/dvloznov/spendwise/internal/storage"
	"github.com/dvloznov/spendwise/internal/summary"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(log)
	case "list":
		runList(log)
	case "delete":
		runDelete(log)
	case "insights":
		runInsights(log)
	case "summary":
		runSummary(log)
	case "export":
		runExport(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Spendwise CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add       Record an income or expense")
	fmt.Println("  list      List recorded transactions")
	fmt.Println("  delete    Delete a transaction by ID")
	fmt.Println("  insights  Request spending insights from a running API server")
	fmt.Println("  summary   Print dashboard totals and category breakdown")
	fmt.Println("  export    Write all transactions as CSV to the export bucket")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// openStores loads configuration and opens storage, exiting on failure.
func openStores(ctx context.Context, log zerolog.Logger, envFile string) (*config.Config, *app.Stores) {
	cfg, err := config.Load(envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	return cfg, stores
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	envFile := fs.String("env", "", "Path to a .env file")
	owner := fs.String("owner", "", "Owner ID (defaults to DEFAULT_OWNER_ID)")
	purpose := fs.String("purpose", "", "What the money was for")
	amount := fs.Float64("amount", 0, "Amount (positive)")
	category := fs.String("category", "", "Category name")
	date := fs.String("date", time.Now().Format(domain.DateLayout), "Date as YYYY-MM-DD")
	kind := fs.String("type", string(domain.KindExpense), "income or expense")
	description := fs.String("description", "", "Optional note")
	fs.Parse(os.Args[2:])

	if *amount <= 0 {
		log.Fatal().Msg("Error: --amount must be positive")
	}
	if _, err := time.Parse(domain.DateLayout, *date); err != nil {
		log.Fatal().Str("date", *date).Msg("Error: --date must be YYYY-MM-DD")
	}
	if !domain.TransactionKind(*kind).Valid() {
		log.Fatal().Str("type", *kind).Msg("Error: --type must be income or expense")
	}

	ctx := logger.WithContext(context.Background(), log)
	cfg, stores := openStores(ctx, log, *envFile)
	defer stores.Close()

	if *owner == "" {
		*owner = cfg.DefaultOwnerID
	}

	rec := &domain.TransactionRecord{
		OwnerID:     *owner,
		Purpose:     *purpose,
		Category:    *category,
		Amount:      *amount,
		Date:        *date,
		Kind:        domain.TransactionKind(*kind),
		Description: *description,
	}
	if err := stores.Transactions.CreateTransaction(ctx, rec); err != nil {
		log.Fatal().Err(err).Msg("Failed to add transaction")
	}

	fmt.Printf("Added %s %s (%.2f) with ID %s\n", rec.Kind, rec.Purpose, rec.Amount, rec.ID)
}

func runList(log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	envFile := fs.String("env", "", "Path to a .env file")
	owner := fs.String("owner", "", "Owner ID (defaults to DEFAULT_OWNER_ID)")
	category := fs.String("category", "", "Only this category")
	search := fs.String("search", "", "Substring of the purpose")
	limit := fs.Int("limit", 0, "Maximum number of rows (0 for all)")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	cfg, stores := openStores(ctx, log, *envFile)
	defer stores.Close()

	if *owner == "" {
		*owner = cfg.DefaultOwnerID
	}

	records, err := stores.Transactions.ListTransactions(ctx, *owner, storage.TransactionFilter{
		Category: *category,
		Search:   *search,
		Limit:    *limit,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}

	fmt.Printf("\n=== Transactions (%d) ===\n", len(records))
	for _, r := range records {
		fmt.Printf("%s  %-7s  %10.2f  %-14s %s\n", r.Date, r.Kind, r.Amount, r.Category, r.Purpose)
		fmt.Printf("            ID: %s\n", r.ID)
	}
	fmt.Println()
}

func runDelete(log zerolog.Logger) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	envFile := fs.String("env", "", "Path to a .env file")
	owner := fs.String("owner", "", "Owner ID (defaults to DEFAULT_OWNER_ID)")
	id := fs.String("id", "", "Transaction ID to delete")
	fs.Parse(os.Args[2:])

	if *id == "" {
		log.Fatal().Msg("Error: --id is required")
	}

	ctx := logger.WithContext(context.Background(), log)
	cfg, stores := openStores(ctx, log, *envFile)
	defer stores.Close()

	if *owner == "" {
		*owner = cfg.DefaultOwnerID
	}

	if err := stores.Transactions.DeleteTransaction(ctx, *owner, *id); err != nil {
		log.Fatal().Err(err).Str("id", *id).Msg("Failed to delete transaction")
	}

	fmt.Printf("Deleted transaction %s\n", *id)
}

func runInsights(log zerolog.Logger) {
	fs := flag.NewFlagSet("insights", flag.ExitOnError)
	envFile := fs.String("env", "", "Path to a .env file")
	owner := fs.String("owner", "", "Owner ID (defaults to DEFAULT_OWNER_ID)")
	apiURL := fs.String("api", "http://localhost:8080", "Base URL of the API server")
	timeout := fs.Duration("timeout", 2*time.Minute, "Request timeout")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, stores := openStores(ctx, log, *envFile)
	defer stores.Close()

	if *owner == "" {
		*owner = cfg.DefaultOwnerID
	}

	client := assembler.NewClient(*apiURL, &http.Client{Timeout: *timeout}, log)
	result, err := client.Insights(ctx, stores.Transactions, *owner)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get insights")
	}

	fmt.Printf("\n=== Insights (%d) ===\n", len(result))
	for i, in := range result {
		fmt.Printf("\n%d. %s [%s, %s impact]\n", i+1, in.Title, in.Type, in.Impact)
		fmt.Printf("   %s\n", in.Description)
		fmt.Printf("   Potential savings: %s\n", in.Savings)
	}
	fmt.Println()
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	envFile := fs.String("env", "", "Path to a .env file")
	owner := fs.String("owner", "", "Owner ID (defaults to DEFAULT_OWNER_ID)")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	cfg, stores := openStores(ctx, log, *envFile)
	defer stores.Close()

	if *owner == "" {
		*owner = cfg.DefaultOwnerID
	}

	records, err := stores.Transactions.ListTransactions(ctx, *owner, storage.TransactionFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}

	d := summary.Dashboard(records, cfg.MonthlyBudget)
	fmt.Println("\n=== Dashboard ===")
	fmt.Printf("Income:       %s\n", d.TotalIncome.StringFixed(2))
	fmt.Printf("Expenses:     %s\n", d.TotalExpense.StringFixed(2))
	fmt.Printf("Daily spend:  %s\n", d.DailySpend.StringFixed(2))
	fmt.Printf("Budget:       %s (%s%% used, %s left)\n",
		d.BudgetLimit.StringFixed(2), d.BudgetUsedPct.StringFixed(1), d.RemainingBudget.StringFixed(2))

	breakdown := summary.CategoryBreakdown(records)
	fmt.Printf("\n=== Expenses by category (%d) ===\n", len(breakdown))
	for _, c := range breakdown {
		fmt.Printf("%-16s %s\n", c.Category, c.Total.StringFixed(2))
	}
	fmt.Println()
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	envFile := fs.String("env", "", "Path to a .env file")
	owner := fs.String("owner", "", "Owner ID (defaults to DEFAULT_OWNER_ID)")
	bucket := fs.String("bucket", "", "GCS bucket (defaults to EXPORT_BUCKET)")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, stores := openStores(ctx, log, *envFile)
	defer stores.Close()

	if *owner == "" {
		*owner = cfg.DefaultOwnerID
	}
	if *bucket == "" {
		*bucket = cfg.ExportBucket
	}
	if *bucket == "" {
		log.Fatal().Msg("Error: --bucket or EXPORT_BUCKET is required")
	}

	uploader, err := export.NewGCSUploader(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create GCS client")
	}
	defer uploader.Close()

	exporter := export.NewExporter(uploader, *bucket)
	job := &jobs.ExportJob{OwnerID: *owner}
	if err := exporter.JobHandler(stores.Transactions)(ctx, job); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Printf("Exported %d transactions to %s\n", job.RecordCount, job.GCSURI)
}
