package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dataflow-ng/statement-auditor/internal/audit"
	"github.com/dataflow-ng/statement-auditor/internal/config"
	"github.com/dataflow-ng/statement-auditor/internal/domain"
	"github.com/dataflow-ng/statement-auditor/internal/extract"
	"github.com/dataflow-ng/statement-auditor/internal/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "audit":
		runAudit(log)
	case "waybills":
		runWaybills(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Statement Auditor CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  auditor <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  audit     Audit bank statement PDFs for visa risk flags")
	fmt.Println("  waybills  Extract waybill data from logistics PDFs")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'auditor <command> -h' for more information on a command.")
}

func newAuditor(log zerolog.Logger) (*audit.Auditor, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	auditor := audit.NewAuditor(
		extract.NewPDFSource(),
		audit.NewGeminiClient(cfg.Model),
		cfg.AuditorOptions(),
	)
	return auditor, cfg
}

func runAudit(log zerolog.Logger) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	salary := fs.Float64("salary", 0, "Declared monthly salary (defaults to configured value)")
	fs.Parse(os.Args[2:])

	files := fs.Args()
	if len(files) == 0 {
		log.Fatal().Msg("Usage: auditor audit [-salary N] statement.pdf [more.pdf ...]")
	}

	auditor, cfg := newAuditor(log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	failed := 0
	auditor.AuditBatch(ctx, files, cfg.RiskPolicy(*salary), func(item audit.BatchItem) {
		fmt.Printf("\n[%d/%d] %s\n", item.Index+1, item.Total, item.File)
		if item.Err != nil {
			failed++
			fmt.Printf("  FAILED: %v\n", item.Err)
			return
		}
		printReport(item.Report)
	})

	if failed > 0 {
		fmt.Printf("\n%d of %d documents failed.\n", failed, len(files))
		os.Exit(1)
	}
}

func printReport(report *domain.AuditReport) {
	fmt.Printf("  Transactions: %d\n", len(report.Records))
	fmt.Printf("  Total Inflow:    ₦%s\n", audit.FormatMoney(report.Summary.TotalInflow))
	fmt.Printf("  Closing Balance: ₦%s\n", audit.FormatMoney(report.Summary.ClosingBalance))
	if report.Clean {
		fmt.Println("  Clean sheet: no risk flags.")
		return
	}
	for _, f := range report.Flags {
		fmt.Printf("  FLAG %s: %s\n", f.Kind, f.Message)
	}
}

func runWaybills(log zerolog.Logger) {
	fs := flag.NewFlagSet("waybills", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	files := fs.Args()
	if len(files) == 0 {
		log.Fatal().Msg("Usage: auditor waybills invoice.pdf [more.pdf ...]")
	}

	auditor, _ := newAuditor(log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	fmt.Printf("%-24s %-12s %-16s %-24s %s\n", "File", "Date", "Waybill #", "Vendor", "Amount")
	failed := 0
	auditor.WaybillBatch(ctx, files, func(item audit.BatchItem) {
		if item.Err != nil {
			failed++
			fmt.Printf("%-24s FAILED: %v\n", item.File, item.Err)
			return
		}
		for _, wb := range item.Waybills {
			fmt.Printf("%-24s %-12s %-16s %-24s ₦%s\n",
				wb.File, wb.Date, wb.WaybillNumber, wb.Vendor, audit.FormatMoney(wb.Amount))
		}
	})

	if failed > 0 {
		fmt.Printf("\n%d of %d documents failed.\n", failed, len(files))
		os.Exit(1)
	}
}
