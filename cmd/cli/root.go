package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/goextrato/internal/adapter/http/dto"
	"github.com/iho/goextrato/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/goextrato/internal/adapter/repository/postgres"
	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
	"github.com/iho/goextrato/internal/identity"
	"github.com/iho/goextrato/internal/infrastructure/logger"
	"github.com/iho/goextrato/internal/infrastructure/postgres"
	"github.com/iho/goextrato/internal/usecase"
)

// options are the flags shared by every command.
type options struct {
	logLevel    string
	output      string
	password    string
	issuer      string
	docType     string
	userID      string
	snapshot    string
	rulesFile   string
	databaseURL string
	record      bool
	timeout     time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "goextrato",
		Short:         "Bank statement and card invoice extractor",
		Long:          `Extracts, marks and classifies transactions from Brazilian bank statements and credit card invoices.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall command timeout")
	rootCmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL URL")

	fileFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&opts.password, "password", "", "Password of a protected file")
		cmd.Flags().StringVar(&opts.issuer, "issuer", "", "Expected issuer (nubank, itau, bb, inter, ...)")
		cmd.Flags().StringVar(&opts.docType, "type", "", "Expected document type (invoice, statement)")
	}

	extractCmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Detect the file format and print the raw transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}
	fileFlags(extractCmd)

	markCmd := &cobra.Command{
		Use:   "mark FILE",
		Short: "Extract and assign transaction identities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMark(cmd, opts, args[0])
		},
	}
	fileFlags(markCmd)
	markCmd.Flags().StringVar(&opts.userID, "user", "", "User ID")
	_ = markCmd.MarkFlagRequired("user")

	classifyCmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Run the full pipeline and print classified transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts, args[0])
		},
	}
	fileFlags(classifyCmd)
	classifyCmd.Flags().StringVar(&opts.userID, "user", "", "User ID")
	classifyCmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "YAML collaborator snapshot (overrides --database-url)")
	classifyCmd.Flags().StringVar(&opts.rulesFile, "rules", "", "YAML vocabulary file replacing the built-in rules")
	classifyCmd.Flags().BoolVar(&opts.record, "record", false, "Store the result as history and installment contracts (requires --database-url)")
	_ = classifyCmd.MarkFlagRequired("user")

	migrateCmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the read-model schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(opts, args[0])
		},
	}

	rootCmd.AddCommand(extractCmd, markCmd, classifyCmd, migrateCmd)
	return rootCmd
}

func (o *options) logger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{Level: o.logLevel, Format: "console", Output: cmd.ErrOrStderr()})
}

func (o *options) input(path string) (usecase.IngestInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return usecase.IngestInput{}, err
	}
	return usecase.IngestInput{
		UserID:       o.userID,
		FileName:     filepath.Base(path),
		Content:      content,
		Password:     o.password,
		Issuer:       o.issuer,
		DocumentType: domain.DocumentType(o.docType),
	}, nil
}

func runExtract(cmd *cobra.Command, opts *options, path string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	log := opts.logger(cmd)
	in, err := opts.input(path)
	if err != nil {
		return err
	}

	res, err := extractor.NewDefaultRegistry(log, extractor.Options{}).Extract(ctx, in.Document(), in.Expectation())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		return printJSON(out, dto.ExtractFromResult(res))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DATE\tESTABLISHMENT\tAMOUNT\tCARD\n")
	for _, tx := range res.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tx.Date.Format("2006-01-02"), truncate(tx.Establishment, 40), tx.Amount.StringFixed(2), tx.CardLast4)
	}
	tw.Flush()
	printSummary(out, res.Key, res.Balance, len(res.Transactions), res.Skipped)
	return nil
}

func runMark(cmd *cobra.Command, opts *options, path string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	log := opts.logger(cmd)
	in, err := opts.input(path)
	if err != nil {
		return err
	}
	if err := domain.ValidateUserID(in.UserID); err != nil {
		return err
	}

	res, err := extractor.NewDefaultRegistry(log, extractor.Options{}).Extract(ctx, in.Document(), in.Expectation())
	if err != nil {
		return err
	}

	marked := identity.NewMarker(in.UserID, log).Mark(res.Transactions)

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		txs := make([]dto.TransactionResponse, len(marked.Transactions))
		for i, tx := range marked.Transactions {
			txs[i] = dto.TransactionFromDomain(domain.ClassifiedTransaction{MarkedTransaction: tx})
		}
		return printJSON(out, txs)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tDATE\tESTABLISHMENT\tAMOUNT\tTYPE\tINSTALLMENT\n")
	for _, tx := range marked.Transactions {
		installment := ""
		if tx.IsInstallment() {
			installment = fmt.Sprintf("%d/%d", tx.CurrentInstallment, tx.TotalInstallments)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.TransactionID, tx.Date.Format("2006-01-02"), truncate(tx.BaseEstablishment, 40),
			tx.Amount.StringFixed(2), tx.Type, installment)
	}
	tw.Flush()

	skipped := append(append([]domain.RowError(nil), res.Skipped...), marked.Skipped...)
	printSummary(out, res.Key, res.Balance, len(marked.Transactions), skipped)
	return nil
}

func runClassify(cmd *cobra.Command, opts *options, path string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	log := opts.logger(cmd)
	in, err := opts.input(path)
	if err != nil {
		return err
	}

	collab, recorder, closeFn, err := opts.collaborators(ctx, log)
	if err != nil {
		return err
	}
	defer closeFn()
	if opts.record && recorder == nil {
		return fmt.Errorf("classify: --record requires --database-url")
	}

	rules := usecase.DefaultRuleSet()
	if opts.rulesFile != "" {
		if rules, err = usecase.LoadRuleSet(opts.rulesFile); err != nil {
			return err
		}
	}

	classifier := usecase.NewCascadeClassifier(collab, rules, usecase.ClassifierOptions{}, log)
	ingest := usecase.NewIngestUseCase(
		extractor.NewDefaultRegistry(log, extractor.Options{}),
		classifier,
		postgresRepo.NewULIDGenerator(),
		nil,
		0,
		nil,
		log,
	)

	res, err := ingest.Ingest(ctx, in)
	if err != nil {
		return err
	}

	if opts.record {
		if err := recorder.Record(ctx, res, in.UserID); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		return printJSON(out, dto.ImportFromResult(res))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DATE\tESTABLISHMENT\tAMOUNT\tGROUP\tSUBGROUP\tLEVEL\tREVIEW\n")
	for _, tx := range res.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%v\n",
			tx.Date.Format("2006-01-02"), truncate(tx.Establishment, 32), tx.Amount.StringFixed(2),
			tx.Group, tx.Subgroup, tx.Provenance, tx.NeedsReview)
	}
	tw.Flush()

	printSummary(out, res.Key, res.Balance, len(res.Transactions), res.Skipped)
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "LEVEL\tCOUNT\tPERCENT\n")
	for _, lc := range res.Report.Levels {
		fmt.Fprintf(tw, "%s\t%d\t%.2f%%\n", lc.Level, lc.Count, lc.Percent)
	}
	tw.Flush()
	return nil
}

// collaborators picks the snapshot, then Postgres, then none. Only Postgres
// comes with a recorder.
func (o *options) collaborators(ctx context.Context, log zerolog.Logger) (usecase.Collaborators, *usecase.RunRecorder, func(), error) {
	noop := func() {}

	if o.snapshot != "" {
		store, err := memory.LoadFile(o.snapshot)
		if err != nil {
			return usecase.Collaborators{}, nil, noop, err
		}
		return usecase.Collaborators{
			Installments: store,
			Users:        store,
			Exclusions:   store.Exclusions(),
			Patterns:     store.Patterns(),
			History:      store,
			Combinations: store,
		}, nil, noop, nil
	}

	if o.databaseURL != "" {
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{DatabaseURL: o.databaseURL, MaxConns: 2})
		if err != nil {
			return usecase.Collaborators{}, nil, noop, err
		}
		recorder := usecase.NewRunRecorder(
			postgresRepo.NewHistoryRepository(pool),
			postgresRepo.NewInstallmentContractRepository(pool),
			log,
		)
		return postgresRepo.NewCollaborators(pool), recorder, func() { closePool(pool) }, nil
	}

	return usecase.Collaborators{}, nil, noop, nil
}

func closePool(pool *pgxpool.Pool) { pool.Close() }

func runMigrate(opts *options, direction string) error {
	if opts.databaseURL == "" {
		return fmt.Errorf("migrate: --database-url or DATABASE_URL is required")
	}

	log := logger.New(logger.Config{Level: "info", Format: "console", Output: os.Stderr})
	if direction == "down" {
		return postgres.RunMigrationsDown(opts.databaseURL, log)
	}
	return postgres.RunMigrations(opts.databaseURL, log)
}

func printSummary(out io.Writer, key extractor.Key, balance domain.BalanceValidation, n int, skipped []domain.RowError) {
	fmt.Fprintf(out, "\nadapter: %s  transactions: %d  skipped: %d  balance: %s\n", key, n, len(skipped), balance.Status)
	if balance.Applicable() {
		fmt.Fprintf(out, "balance difference: %s (tolerance %s)\n", balance.Difference.StringFixed(2), balance.Tolerance.StringFixed(2))
	}
	for _, row := range skipped {
		fmt.Fprintf(out, "  skipped line %d: %s\n", row.Line, row.Reason)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
