package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dompet/internal/config"
	"dompet/internal/core"
	"dompet/internal/ledger"
	applog "dompet/internal/log"
	"dompet/internal/service"
	"dompet/internal/store"
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("owner", "demo", "Owner id to seed")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the configured backend with demo data",
	Long: `Seed writes a demo owner with wallets, a month of transactions, a
budget, a debt and an asset into the configured persistence backend.
Running it against the memory backend is an error since nothing would
survive the process.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DataBackend == "memory" {
		return fmt.Errorf("seed requires a persistent backend, got %q", cfg.DataBackend)
	}

	logger := applog.New(applog.Config{Level: logLevel(cfg.LogLevel)})
	ownerID, _ := cmd.Flags().GetString("owner")

	snaps, err := openSnapshotter(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer snaps.Close()

	st := store.New()
	st.SeedDefaultCategories()
	eng := ledger.New(st, logger)
	svc := service.New(st, eng, logger, service.Options{Snapshotter: snaps})

	ctx := cmd.Context()
	if err := svc.EnsureOwner(ctx, ownerID); err != nil {
		return err
	}

	wallets := svc.Wallets(ownerID)
	if len(wallets) < 2 {
		return fmt.Errorf("expected seeded wallets for owner %s", ownerID)
	}
	cash, bank := wallets[0], wallets[1]

	today := core.DateOf(time.Now())
	txns := []struct {
		wallet   string
		days     int
		desc     string
		amount   string
		kind     core.TransactionKind
		category string
	}{
		{bank.ID, -25, "Gaji bulanan", "8500000", core.Income, "Gaji"},
		{cash.ID, -20, "Belanja mingguan", "350000", core.Expense, "Makanan"},
		{bank.ID, -14, "Tagihan listrik", "420000", core.Expense, "Tagihan"},
		{cash.ID, -10, "Ojek online", "45000", core.Expense, "Transportasi"},
		{cash.ID, -4, "Nonton bioskop", "60000", core.Expense, "Hiburan"},
	}
	for _, in := range txns {
		amount, err := core.ParseAmount(in.amount)
		if err != nil {
			return err
		}
		if _, err := svc.CreateTransaction(ctx, ownerID, service.TransactionInput{
			WalletID:    in.wallet,
			Date:        today.AddDays(in.days),
			Description: in.desc,
			Amount:      amount,
			Kind:        in.kind,
			Category:    in.category,
		}); err != nil {
			return err
		}
	}

	move, _ := core.ParseAmount("500000")
	if _, err := svc.CreateTransaction(ctx, ownerID, service.TransactionInput{
		WalletID:    bank.ID,
		ToWalletID:  cash.ID,
		Date:        today.AddDays(-18),
		Description: "Tarik tunai",
		Amount:      move,
		Kind:        core.Transfer,
		Category:    "Lainnya",
	}); err != nil {
		return err
	}

	budgetLimit, _ := core.ParseAmount("1500000")
	if _, err := svc.CreateBudget(ctx, ownerID, "Makanan", budgetLimit, core.FrequencyMonthly); err != nil {
		return err
	}

	debtAmount, _ := core.ParseAmount("250000")
	if _, err := svc.CreateDebt(ctx, ownerID, core.Debt{
		Kind:         core.DebtOwed,
		Counterparty: "Budi",
		Amount:       debtAmount,
		Description:  "Patungan kado",
		DueDate:      today.AddDays(5),
	}); err != nil {
		return err
	}

	goldValue, _ := core.ParseAmount("12000000")
	if _, err := svc.CreateAsset(ctx, ownerID, "Emas Antam 10g", goldValue, core.AssetGold); err != nil {
		return err
	}

	logger.Info("seeded demo data",
		applog.FieldOwnerID, ownerID,
		"backend", cfg.DataBackend)
	return nil
}
