package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidlink/aidlink/internal/infrastructure/database"
	"github.com/aidlink/aidlink/internal/infrastructure/repository"
	"github.com/aidlink/aidlink/internal/interfaces/cli/bootstrap"
	"github.com/aidlink/aidlink/internal/shared/db"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load NGOs, beneficiaries and donations from a YAML file",
		Long:  `Insert the records described in a seed file. Intended for local and test databases.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	environment := bootstrap.ResolveEnv(env)
	cfg, log, err := bootstrap.Init(environment)
	if err != nil {
		return err
	}

	seedFile, err := LoadFile(file)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database, log); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	gdb := database.Get()
	seeder := NewSeeder(
		db.NewTransactionManager(gdb),
		repository.NewNGORepository(gdb),
		repository.NewBeneficiaryRepository(gdb, log),
		repository.NewDonationRepository(gdb),
	)

	res, err := seeder.Apply(cmd.Context(), seedFile)
	if err != nil {
		log.Errorw("seeding failed", "file", file, "error", err)
		return err
	}

	log.Infow("seed applied",
		"file", file,
		"ngos", res.NGOs,
		"beneficiaries", res.Beneficiaries,
		"donations", res.Donations,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d NGOs, %d beneficiaries, %d donations\n",
		res.NGOs, res.Beneficiaries, res.Donations)
	return nil
}
