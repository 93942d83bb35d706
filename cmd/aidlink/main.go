package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aidlink/aidlink/internal/interfaces/cli/migrate"
	"github.com/aidlink/aidlink/internal/interfaces/cli/plan"
	"github.com/aidlink/aidlink/internal/interfaces/cli/seed"
	"github.com/aidlink/aidlink/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "aidlink",
		Short:        "aidlink - equitable aid distribution",
		Long:         `aidlink plans and records the distribution of donated goods to NGO beneficiaries.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		plan.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
