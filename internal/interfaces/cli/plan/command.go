package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/shared/biztime"
)

type options struct {
	rosterPath string
	itemType   string
	quantity   int
	available  int
	at         string
	output     string
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute an allocation plan from a roster file",
		Long: `Score every beneficiary in a YAML or JSON roster file and split the given
quantity between them. Nothing is written to the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var available *int
			if cmd.Flags().Changed("available") {
				available = &opts.available
			}
			return run(cmd.OutOrStdout(), opts, available)
		},
	}

	cmd.Flags().StringVarP(&opts.rosterPath, "roster", "r", "", "Roster file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.itemType, "item", "", "Item type to distribute")
	cmd.Flags().IntVarP(&opts.quantity, "quantity", "q", 0, "Total quantity to split")
	cmd.Flags().IntVar(&opts.available, "available", 0, "Units on hand; the plan is validated against it when set")
	cmd.Flags().StringVar(&opts.at, "at", "", "Reference time (RFC3339), defaults to now")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func run(out io.Writer, opts *options, available *int) error {
	if opts.quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	ref := biztime.NowUTC()
	if opts.at != "" {
		t, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		ref = t.UTC()
	}

	roster, err := LoadRosterFile(opts.rosterPath)
	if err != nil {
		return err
	}

	plan := allocator.PlanAt(ref, roster.Beneficiaries, opts.itemType, opts.quantity)
	summary := dto.Summarize(plan.Lines)
	summary.AvailableQuantity = available

	switch opts.output {
	case "json":
		err = writeJSON(out, plan, summary)
	case "table", "":
		err = writeTable(out, plan, summary)
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
	if err != nil {
		return err
	}

	if available == nil {
		return nil
	}
	if err := allocator.Validate(plan.Lines, *available); err != nil {
		var over *allocator.OverAllocationError
		if errors.As(err, &over) {
			fmt.Fprintf(out, "\nplan is NOT valid: requested %d, available %d\n", over.Requested, over.Available)
		}
		return err
	}
	fmt.Fprintf(out, "\nplan is valid: requested %d, available %d\n", plan.Requested(), *available)
	return nil
}

func writeTable(out io.Writer, plan allocator.Plan, summary dto.PlanSummaryDTO) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BENEFICIARY\tNAME\tQUANTITY\tPRIORITY\tFAIRNESS")
	for _, l := range plan.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			l.BeneficiaryID, l.BeneficiaryName, l.Quantity,
			l.FormattedPriorityScore(), l.FormattedFairnessScore())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d beneficiaries, %d %s in total, %.2f on average\n",
		summary.TotalBeneficiaries, summary.TotalQuantity, plan.ItemType, summary.AveragePerBeneficiary)
	return err
}

func writeJSON(out io.Writer, plan allocator.Plan, summary dto.PlanSummaryDTO) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		allocator.Plan
		Summary dto.PlanSummaryDTO `json:"summary"`
	}{plan, summary})
}
