package usecases

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/domain/donation"
	"github.com/aidlink/aidlink/internal/infrastructure/metrics"
	"github.com/aidlink/aidlink/internal/infrastructure/tracing"
	"github.com/aidlink/aidlink/internal/shared/biztime"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/id"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

type CalculatePlanCommand struct {
	NGOID          string
	City           string
	Priority       string
	BeneficiaryIDs []string
	ItemType       string
	ItemName       string
	Unit           string
	DonationID     string
	TotalQuantity  int
}

type CalculatePlanUseCase struct {
	rosterRepo   beneficiary.Repository
	donationRepo donation.Repository
	recordRepo   distribution.Repository
	planStore    distribution.PendingPlanStore
	allocator    *allocator.Allocator
	defaultUnit  string
	logger       logger.Interface
	now          func() time.Time
}

// NewCalculatePlanUseCase builds the use case. planStore may be nil, in which
// case plans are returned without a plan id.
func NewCalculatePlanUseCase(
	rosterRepo beneficiary.Repository,
	donationRepo donation.Repository,
	recordRepo distribution.Repository,
	planStore distribution.PendingPlanStore,
	alloc *allocator.Allocator,
	defaultUnit string,
	logger logger.Interface,
) *CalculatePlanUseCase {
	return &CalculatePlanUseCase{
		rosterRepo:   rosterRepo,
		donationRepo: donationRepo,
		recordRepo:   recordRepo,
		planStore:    planStore,
		allocator:    alloc,
		defaultUnit:  defaultUnit,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

func (uc *CalculatePlanUseCase) Execute(ctx context.Context, cmd CalculatePlanCommand) (result *dto.PlanDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, "distribution.calculate",
		attribute.String("item_type", cmd.ItemType),
		attribute.Int("total_quantity", cmd.TotalQuantity),
	)
	defer func() { tracing.EndSpan(span, err) }()

	itemType := strings.TrimSpace(cmd.ItemType)
	if itemType == "" {
		return nil, errors.NewValidationError("item type is required")
	}
	if cmd.TotalQuantity < 0 {
		return nil, errors.NewValidationError("total quantity cannot be negative")
	}

	filter := beneficiary.RosterFilter{
		NGOID: cmd.NGOID,
		City:  cmd.City,
		IDs:   cmd.BeneficiaryIDs,
	}
	if cmd.Priority != "" {
		tier, err := vo.NewPriorityTier(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Priority = &tier
	}

	var (
		roster    []*beneficiary.Beneficiary
		available *int
		source    *donation.Donation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = uc.rosterRepo.ListEligible(gctx, filter)
		return err
	})
	if cmd.DonationID != "" {
		g.Go(func() error {
			d, err := uc.donationRepo.GetByID(gctx, cmd.DonationID)
			if err != nil {
				return donationLookupError(err, cmd.DonationID)
			}
			n, err := donationSupply(gctx, uc.recordRepo, d, itemType, uc.now())
			if err != nil {
				return err
			}
			source, available = d, &n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to load plan inputs", "error", err, "item_type", itemType)
		return nil, err
	}

	candidates := make([]allocator.Candidate, len(roster))
	for i, b := range roster {
		candidates[i] = b.ToCandidate()
	}
	plan := uc.allocator.Plan(candidates, itemType, cmd.TotalQuantity)

	result = dto.ToPlanDTO(plan)
	result.ItemName = cmd.ItemName
	result.Unit = cmd.Unit
	result.DonationID = cmd.DonationID
	result.Summary.AvailableQuantity = available
	if source != nil {
		if result.ItemName == "" {
			result.ItemName = source.ItemName()
		}
		if result.Unit == "" {
			result.Unit = source.Unit()
		}
	}
	if result.ItemName == "" {
		result.ItemName = itemType
	}
	if result.Unit == "" {
		result.Unit = uc.defaultUnit
	}

	uc.park(ctx, cmd, plan, result)
	metrics.RecordPlanCalculated(itemType, len(plan.Lines))

	uc.logger.Infow("distribution plan calculated",
		"plan_id", result.PlanID,
		"item_type", itemType,
		"beneficiaries", len(plan.Lines),
		"total_quantity", plan.TotalQuantity,
	)
	return result, nil
}

// park stores the plan for later execution. A store failure leaves the plan
// usable by explicit lines, so it is logged rather than returned.
func (uc *CalculatePlanUseCase) park(ctx context.Context, cmd CalculatePlanCommand, plan allocator.Plan, result *dto.PlanDTO) {
	if uc.planStore == nil {
		return
	}
	pending := &distribution.PendingPlan{
		ID:         id.NewPlanID(),
		NGOID:      cmd.NGOID,
		City:       cmd.City,
		DonationID: cmd.DonationID,
		ItemName:   result.ItemName,
		Unit:       result.Unit,
		Plan:       plan,
	}
	if err := uc.planStore.Save(ctx, pending); err != nil {
		uc.logger.Warnw("failed to store plan for review", "error", err)
		return
	}
	result.PlanID = pending.ID
	expiresAt := pending.ExpiresAt
	result.ExpiresAt = &expiresAt
}
