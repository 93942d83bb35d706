package usecases

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/domain/beneficiary"
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

// ExecutePlanCommand commits either a stored plan (PlanID) or an edited one
// (Lines). Explicit lines take precedence. Supply comes from DonationID when
// set, otherwise from AvailableQuantity.
type ExecutePlanCommand struct {
	PlanID            string
	Lines             []dto.PlanLineDTO
	ItemType          string
	ItemName          string
	Unit              string
	DonationID        string
	AvailableQuantity *int
	Notes             string
	ActorID           string
}

type ExecutePlanUseCase struct {
	txManager      transactionManager
	rosterRepo     beneficiary.Repository
	donationRepo   donation.Repository
	recordRepo     distribution.Repository
	planStore      distribution.PendingPlanStore
	defaultUnit    string
	notesMaxLength int
	logger         logger.Interface
	now            func() time.Time
}

func NewExecutePlanUseCase(
	txManager transactionManager,
	rosterRepo beneficiary.Repository,
	donationRepo donation.Repository,
	recordRepo distribution.Repository,
	planStore distribution.PendingPlanStore,
	defaultUnit string,
	notesMaxLength int,
	logger logger.Interface,
) *ExecutePlanUseCase {
	return &ExecutePlanUseCase{
		txManager:      txManager,
		rosterRepo:     rosterRepo,
		donationRepo:   donationRepo,
		recordRepo:     recordRepo,
		planStore:      planStore,
		defaultUnit:    defaultUnit,
		notesMaxLength: notesMaxLength,
		logger:         logger,
		now:            biztime.NowUTC,
	}
}

// commitRequest is the plan after resolving the command against the plan store.
type commitRequest struct {
	lines      []allocator.Line
	itemType   string
	itemName   string
	unit       string
	donationID string
	pending    *distribution.PendingPlan
}

func (uc *ExecutePlanUseCase) Execute(ctx context.Context, cmd ExecutePlanCommand) (result *dto.ExecutionResultDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, "distribution.execute",
		attribute.String("plan_id", cmd.PlanID),
		attribute.String("actor", cmd.ActorID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if strings.TrimSpace(cmd.ActorID) == "" {
		return nil, errors.NewValidationError("actor is required to execute a distribution")
	}

	req, err := uc.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	result, err = uc.commit(ctx, cmd, req)
	if err != nil {
		uc.restore(ctx, req.pending)
		var over *allocator.OverAllocationError
		if goerrors.As(err, &over) {
			metrics.RecordExecution(metrics.ResultOverAllocated)
		} else {
			metrics.RecordExecution(metrics.ResultFailed)
		}
		uc.logger.Warnw("distribution not committed", "error", err, "plan_id", cmd.PlanID, "actor", cmd.ActorID)
		return nil, err
	}

	metrics.RecordExecution(metrics.ResultCommitted)
	metrics.RecordUnitsDistributed(req.itemType, result.TotalDistributed)
	uc.logger.Infow("distribution committed",
		"batch_id", result.BatchID,
		"plan_id", cmd.PlanID,
		"records", result.RecordsCreated,
		"total_distributed", result.TotalDistributed,
		"actor", cmd.ActorID,
	)
	return result, nil
}

func (uc *ExecutePlanUseCase) resolve(ctx context.Context, cmd ExecutePlanCommand) (*commitRequest, error) {
	req := &commitRequest{
		itemType:   strings.TrimSpace(cmd.ItemType),
		itemName:   cmd.ItemName,
		unit:       cmd.Unit,
		donationID: cmd.DonationID,
	}

	switch {
	case len(cmd.Lines) > 0:
		if req.itemType == "" {
			req.itemType = strings.TrimSpace(cmd.Lines[0].ItemType)
		}
		req.lines = dto.ToLines(cmd.Lines, req.itemType)
	case cmd.PlanID != "":
		if uc.planStore == nil {
			return nil, errors.NewBadRequestError("stored plans are not available, submit lines instead")
		}
		pending, err := uc.planStore.Take(ctx, cmd.PlanID)
		if err != nil {
			if goerrors.Is(err, distribution.ErrPlanNotFound) {
				return nil, errors.NewNotFoundError("plan not found or already executed", cmd.PlanID).WithCause(err)
			}
			return nil, err
		}
		req.pending = pending
		req.lines = pending.Plan.Lines
		req.itemType = pending.Plan.ItemType
		if req.itemName == "" {
			req.itemName = pending.ItemName
		}
		if req.unit == "" {
			req.unit = pending.Unit
		}
		if req.donationID == "" {
			req.donationID = pending.DonationID
		}
	default:
		return nil, errors.NewValidationError("plan_id or lines is required")
	}

	if err := checkLines(req.lines, req.itemType); err != nil {
		uc.restore(ctx, req.pending)
		return nil, err
	}
	return req, nil
}

// itemDetails names what is handed out. Values given by the caller or the
// stored plan win, then the source donation, then the item type and the
// configured unit.
func (uc *ExecutePlanUseCase) itemDetails(req *commitRequest, source *donation.Donation) (name, unit string) {
	name, unit = req.itemName, req.unit
	if source != nil {
		if name == "" {
			name = source.ItemName()
		}
		if unit == "" {
			unit = source.Unit()
		}
	}
	if name == "" {
		name = req.itemType
	}
	if unit == "" {
		unit = uc.defaultUnit
	}
	return name, unit
}

func checkLines(lines []allocator.Line, itemType string) error {
	if itemType == "" {
		return errors.NewValidationError("item type is required")
	}
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		switch {
		case l.BeneficiaryID == "":
			return errors.NewValidationError("every line needs a beneficiary")
		case l.NGOID == "":
			return errors.NewValidationError("every line needs an NGO", l.BeneficiaryID)
		case l.Quantity < 0:
			return errors.NewValidationError("line quantity cannot be negative", l.BeneficiaryID)
		case !strings.EqualFold(l.ItemType, itemType):
			return errors.NewValidationError("all lines must share one item type", l.ItemType+" != "+itemType)
		}
		if _, dup := seen[l.BeneficiaryID]; dup {
			return errors.NewValidationError("beneficiary appears more than once", l.BeneficiaryID)
		}
		seen[l.BeneficiaryID] = struct{}{}
	}
	return nil
}

// commit validates against supply and writes every record in one transaction.
func (uc *ExecutePlanUseCase) commit(ctx context.Context, cmd ExecutePlanCommand, req *commitRequest) (*dto.ExecutionResultDTO, error) {
	at := uc.now().UTC()
	batchID := id.New()
	notes := sanitizeNotes(cmd.Notes, uc.notesMaxLength)
	requested := allocator.Requested(req.lines)

	var (
		records   []*distribution.Record
		remaining *int
	)

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		records = records[:0]

		var (
			available int
			source    *donation.Donation
		)
		switch {
		case req.donationID != "":
			d, err := uc.donationRepo.GetByIDForUpdate(ctx, req.donationID)
			if err != nil {
				return donationLookupError(err, req.donationID)
			}
			if available, err = donationSupply(ctx, uc.recordRepo, d, req.itemType, at); err != nil {
				return err
			}
			source = d
		case cmd.AvailableQuantity != nil:
			available = *cmd.AvailableQuantity
		default:
			return errors.NewValidationError("donation_id or available_quantity is required")
		}

		if err := uc.checkRecipients(ctx, req.lines, source); err != nil {
			return err
		}
		if err := allocator.Validate(req.lines, available); err != nil {
			return overAllocationError(err)
		}

		itemName, unit := uc.itemDetails(req, source)

		var donationID *string
		if source != nil {
			sid := source.ID()
			donationID = &sid
		}

		served := make([]string, 0, len(req.lines))
		for _, l := range req.lines {
			if l.Quantity == 0 {
				continue
			}
			r, err := distribution.NewRecord(distribution.RecordParams{
				ID:            id.New(),
				BatchID:       batchID,
				BeneficiaryID: l.BeneficiaryID,
				NGOID:         l.NGOID,
				DonationID:    donationID,
				ItemType:      req.itemType,
				ItemName:      itemName,
				Quantity:      l.Quantity,
				Unit:          unit,
				DistributedAt: at,
				DistributedBy: cmd.ActorID,
				PriorityScore: l.PriorityScore,
				FairnessScore: clampShare(l.FairnessScore),
				Notes:         notes,
			})
			if err != nil {
				return errors.NewValidationError(err.Error(), l.BeneficiaryID)
			}
			records = append(records, r)
			served = append(served, l.BeneficiaryID)
		}

		if len(records) == 0 {
			return nil
		}
		if err := uc.recordRepo.CreateBatch(ctx, records); err != nil {
			return err
		}
		if err := uc.rosterRepo.MarkServed(ctx, served, at); err != nil {
			return err
		}

		if source != nil {
			left := available - requested
			remaining = &left
			if left == 0 {
				from := source.Status()
				if err := source.MarkDistributed(at); err != nil {
					return err
				}
				if err := uc.donationRepo.UpdateStatus(ctx, source, from); err != nil {
					if goerrors.Is(err, donation.ErrStatusChanged) {
						return errors.NewConflictError("donation changed during the distribution", source.ID()).WithCause(err)
					}
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ExecutionResultDTO{
		BatchID:          batchID,
		DistributedAt:    at,
		RecordsCreated:   len(records),
		TotalDistributed: requested,
		Remaining:        remaining,
		Records:          dto.ToRecordDTOs(records),
	}, nil
}

// checkRecipients loads every beneficiary that receives stock and rejects
// lines naming an unknown or inactive beneficiary, or an NGO other than the
// beneficiary's own and the donation's.
func (uc *ExecutePlanUseCase) checkRecipients(ctx context.Context, lines []allocator.Line, source *donation.Donation) error {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			ids = append(ids, l.BeneficiaryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	active, err := uc.rosterRepo.ListEligible(ctx, beneficiary.RosterFilter{IDs: ids})
	if err != nil {
		return err
	}
	byID := make(map[string]*beneficiary.Beneficiary, len(active))
	for _, b := range active {
		byID[b.ID()] = b
	}

	for _, l := range lines {
		if l.Quantity == 0 {
			continue
		}
		b, ok := byID[l.BeneficiaryID]
		if !ok {
			return errors.NewNotFoundError("beneficiary not found or inactive", l.BeneficiaryID).
				WithCause(beneficiary.ErrBeneficiaryNotFound)
		}
		if l.NGOID != b.NGOID() {
			return errors.NewValidationError("line NGO does not match the beneficiary's NGO",
				l.BeneficiaryID+": "+l.NGOID+" != "+b.NGOID())
		}
		if source != nil && l.NGOID != source.NGOID() {
			return errors.NewValidationError("donation belongs to another NGO",
				l.BeneficiaryID+": "+l.NGOID+" != "+source.NGOID())
		}
	}
	return nil
}

// restore puts a taken plan back after a failed commit so it can be retried.
func (uc *ExecutePlanUseCase) restore(ctx context.Context, pending *distribution.PendingPlan) {
	if pending == nil || uc.planStore == nil {
		return
	}
	if err := uc.planStore.Restore(context.WithoutCancel(ctx), pending); err != nil {
		uc.logger.Warnw("failed to restore plan after aborted commit", "plan_id", pending.ID, "error", err)
	}
}

// clampShare keeps client-supplied fairness inside [0,1].
func clampShare(v float64) float64 {
	return min(max(v, 0), 1)
}
