package usecases

import (
	"context"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

type ValidatePlanCommand struct {
	Lines             []dto.PlanLineDTO
	AvailableQuantity int
}

type ValidatePlanUseCase struct {
	logger logger.Interface
}

func NewValidatePlanUseCase(logger logger.Interface) *ValidatePlanUseCase {
	return &ValidatePlanUseCase{logger: logger}
}

// Execute succeeds when the lines fit in the available quantity and returns
// a conflict error carrying both figures otherwise.
func (uc *ValidatePlanUseCase) Execute(ctx context.Context, cmd ValidatePlanCommand) (*dto.ValidationResultDTO, error) {
	if cmd.AvailableQuantity < 0 {
		return nil, errors.NewValidationError("available quantity cannot be negative")
	}
	for _, l := range cmd.Lines {
		if l.Quantity < 0 {
			return nil, errors.NewValidationError("line quantity cannot be negative", l.BeneficiaryID)
		}
	}

	lines := dto.ToLines(cmd.Lines, "")
	if err := allocator.Validate(lines, cmd.AvailableQuantity); err != nil {
		uc.logger.Infow("plan rejected", "error", err)
		return nil, overAllocationError(err)
	}

	return &dto.ValidationResultDTO{
		Valid:     true,
		Available: cmd.AvailableQuantity,
		Requested: allocator.Requested(lines),
	}, nil
}
