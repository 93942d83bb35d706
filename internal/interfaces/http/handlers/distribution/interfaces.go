package distribution

import (
	"context"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/application/distribution/usecases"
)

type calculatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CalculatePlanCommand) (*dto.PlanDTO, error)
}

type validatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.ValidatePlanCommand) (*dto.ValidationResultDTO, error)
}

type executePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.ExecutePlanCommand) (*dto.ExecutionResultDTO, error)
}

type getHistoryUseCase interface {
	Execute(ctx context.Context, query usecases.GetHistoryQuery) ([]dto.RecordDTO, error)
}
