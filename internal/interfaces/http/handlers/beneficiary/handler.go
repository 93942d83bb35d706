package beneficiary

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aidlink/aidlink/internal/application/beneficiary/dto"
	"github.com/aidlink/aidlink/internal/application/beneficiary/usecases"
	"github.com/aidlink/aidlink/internal/shared/logger"
	"github.com/aidlink/aidlink/internal/shared/utils"
)

type listEligibleUseCase interface {
	Execute(ctx context.Context, query usecases.ListEligibleQuery) ([]dto.EligibleBeneficiaryDTO, error)
}

type Handler struct {
	listEligibleUC listEligibleUseCase
	logger         logger.Interface
}

func NewHandler(listEligibleUC listEligibleUseCase, log logger.Interface) *Handler {
	return &Handler{
		listEligibleUC: listEligibleUC,
		logger:         log,
	}
}

// ListEligible handles GET /api/beneficiaries/eligible
func (h *Handler) ListEligible(c *gin.Context) {
	limit, err := utils.ParseIntQuery(c, "limit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listEligibleUC.Execute(c.Request.Context(), usecases.ListEligibleQuery{
		NGOID:    c.Query("ngo_id"),
		City:     c.Query("city"),
		Priority: c.Query("priority"),
		Limit:    limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
