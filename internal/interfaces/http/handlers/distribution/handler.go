package distribution

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aidlink/aidlink/internal/application/distribution/usecases"
	"github.com/aidlink/aidlink/internal/interfaces/http/middleware"
	"github.com/aidlink/aidlink/internal/shared/logger"
	"github.com/aidlink/aidlink/internal/shared/utils"
)

type Handler struct {
	calculateUC calculatePlanUseCase
	validateUC  validatePlanUseCase
	executeUC   executePlanUseCase
	historyUC   getHistoryUseCase
	logger      logger.Interface
}

func NewHandler(
	calculateUC calculatePlanUseCase,
	validateUC validatePlanUseCase,
	executeUC executePlanUseCase,
	historyUC getHistoryUseCase,
	log logger.Interface,
) *Handler {
	return &Handler{
		calculateUC: calculateUC,
		validateUC:  validateUC,
		executeUC:   executeUC,
		historyUC:   historyUC,
		logger:      log,
	}
}

// Calculate handles POST /api/distribution/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for calculate plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.calculateUC.Execute(c.Request.Context(), usecases.CalculatePlanCommand{
		NGOID:          req.NGOID,
		City:           req.City,
		Priority:       req.Priority,
		BeneficiaryIDs: req.BeneficiaryIDs,
		ItemType:       req.ItemType,
		ItemName:       req.ItemName,
		Unit:           req.Unit,
		DonationID:     req.DonationID,
		TotalQuantity:  req.TotalQuantity,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Distribution plan calculated", result)
}

// Validate handles POST /api/distribution/validate
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for validate plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.validateUC.Execute(c.Request.Context(), usecases.ValidatePlanCommand{
		Lines:             req.Lines,
		AvailableQuantity: *req.AvailableQuantity,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan fits available quantity", result)
}

// Execute handles POST /api/distribution/execute
func (h *Handler) Execute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for execute plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.executeUC.Execute(c.Request.Context(), usecases.ExecutePlanCommand{
		PlanID:            req.PlanID,
		Lines:             req.Lines,
		ItemType:          req.ItemType,
		ItemName:          req.ItemName,
		Unit:              req.Unit,
		DonationID:        req.DonationID,
		AvailableQuantity: req.AvailableQuantity,
		Notes:             req.Notes,
		ActorID:           middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Distribution executed")
}

// History handles GET /api/distribution/history
func (h *Handler) History(c *gin.Context) {
	from, err := utils.ParseDateQuery(c, "from", false)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	to, err := utils.ParseDateQuery(c, "to", true)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	limit, err := utils.ParseIntQuery(c, "limit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	records, err := h.historyUC.Execute(c.Request.Context(), usecases.GetHistoryQuery{
		NGOID:         c.Query("ngo_id"),
		BeneficiaryID: c.Query("beneficiary_id"),
		DonationID:    c.Query("donation_id"),
		From:          from,
		To:            to,
		Limit:         limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", records)
}
