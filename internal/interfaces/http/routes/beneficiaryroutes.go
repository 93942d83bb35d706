package routes

import (
	"github.com/gin-gonic/gin"

	beneficiaryhandlers "github.com/aidlink/aidlink/internal/interfaces/http/handlers/beneficiary"
)

type BeneficiaryRouteConfig struct {
	Handler *beneficiaryhandlers.Handler
}

func SetupBeneficiaryRoutes(api *gin.RouterGroup, config *BeneficiaryRouteConfig) {
	beneficiaries := api.Group("/beneficiaries")
	{
		beneficiaries.GET("/eligible", config.Handler.ListEligible)
	}
}
