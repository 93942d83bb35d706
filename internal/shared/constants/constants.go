package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderXRequestID = "X-Request-ID"

	// ContextKeyActorID holds the caller identity forwarded by the gateway.
	ContextKeyActorID   = "actor_id"
	ContextKeyRequestID = "request_id"

	TableNGOs          = "ngos"
	TableBeneficiaries = "beneficiaries"
	TableDonations     = "donations"
	TableDistributions = "distributions"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
)
