package beneficiary

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidlink/aidlink/internal/application/beneficiary/dto"
	"github.com/aidlink/aidlink/internal/application/beneficiary/usecases"
	"github.com/aidlink/aidlink/internal/interfaces/http/handlers/testutil"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

type mockListEligibleUC struct {
	got    usecases.ListEligibleQuery
	result []dto.EligibleBeneficiaryDTO
	err    error
}

func (m *mockListEligibleUC) Execute(_ context.Context, query usecases.ListEligibleQuery) ([]dto.EligibleBeneficiaryDTO, error) {
	m.got = query
	return m.result, m.err
}

func TestHandler_ListEligible(t *testing.T) {
	uc := &mockListEligibleUC{result: []dto.EligibleBeneficiaryDTO{{ID: "b1", Priority: "critical", PriorityScore: "7.00"}}}
	h := NewHandler(uc, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/beneficiaries/eligible", nil)
	testutil.SetQueryParams(c, map[string]string{"ngo_id": "n1", "city": "Pune", "priority": "critical", "limit": "5"})
	h.ListEligible(c)

	require.Equal(t, http.StatusOK, w.Code)
	var out []dto.EligibleBeneficiaryDTO
	_, err := testutil.DecodeData(w, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "7.00", out[0].PriorityScore)
	assert.Equal(t, usecases.ListEligibleQuery{NGOID: "n1", City: "Pune", Priority: "critical", Limit: 5}, uc.got)
}

func TestHandler_ListEligible_Errors(t *testing.T) {
	uc := &mockListEligibleUC{err: errors.NewValidationError("invalid priority tier: vip")}
	h := NewHandler(uc, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/beneficiaries/eligible", nil)
	testutil.SetQueryParams(c, map[string]string{"priority": "vip"})
	h.ListEligible(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/beneficiaries/eligible", nil)
	testutil.SetQueryParams(c, map[string]string{"limit": "-3"})
	h.ListEligible(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
