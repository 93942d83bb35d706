package distribution

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/application/distribution/usecases"
	"github.com/aidlink/aidlink/internal/interfaces/http/handlers/testutil"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCalculateUC struct {
	got    usecases.CalculatePlanCommand
	result *dto.PlanDTO
	err    error
}

func (m *mockCalculateUC) Execute(_ context.Context, cmd usecases.CalculatePlanCommand) (*dto.PlanDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockValidateUC struct {
	got    usecases.ValidatePlanCommand
	result *dto.ValidationResultDTO
	err    error
}

func (m *mockValidateUC) Execute(_ context.Context, cmd usecases.ValidatePlanCommand) (*dto.ValidationResultDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockExecuteUC struct {
	got    usecases.ExecutePlanCommand
	result *dto.ExecutionResultDTO
	err    error
}

func (m *mockExecuteUC) Execute(_ context.Context, cmd usecases.ExecutePlanCommand) (*dto.ExecutionResultDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockHistoryUC struct {
	got    usecases.GetHistoryQuery
	result []dto.RecordDTO
	err    error
}

func (m *mockHistoryUC) Execute(_ context.Context, query usecases.GetHistoryQuery) ([]dto.RecordDTO, error) {
	m.got = query
	return m.result, m.err
}

type mocks struct {
	calculate *mockCalculateUC
	validate  *mockValidateUC
	execute   *mockExecuteUC
	history   *mockHistoryUC
}

func newTestHandler() (*Handler, *mocks) {
	m := &mocks{
		calculate: &mockCalculateUC{},
		validate:  &mockValidateUC{},
		execute:   &mockExecuteUC{},
		history:   &mockHistoryUC{},
	}
	return NewHandler(m.calculate, m.validate, m.execute, m.history, logger.NewNop()), m
}

// =====================================================================
// Calculate
// =====================================================================

func TestHandler_Calculate(t *testing.T) {
	h, m := newTestHandler()
	m.calculate.result = &dto.PlanDTO{
		PlanID:   "plan_1",
		ItemType: "rice",
		Lines:    []dto.PlanLineDTO{{BeneficiaryID: "b1", NGOID: "n", Quantity: 10}},
		Summary:  dto.PlanSummaryDTO{TotalBeneficiaries: 1, TotalQuantity: 10, AveragePerBeneficiary: 10},
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/calculate", map[string]any{
		"ngo_id":         "n",
		"priority":       "high",
		"item_type":      "rice",
		"total_quantity": 10,
	})
	h.Calculate(c)

	require.Equal(t, http.StatusOK, w.Code)
	var plan dto.PlanDTO
	resp, err := testutil.DecodeData(w, &plan)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "plan_1", plan.PlanID)
	assert.Equal(t, 10, plan.Summary.TotalQuantity)
	assert.Equal(t, "high", m.calculate.got.Priority)
	assert.Equal(t, 10, m.calculate.got.TotalQuantity)
}

func TestHandler_Calculate_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		body        map[string]any
		wantDetails string
	}{
		{"missing item type", map[string]any{"total_quantity": 5}, "item_type is required"},
		{"zero quantity", map[string]any{"item_type": "rice", "total_quantity": 0}, "total_quantity must be greater than or equal to 1"},
		{"unknown tier", map[string]any{"item_type": "rice", "total_quantity": 5, "priority": "urgent"}, "priority must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/calculate", tt.body)
			h.Calculate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp, err := testutil.DecodeData(w, nil)
			require.NoError(t, err)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "validation_error", resp.Error.Type)
			assert.Contains(t, resp.Error.Details, tt.wantDetails)
		})
	}
}

// =====================================================================
// Validate
// =====================================================================

func TestHandler_Validate(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		h, m := newTestHandler()
		m.validate.result = &dto.ValidationResultDTO{Valid: true, Available: 10, Requested: 10}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/validate", map[string]any{
			"lines":              []map[string]any{{"beneficiary_id": "b1", "ngo_id": "n", "quantity": 10}},
			"available_quantity": 10,
		})
		h.Validate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, m.validate.got.AvailableQuantity)
		require.Len(t, m.validate.got.Lines, 1)
	})

	t.Run("over allocation is 409", func(t *testing.T) {
		h, m := newTestHandler()
		m.validate.err = errors.NewConflictError("distribution plan exceeds available quantity: available 100, requested 120",
			"available=100", "requested=120")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/validate", map[string]any{
			"lines":              []map[string]any{{"beneficiary_id": "b1", "ngo_id": "n", "quantity": 120}},
			"available_quantity": 100,
		})
		h.Validate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp, err := testutil.DecodeData(w, nil)
		require.NoError(t, err)
		assert.Equal(t, "available=100; requested=120", resp.Error.Details)
	})

	t.Run("available required", func(t *testing.T) {
		h, _ := newTestHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/validate", map[string]any{
			"lines": []map[string]any{},
		})
		h.Validate(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("line without beneficiary", func(t *testing.T) {
		h, _ := newTestHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/validate", map[string]any{
			"lines":              []map[string]any{{"ngo_id": "n", "quantity": 1}},
			"available_quantity": 1,
		})
		h.Validate(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =====================================================================
// Execute
// =====================================================================

func TestHandler_Execute(t *testing.T) {
	h, m := newTestHandler()
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	m.execute.result = &dto.ExecutionResultDTO{BatchID: "batch-1", DistributedAt: at, RecordsCreated: 2, TotalDistributed: 10}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/execute", map[string]any{
		"plan_id":     "plan_1",
		"donation_id": "don-1",
		"notes":       "ward 4",
	})
	testutil.SetActorContext(c, "coordinator-9")
	h.Execute(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var result dto.ExecutionResultDTO
	_, err := testutil.DecodeData(w, &result)
	require.NoError(t, err)
	assert.Equal(t, "batch-1", result.BatchID)
	assert.Equal(t, "coordinator-9", m.execute.got.ActorID)
	assert.Equal(t, "plan_1", m.execute.got.PlanID)
	assert.Equal(t, "don-1", m.execute.got.DonationID)
	assert.Nil(t, m.execute.got.AvailableQuantity)
}

func TestHandler_Execute_PlanGone(t *testing.T) {
	h, m := newTestHandler()
	m.execute.err = errors.NewNotFoundError("plan not found or already executed", "plan_1")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/execute", map[string]any{"plan_id": "plan_1"})
	testutil.SetActorContext(c, "a")
	h.Execute(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Execute_MalformedBody(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/distribution/execute", map[string]any{"lines": "not-a-list"})
	h.Execute(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// History
// =====================================================================

func TestHandler_History(t *testing.T) {
	h, m := newTestHandler()
	m.history.result = []dto.RecordDTO{{ID: "r1", Quantity: 3}}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/distribution/history", nil)
	testutil.SetQueryParams(c, map[string]string{
		"ngo_id": "n",
		"from":   "2026-01-01",
		"to":     "2026-01-31",
		"limit":  "25",
	})
	h.History(c)

	require.Equal(t, http.StatusOK, w.Code)
	var records []dto.RecordDTO
	_, err := testutil.DecodeData(w, &records)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := m.history.got
	assert.Equal(t, "n", got.NGOID)
	assert.Equal(t, 25, got.Limit)
	require.NotNil(t, got.From)
	require.NotNil(t, got.To)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *got.From)
	assert.Equal(t, 31, got.To.Day())
	assert.Equal(t, 23, got.To.Hour())
}

func TestHandler_History_BadDate(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/api/distribution/history", nil)
	testutil.SetQueryParams(c, map[string]string{"from": "01/02/2026"})
	h.History(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
