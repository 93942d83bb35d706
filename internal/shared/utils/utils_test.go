package utils

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidlink/aidlink/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type rosterQuery struct {
	ItemType string `json:"item_type" validate:"required"`
	Total    int    `json:"total_quantity" validate:"gte=1"`
	Priority string `json:"priority" validate:"priority_tier"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(rosterQuery{ItemType: "rice", Total: 1, Priority: "high"}))
	require.NoError(t, ValidateStruct(rosterQuery{ItemType: "rice", Total: 1}))

	err := ValidateStruct(rosterQuery{Total: 0, Priority: "urgent"})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "item_type is required")
	assert.Contains(t, appErr.Details, "total_quantity must be greater than or equal to 1")
	assert.Contains(t, appErr.Details, "priority must be one of [critical high medium low]")
}

func TestTranslateBindingError(t *testing.T) {
	var target struct{ N int }
	jsonErr := json.Unmarshal([]byte(`{"N":"x"}`), &target)
	assert.NotNil(t, TranslateBindingError(jsonErr))
	assert.Nil(t, TranslateBindingError(stderrors.New("other")))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponseWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantMsg    string
	}{
		{"conflict", errors.NewConflictError("over", "available=1"), http.StatusConflict, "conflict", "over"},
		{"not found", errors.NewNotFoundError("plan not found"), http.StatusNotFound, "not_found", "plan not found"},
		{"plain error hidden", stderrors.New("sql: connection refused"), http.StatusInternalServerError, "internal_error", "Internal server error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}

func TestSuccessResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessResponse(c, http.StatusOK, "ok", map[string]int{"n": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
}

func TestParseQueries(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=2026-01-02&to=2026-01-03&limit=20&bad=x", nil)

	from, err := ParseDateQuery(c, "from", false)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02T00:00:00Z", from.Format("2006-01-02T15:04:05Z07:00"))

	to, err := ParseDateQuery(c, "to", true)
	require.NoError(t, err)
	assert.Equal(t, 23, to.Hour())

	missing, err := ParseDateQuery(c, "since", false)
	require.NoError(t, err)
	assert.Nil(t, missing)

	n, err := ParseIntQuery(c, "limit")
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	_, err = ParseIntQuery(c, "bad")
	assert.True(t, errors.IsValidationError(err))
}
