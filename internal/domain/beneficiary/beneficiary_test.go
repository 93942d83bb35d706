package beneficiary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
)

func TestNewBeneficiary(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		ngoID     string
		firstName string
		priority  vo.PriorityTier
		wantErr   string
	}{
		{name: "valid", id: "b1", ngoID: "n1", firstName: "Asha", priority: vo.PriorityHigh},
		{name: "default priority", id: "b1", ngoID: "n1", firstName: "Asha"},
		{name: "missing id", ngoID: "n1", firstName: "Asha", wantErr: "beneficiary ID is required"},
		{name: "missing ngo", id: "b1", firstName: "Asha", wantErr: "NGO ID is required"},
		{name: "blank first name", id: "b1", ngoID: "n1", firstName: "  ", wantErr: "first name is required"},
		{name: "bad tier", id: "b1", ngoID: "n1", firstName: "Asha", priority: "urgent", wantErr: "invalid priority tier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBeneficiary(tt.id, tt.ngoID, tt.firstName, "", tt.priority, nil)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, b.IsActive())
			assert.Nil(t, b.LastServedAt())
			if tt.priority == "" {
				assert.Equal(t, vo.PriorityMedium, b.Priority())
			}
		})
	}
}

func TestBeneficiary_DisplayName(t *testing.T) {
	b, err := NewBeneficiary("b1", "n1", "Ravi", "", vo.PriorityLow, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", b.DisplayName())

	b, err = NewBeneficiary("b2", "n1", "Ravi", " Kumar ", vo.PriorityLow, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", b.DisplayName())
}

func TestBeneficiary_ToCandidate(t *testing.T) {
	b, err := NewBeneficiary("b1", "n1", "Meera", "Iyer", vo.PriorityCritical, []string{"diabetes", "asthma"})
	require.NoError(t, err)
	served := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b.RecordDistribution(served)

	c := b.ToCandidate()

	assert.Equal(t, "b1", c.ID)
	assert.Equal(t, "Meera Iyer", c.Name)
	assert.Equal(t, "n1", c.NGOID)
	assert.Equal(t, vo.PriorityCritical, c.Priority)
	assert.Equal(t, 2, c.HealthConditions)
	require.NotNil(t, c.LastServedAt)
	assert.True(t, served.Equal(*c.LastServedAt))
}

func TestBeneficiary_ToCandidate_CountsDistinctConditions(t *testing.T) {
	tests := []struct {
		name       string
		conditions []string
		want       int
	}{
		{name: "none", want: 0},
		{name: "repeated entry", conditions: []string{"diabetes", "diabetes", "Diabetes"}, want: 1},
		{name: "padded and blank", conditions: []string{" asthma", "asthma ", "", "  "}, want: 1},
		{name: "distinct", conditions: []string{"asthma", "anaemia", "DIABETES"}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBeneficiary("b1", "n1", "Meera", "", vo.PriorityLow, tt.conditions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.ToCandidate().HealthConditions)
			assert.Len(t, b.HealthConditions(), len(tt.conditions), "recorded list is kept as entered")
		})
	}
}

func TestBeneficiary_SetProfile(t *testing.T) {
	b, err := NewBeneficiary("b1", "n1", "Meera", "", vo.PriorityLow, nil)
	require.NoError(t, err)

	require.NoError(t, b.SetProfile(34, vo.GenderFemale, "999", " Pune ", "411001", []string{"food"}, ""))
	assert.Equal(t, "Pune", b.City())
	assert.Equal(t, []string{"food"}, b.NeedCategories())

	assert.Error(t, b.SetProfile(-1, "", "", "", "", nil, ""))
	assert.Error(t, b.SetProfile(20, "robot", "", "", "", nil, ""))
}

func TestBeneficiary_HealthConditionsAreCopied(t *testing.T) {
	conds := []string{"asthma"}
	b, err := NewBeneficiary("b1", "n1", "Meera", "", vo.PriorityLow, conds)
	require.NoError(t, err)

	conds[0] = "changed"
	_ = append(b.HealthConditions(), "extra")

	assert.Equal(t, []string{"asthma"}, b.HealthConditions())
}
