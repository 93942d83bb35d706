package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from DonationStatus
		to   DonationStatus
		want bool
	}{
		{StatusPending, StatusReceived, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusDistributed, false},
		{StatusReceived, StatusDistributed, true},
		{StatusReceived, StatusExpired, true},
		{StatusDistributed, StatusExpired, false},
		{StatusExpired, StatusReceived, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestDonationStatus_IsFinal(t *testing.T) {
	assert.False(t, StatusPending.IsFinal())
	assert.False(t, StatusReceived.IsFinal())
	assert.True(t, StatusDistributed.IsFinal())
	assert.True(t, StatusExpired.IsFinal())
}

func TestNewDonationStatus(t *testing.T) {
	s, err := NewDonationStatus("received")
	assert.NoError(t, err)
	assert.Equal(t, StatusReceived, s)

	_, err = NewDonationStatus("lost")
	assert.ErrorContains(t, err, "invalid donation status")
}
