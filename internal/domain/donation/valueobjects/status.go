package valueobjects

import "fmt"

type DonationStatus string

const (
	StatusPending     DonationStatus = "pending"
	StatusReceived    DonationStatus = "received"
	StatusDistributed DonationStatus = "distributed"
	StatusExpired     DonationStatus = "expired"
)

var transitions = map[DonationStatus][]DonationStatus{
	StatusPending:  {StatusReceived, StatusExpired},
	StatusReceived: {StatusDistributed, StatusExpired},
}

func (s DonationStatus) String() string {
	return string(s)
}

func (s DonationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReceived, StatusDistributed, StatusExpired:
		return true
	}
	return false
}

// IsFinal reports whether no further transition is possible.
func (s DonationStatus) IsFinal() bool {
	return len(transitions[s]) == 0
}

func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewDonationStatus(s string) (DonationStatus, error) {
	st := DonationStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid donation status: %s", s)
	}
	return st, nil
}
