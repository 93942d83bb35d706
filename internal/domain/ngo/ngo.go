package ngo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNGONotFound = errors.New("NGO not found")

// NGO is the organization that owns beneficiaries and donations.
type NGO struct {
	id                 string
	name               string
	registrationNumber string
	city               string
	state              string
	isVerified         bool
	isActive           bool
	capacity           int
	createdAt          time.Time
	updatedAt          time.Time
}

func NewNGO(id, name, registrationNumber, city, state string, capacity int) (*NGO, error) {
	if id == "" {
		return nil, fmt.Errorf("NGO ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("NGO name is required")
	}
	if strings.TrimSpace(registrationNumber) == "" {
		return nil, fmt.Errorf("registration number is required")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity cannot be negative")
	}
	now := time.Now().UTC()
	return &NGO{
		id:                 id,
		name:               strings.TrimSpace(name),
		registrationNumber: strings.TrimSpace(registrationNumber),
		city:               strings.TrimSpace(city),
		state:              strings.TrimSpace(state),
		isActive:           true,
		capacity:           capacity,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructNGO(id, name, registrationNumber, city, state string, isVerified, isActive bool, capacity int, createdAt, updatedAt time.Time) *NGO {
	return &NGO{
		id:                 id,
		name:               name,
		registrationNumber: registrationNumber,
		city:               city,
		state:              state,
		isVerified:         isVerified,
		isActive:           isActive,
		capacity:           capacity,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (n *NGO) ID() string { return n.id }
func (n *NGO) Name() string { return n.name }
func (n *NGO) RegistrationNumber() string { return n.registrationNumber }
func (n *NGO) City() string { return n.city }
func (n *NGO) State() string { return n.state }
func (n *NGO) IsVerified() bool { return n.isVerified }
func (n *NGO) IsActive() bool { return n.isActive }
func (n *NGO) Capacity() int { return n.capacity }
func (n *NGO) CreatedAt() time.Time { return n.createdAt }
func (n *NGO) UpdatedAt() time.Time { return n.updatedAt }

func (n *NGO) Verify() {
	n.isVerified = true
	n.updatedAt = time.Now().UTC()
}

// CanDistribute reports whether the NGO may run distributions.
func (n *NGO) CanDistribute() bool {
	return n.isActive
}
