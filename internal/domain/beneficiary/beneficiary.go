package beneficiary

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
)

// Beneficiary is a person registered with an NGO to receive aid.
type Beneficiary struct {
	id               string
	ngoID            string
	firstName        string
	lastName         string
	age              int
	gender           vo.Gender
	phone            string
	city             string
	pincode          string
	needCategories   []string
	healthConditions []string
	priority         vo.PriorityTier
	isActive         bool
	lastServedAt     *time.Time
	notes            string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewBeneficiary registers a new active beneficiary. An empty priority
// defaults to medium.
func NewBeneficiary(
	id string,
	ngoID string,
	firstName string,
	lastName string,
	priority vo.PriorityTier,
	healthConditions []string,
) (*Beneficiary, error) {
	if id == "" {
		return nil, fmt.Errorf("beneficiary ID is required")
	}
	if ngoID == "" {
		return nil, fmt.Errorf("NGO ID is required")
	}
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, fmt.Errorf("first name is required")
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if priority == "" {
		priority = vo.DefaultPriority
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority tier: %s", priority)
	}

	now := time.Now().UTC()
	return &Beneficiary{
		id:               id,
		ngoID:            ngoID,
		firstName:        firstName,
		lastName:         strings.TrimSpace(lastName),
		healthConditions: copyStrings(healthConditions),
		needCategories:   []string{},
		priority:         priority,
		isActive:         true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructBeneficiary rebuilds a beneficiary from storage. Stored data is
// trusted except for the identity fields; an unknown tier is kept as-is and
// scored as low by the allocator.
func ReconstructBeneficiary(
	id, ngoID, firstName, lastName string,
	age int,
	gender vo.Gender,
	phone, city, pincode string,
	needCategories, healthConditions []string,
	priority vo.PriorityTier,
	isActive bool,
	lastServedAt *time.Time,
	notes string,
	createdAt, updatedAt time.Time,
) (*Beneficiary, error) {
	if id == "" {
		return nil, fmt.Errorf("beneficiary ID is required")
	}
	if ngoID == "" {
		return nil, fmt.Errorf("NGO ID is required")
	}
	return &Beneficiary{
		id:               id,
		ngoID:            ngoID,
		firstName:        firstName,
		lastName:         lastName,
		age:              age,
		gender:           gender,
		phone:            phone,
		city:             city,
		pincode:          pincode,
		needCategories:   copyStrings(needCategories),
		healthConditions: copyStrings(healthConditions),
		priority:         priority,
		isActive:         isActive,
		lastServedAt:     lastServedAt,
		notes:            notes,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (b *Beneficiary) ID() string { return b.id }
func (b *Beneficiary) NGOID() string { return b.ngoID }
func (b *Beneficiary) FirstName() string { return b.firstName }
func (b *Beneficiary) LastName() string { return b.lastName }
func (b *Beneficiary) Age() int { return b.age }
func (b *Beneficiary) Gender() vo.Gender { return b.gender }
func (b *Beneficiary) Phone() string { return b.phone }
func (b *Beneficiary) City() string { return b.city }
func (b *Beneficiary) Pincode() string { return b.pincode }
func (b *Beneficiary) Priority() vo.PriorityTier { return b.priority }
func (b *Beneficiary) IsActive() bool { return b.isActive }
func (b *Beneficiary) LastServedAt() *time.Time { return b.lastServedAt }
func (b *Beneficiary) Notes() string { return b.notes }
func (b *Beneficiary) CreatedAt() time.Time { return b.createdAt }
func (b *Beneficiary) UpdatedAt() time.Time { return b.updatedAt }
func (b *Beneficiary) NeedCategories() []string { return copyStrings(b.needCategories) }
func (b *Beneficiary) HealthConditions() []string { return copyStrings(b.healthConditions) }

// DisplayName is "first last" with surrounding whitespace removed.
func (b *Beneficiary) DisplayName() string {
	return strings.TrimSpace(b.firstName + " " + b.lastName)
}

// SetProfile fills the optional demographic fields.
func (b *Beneficiary) SetProfile(age int, gender vo.Gender, phone, city, pincode string, needCategories []string, notes string) error {
	if age < 0 || age > 150 {
		return fmt.Errorf("age must be between 0 and 150")
	}
	if gender != "" && !gender.IsValid() {
		return fmt.Errorf("invalid gender: %s", gender)
	}
	b.age = age
	b.gender = gender
	b.phone = phone
	b.city = strings.TrimSpace(city)
	b.pincode = pincode
	b.needCategories = copyStrings(needCategories)
	b.notes = notes
	b.updatedAt = time.Now().UTC()
	return nil
}

// RecordDistribution stamps the time the beneficiary last received aid.
func (b *Beneficiary) RecordDistribution(at time.Time) {
	at = at.UTC()
	b.lastServedAt = &at
	b.updatedAt = at
}

func (b *Beneficiary) Deactivate() {
	b.isActive = false
	b.updatedAt = time.Now().UTC()
}

// DistinctHealthConditions counts recorded conditions ignoring case,
// surrounding space and blank entries.
func (b *Beneficiary) DistinctHealthConditions() int {
	seen := make(map[string]struct{}, len(b.healthConditions))
	for _, c := range b.healthConditions {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// ToCandidate projects the beneficiary onto the allocator's input.
func (b *Beneficiary) ToCandidate() allocator.Candidate {
	return allocator.Candidate{
		ID:               b.id,
		Name:             b.DisplayName(),
		NGOID:            b.ngoID,
		Priority:         b.priority,
		LastServedAt:     b.lastServedAt,
		HealthConditions: b.DistinctHealthConditions(),
	}
}
