package distribution

import (
	"fmt"
	"strings"
	"time"
)

// Record is one committed hand-out of an item to a beneficiary.
type Record struct {
	id            string
	batchID       string
	beneficiaryID string
	ngoID         string
	donationID    *string
	itemType      string
	itemName      string
	quantity      int
	unit          string
	distributedAt time.Time
	distributedBy string
	priorityScore float64
	fairnessScore float64
	notes         string
	createdAt     time.Time
}

// RecordParams groups the fields of a new record.
type RecordParams struct {
	ID            string
	BatchID       string
	BeneficiaryID string
	NGOID         string
	DonationID    *string
	ItemType      string
	ItemName      string
	Quantity      int
	Unit          string
	DistributedAt time.Time
	DistributedBy string
	PriorityScore float64
	FairnessScore float64
	Notes         string
}

func NewRecord(p RecordParams) (*Record, error) {
	switch {
	case p.ID == "":
		return nil, fmt.Errorf("record ID is required")
	case p.BeneficiaryID == "":
		return nil, fmt.Errorf("beneficiary ID is required")
	case p.NGOID == "":
		return nil, fmt.Errorf("NGO ID is required")
	case strings.TrimSpace(p.ItemType) == "":
		return nil, fmt.Errorf("item type is required")
	case p.Quantity < 1:
		return nil, fmt.Errorf("quantity must be at least 1")
	case p.DistributedBy == "":
		return nil, fmt.Errorf("distributed by is required")
	case p.DistributedAt.IsZero():
		return nil, fmt.Errorf("distributed at is required")
	case p.FairnessScore < 0 || p.FairnessScore > 1:
		return nil, fmt.Errorf("fairness score must be within [0, 1]")
	}

	return &Record{
		id:            p.ID,
		batchID:       p.BatchID,
		beneficiaryID: p.BeneficiaryID,
		ngoID:         p.NGOID,
		donationID:    p.DonationID,
		itemType:      strings.TrimSpace(p.ItemType),
		itemName:      strings.TrimSpace(p.ItemName),
		quantity:      p.Quantity,
		unit:          p.Unit,
		distributedAt: p.DistributedAt.UTC(),
		distributedBy: p.DistributedBy,
		priorityScore: p.PriorityScore,
		fairnessScore: p.FairnessScore,
		notes:         p.Notes,
		createdAt:     time.Now().UTC(),
	}, nil
}

// ReconstructRecord rebuilds a stored record without re-validating it.
func ReconstructRecord(p RecordParams, createdAt time.Time) *Record {
	return &Record{
		id:            p.ID,
		batchID:       p.BatchID,
		beneficiaryID: p.BeneficiaryID,
		ngoID:         p.NGOID,
		donationID:    p.DonationID,
		itemType:      p.ItemType,
		itemName:      p.ItemName,
		quantity:      p.Quantity,
		unit:          p.Unit,
		distributedAt: p.DistributedAt,
		distributedBy: p.DistributedBy,
		priorityScore: p.PriorityScore,
		fairnessScore: p.FairnessScore,
		notes:         p.Notes,
		createdAt:     createdAt,
	}
}

func (r *Record) ID() string { return r.id }
func (r *Record) BatchID() string { return r.batchID }
func (r *Record) BeneficiaryID() string { return r.beneficiaryID }
func (r *Record) NGOID() string { return r.ngoID }
func (r *Record) DonationID() *string { return r.donationID }
func (r *Record) ItemType() string { return r.itemType }
func (r *Record) ItemName() string { return r.itemName }
func (r *Record) Quantity() int { return r.quantity }
func (r *Record) Unit() string { return r.unit }
func (r *Record) DistributedAt() time.Time { return r.distributedAt }
func (r *Record) DistributedBy() string { return r.distributedBy }
func (r *Record) PriorityScore() float64 { return r.priorityScore }
func (r *Record) FairnessScore() float64 { return r.fairnessScore }
func (r *Record) Notes() string { return r.notes }
func (r *Record) CreatedAt() time.Time { return r.createdAt }
