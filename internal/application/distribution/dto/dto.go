package dto

import (
	"math"
	"time"

	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
)

// PlanLineDTO is one line of a plan as exchanged with clients. Scores are
// informational on input; only beneficiary, NGO and quantity are committed
// from an edited plan.
type PlanLineDTO struct {
	BeneficiaryID   string  `json:"beneficiary_id" binding:"required"`
	BeneficiaryName string  `json:"beneficiary_name"`
	NGOID           string  `json:"ngo_id" binding:"required"`
	ItemType        string  `json:"item_type"`
	Quantity        int     `json:"quantity" binding:"gte=0"`
	PriorityScore   float64 `json:"priority_score"`
	FairnessScore   float64 `json:"fairness_score"`
}

type PlanSummaryDTO struct {
	TotalBeneficiaries    int     `json:"total_beneficiaries"`
	TotalQuantity         int     `json:"total_quantity"`
	AveragePerBeneficiary float64 `json:"average_per_beneficiary"`
	AvailableQuantity     *int    `json:"available_quantity,omitempty"`
}

type PlanDTO struct {
	PlanID        string         `json:"plan_id,omitempty"`
	ItemType      string         `json:"item_type"`
	ItemName      string         `json:"item_name,omitempty"`
	Unit          string         `json:"unit,omitempty"`
	DonationID    string         `json:"donation_id,omitempty"`
	ReferenceTime time.Time      `json:"reference_time"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
	Lines         []PlanLineDTO  `json:"lines"`
	Summary       PlanSummaryDTO `json:"summary"`
}

type ValidationResultDTO struct {
	Valid     bool `json:"valid"`
	Available int  `json:"available"`
	Requested int  `json:"requested"`
}

type RecordDTO struct {
	ID            string    `json:"id"`
	BatchID       string    `json:"batch_id"`
	BeneficiaryID string    `json:"beneficiary_id"`
	NGOID         string    `json:"ngo_id"`
	DonationID    *string   `json:"donation_id,omitempty"`
	ItemType      string    `json:"item_type"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	Unit          string    `json:"unit"`
	DistributedAt time.Time `json:"distributed_at"`
	DistributedBy string    `json:"distributed_by"`
	PriorityScore string    `json:"priority_score"`
	FairnessScore string    `json:"fairness_score"`
	Notes         string    `json:"notes,omitempty"`
}

type ExecutionResultDTO struct {
	BatchID          string      `json:"batch_id"`
	DistributedAt    time.Time   `json:"distributed_at"`
	RecordsCreated   int         `json:"records_created"`
	TotalDistributed int         `json:"total_distributed"`
	Remaining        *int        `json:"remaining,omitempty"`
	Records          []RecordDTO `json:"records"`
}

func ToPlanLineDTO(l allocator.Line) PlanLineDTO {
	return PlanLineDTO{
		BeneficiaryID:   l.BeneficiaryID,
		BeneficiaryName: l.BeneficiaryName,
		NGOID:           l.NGOID,
		ItemType:        l.ItemType,
		Quantity:        l.Quantity,
		PriorityScore:   l.PriorityScore,
		FairnessScore:   l.FairnessScore,
	}
}

// ToLines converts client lines back to allocator lines, filling in the item
// type when a line omits it.
func ToLines(lines []PlanLineDTO, itemType string) []allocator.Line {
	out := make([]allocator.Line, len(lines))
	for i, l := range lines {
		it := l.ItemType
		if it == "" {
			it = itemType
		}
		out[i] = allocator.Line{
			BeneficiaryID:   l.BeneficiaryID,
			BeneficiaryName: l.BeneficiaryName,
			NGOID:           l.NGOID,
			ItemType:        it,
			Quantity:        l.Quantity,
			PriorityScore:   l.PriorityScore,
			FairnessScore:   l.FairnessScore,
		}
	}
	return out
}

// Summarize reports beneficiary count, units and the mean rounded to two decimals.
func Summarize(lines []allocator.Line) PlanSummaryDTO {
	total := allocator.Requested(lines)
	s := PlanSummaryDTO{
		TotalBeneficiaries: len(lines),
		TotalQuantity:      total,
	}
	if len(lines) > 0 {
		s.AveragePerBeneficiary = math.Round(float64(total)/float64(len(lines))*100) / 100
	}
	return s
}

func ToPlanDTO(p allocator.Plan) *PlanDTO {
	lines := make([]PlanLineDTO, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = ToPlanLineDTO(l)
	}
	return &PlanDTO{
		ItemType:      p.ItemType,
		ReferenceTime: p.ReferenceTime,
		Lines:         lines,
		Summary:       Summarize(p.Lines),
	}
}

func ToRecordDTO(r *distribution.Record) RecordDTO {
	return RecordDTO{
		ID:            r.ID(),
		BatchID:       r.BatchID(),
		BeneficiaryID: r.BeneficiaryID(),
		NGOID:         r.NGOID(),
		DonationID:    r.DonationID(),
		ItemType:      r.ItemType(),
		ItemName:      r.ItemName(),
		Quantity:      r.Quantity(),
		Unit:          r.Unit(),
		DistributedAt: r.DistributedAt(),
		DistributedBy: r.DistributedBy(),
		PriorityScore: allocator.Line{PriorityScore: r.PriorityScore()}.FormattedPriorityScore(),
		FairnessScore: allocator.Line{FairnessScore: r.FairnessScore()}.FormattedFairnessScore(),
		Notes:         r.Notes(),
	}
}

func ToRecordDTOs(records []*distribution.Record) []RecordDTO {
	out := make([]RecordDTO, len(records))
	for i, r := range records {
		out[i] = ToRecordDTO(r)
	}
	return out
}
