package allocator

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"
)

// Line is one beneficiary's share of a plan.
type Line struct {
	BeneficiaryID   string  `json:"beneficiary_id"`
	BeneficiaryName string  `json:"beneficiary_name"`
	NGOID           string  `json:"ngo_id"`
	ItemType        string  `json:"item_type"`
	Quantity        int     `json:"quantity"`
	PriorityScore   float64 `json:"priority_score"`
	FairnessScore   float64 `json:"fairness_score"`
}

// FormattedPriorityScore renders the score with two decimals for audit output.
func (l Line) FormattedPriorityScore() string {
	return fmt.Sprintf("%.2f", l.PriorityScore)
}

// FormattedFairnessScore renders the share with four decimals, e.g. "1.0000".
func (l Line) FormattedFairnessScore() string {
	return fmt.Sprintf("%.4f", l.FairnessScore)
}

// Plan holds one line per roster entry, in roster order.
type Plan struct {
	ItemType      string    `json:"item_type"`
	TotalQuantity int       `json:"total_quantity"`
	ReferenceTime time.Time `json:"reference_time"`
	Lines         []Line    `json:"lines"`
}

// Requested is the sum of all line quantities.
func (p Plan) Requested() int {
	return Requested(p.Lines)
}

func Requested(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithClock replaces the reference-time source. Tests pin it for determinism.
func WithClock(now func() time.Time) Option {
	return func(a *Allocator) {
		a.now = now
	}
}

// Allocator captures a reference time once per Plan call and delegates to PlanAt.
type Allocator struct {
	now func() time.Time
}

func New(opts ...Option) *Allocator {
	a := &Allocator{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Plan allocates total units of itemType across roster using the allocator's clock.
func (a *Allocator) Plan(roster []Candidate, itemType string, total int) Plan {
	return PlanAt(a.now(), roster, itemType, total)
}

type scored struct {
	index int
	score float64
}

// PlanAt allocates total units of itemType across roster, scoring recency
// against ref. A negative total is treated as zero.
//
// Each candidate first receives floor(total * score / sum of scores). The
// units lost to flooring are then handed out one at a time in descending
// score order, ties keeping roster order, wrapping around if needed.
func PlanAt(ref time.Time, roster []Candidate, itemType string, total int) Plan {
	total = max(total, 0)
	plan := Plan{
		ItemType:      itemType,
		TotalQuantity: total,
		ReferenceTime: ref,
		Lines:         make([]Line, 0, len(roster)),
	}
	if len(roster) == 0 {
		return plan
	}

	ranked := make([]scored, len(roster))
	totalScore := 0.0
	for i, c := range roster {
		s := Score(c, ref)
		ranked[i] = scored{index: i, score: s}
		totalScore += s
	}

	allocated := 0
	for i, c := range roster {
		s := ranked[i].score
		qty := int(math.Floor(float64(total) * s / totalScore))
		allocated += qty
		plan.Lines = append(plan.Lines, Line{
			BeneficiaryID:   c.ID,
			BeneficiaryName: c.Name,
			NGOID:           c.NGOID,
			ItemType:        itemType,
			Quantity:        qty,
			PriorityScore:   s,
			FairnessScore:   s / totalScore,
		})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score) // highest score first
	})

	settle(plan.Lines, ranked, total-allocated)
	return plan
}

// settle adds (or, if float rounding overshot, removes) units until the plan
// sums to the requested total.
func settle(lines []Line, ranked []scored, remainder int) {
	for i := 0; remainder > 0; i = (i + 1) % len(ranked) {
		lines[ranked[i].index].Quantity++
		remainder--
	}
	for i := len(ranked) - 1; remainder < 0; i-- {
		if i < 0 {
			i = len(ranked) - 1
		}
		if lines[ranked[i].index].Quantity > 0 {
			lines[ranked[i].index].Quantity--
			remainder++
		}
	}
}

// Validate fails with *OverAllocationError when lines request more than available.
func Validate(lines []Line, available int) error {
	requested := Requested(lines)
	if requested > available {
		return &OverAllocationError{Available: available, Requested: requested}
	}
	return nil
}
