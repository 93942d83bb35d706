package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
)

var (
	ErrDonationNotFound = errors.New("donation not found")
	// ErrNotInStock is returned when a donation cannot supply a distribution
	// because it has not been received, is used up, or has expired.
	ErrNotInStock = errors.New("donation is not in stock")
	// ErrStatusChanged is returned by a guarded write when the stored status
	// no longer matches the one the change was computed from.
	ErrStatusChanged = errors.New("donation status changed concurrently")
)

// Donation is a batch of one item type received by an NGO.
type Donation struct {
	id         string
	ngoID      string
	donorName  string
	itemType   string
	itemName   string
	quantity   int
	unit       string
	expiresAt  *time.Time
	status     vo.DonationStatus
	receivedAt *time.Time
	notes      string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewDonation(id, ngoID, donorName, itemType, itemName string, quantity int, unit string, expiresAt *time.Time) (*Donation, error) {
	if id == "" {
		return nil, fmt.Errorf("donation ID is required")
	}
	if ngoID == "" {
		return nil, fmt.Errorf("NGO ID is required")
	}
	if strings.TrimSpace(donorName) == "" {
		return nil, fmt.Errorf("donor name is required")
	}
	if strings.TrimSpace(itemType) == "" {
		return nil, fmt.Errorf("item type is required")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	now := time.Now().UTC()
	return &Donation{
		id:        id,
		ngoID:     ngoID,
		donorName: strings.TrimSpace(donorName),
		itemType:  strings.TrimSpace(itemType),
		itemName:  strings.TrimSpace(itemName),
		quantity:  quantity,
		unit:      unit,
		expiresAt: expiresAt,
		status:    vo.StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructDonation(
	id, ngoID, donorName, itemType, itemName string,
	quantity int,
	unit string,
	expiresAt *time.Time,
	status vo.DonationStatus,
	receivedAt *time.Time,
	notes string,
	createdAt, updatedAt time.Time,
) (*Donation, error) {
	if id == "" {
		return nil, fmt.Errorf("donation ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid donation status: %s", status)
	}
	return &Donation{
		id:         id,
		ngoID:      ngoID,
		donorName:  donorName,
		itemType:   itemType,
		itemName:   itemName,
		quantity:   quantity,
		unit:       unit,
		expiresAt:  expiresAt,
		status:     status,
		receivedAt: receivedAt,
		notes:      notes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (d *Donation) ID() string { return d.id }
func (d *Donation) NGOID() string { return d.ngoID }
func (d *Donation) DonorName() string { return d.donorName }
func (d *Donation) ItemType() string { return d.itemType }
func (d *Donation) ItemName() string { return d.itemName }
func (d *Donation) Quantity() int { return d.quantity }
func (d *Donation) Unit() string { return d.unit }
func (d *Donation) ExpiresAt() *time.Time { return d.expiresAt }
func (d *Donation) Status() vo.DonationStatus { return d.status }
func (d *Donation) ReceivedAt() *time.Time { return d.receivedAt }
func (d *Donation) Notes() string { return d.notes }
func (d *Donation) CreatedAt() time.Time { return d.createdAt }
func (d *Donation) UpdatedAt() time.Time { return d.updatedAt }

func (d *Donation) transition(next vo.DonationStatus, at time.Time) error {
	if !d.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot change donation status from %s to %s", d.status, next)
	}
	d.status = next
	d.updatedAt = at.UTC()
	return nil
}

func (d *Donation) Receive(at time.Time) error {
	if err := d.transition(vo.StatusReceived, at); err != nil {
		return err
	}
	at = at.UTC()
	d.receivedAt = &at
	return nil
}

func (d *Donation) MarkDistributed(at time.Time) error {
	return d.transition(vo.StatusDistributed, at)
}

func (d *Donation) Expire(at time.Time) error {
	return d.transition(vo.StatusExpired, at)
}

// IsExpiredAt reports whether the expiry date has passed at now.
func (d *Donation) IsExpiredAt(now time.Time) bool {
	return d.expiresAt != nil && !now.Before(*d.expiresAt)
}

// Available returns how many units can still be handed out given the units
// already recorded against this donation. It fails with ErrNotInStock when
// the donation cannot supply anything at now.
func (d *Donation) Available(alreadyDistributed int, now time.Time) (int, error) {
	if d.status != vo.StatusReceived {
		return 0, fmt.Errorf("%w: status is %s", ErrNotInStock, d.status)
	}
	if d.IsExpiredAt(now) {
		return 0, fmt.Errorf("%w: expired at %s", ErrNotInStock, d.expiresAt.UTC().Format(time.RFC3339))
	}
	return max(d.quantity-alreadyDistributed, 0), nil
}
