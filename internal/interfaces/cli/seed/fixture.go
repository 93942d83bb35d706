package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	bvo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/domain/donation"
	"github.com/aidlink/aidlink/internal/domain/ngo"
	"github.com/aidlink/aidlink/internal/shared/utils"
)

// File is the seed document loaded by `aidlink seed`.
type File struct {
	NGOs          []NGOEntry         `yaml:"ngos" validate:"dive"`
	Beneficiaries []BeneficiaryEntry `yaml:"beneficiaries" validate:"dive"`
	Donations     []DonationEntry    `yaml:"donations" validate:"dive"`
}

type NGOEntry struct {
	ID                 string `yaml:"id" validate:"required"`
	Name               string `yaml:"name" validate:"required"`
	RegistrationNumber string `yaml:"registration_number" validate:"required"`
	City               string `yaml:"city"`
	State              string `yaml:"state"`
	Capacity           int    `yaml:"capacity" validate:"gte=0"`
	Verified           bool   `yaml:"verified"`
}

type BeneficiaryEntry struct {
	ID               string     `yaml:"id" validate:"required"`
	NGOID            string     `yaml:"ngo_id" validate:"required"`
	FirstName        string     `yaml:"first_name" validate:"required"`
	LastName         string     `yaml:"last_name"`
	Age              int        `yaml:"age" validate:"gte=0,lte=150"`
	Gender           string     `yaml:"gender"`
	Phone            string     `yaml:"phone"`
	City             string     `yaml:"city"`
	Pincode          string     `yaml:"pincode"`
	Priority         string     `yaml:"priority" validate:"priority_tier"`
	NeedCategories   []string   `yaml:"need_categories"`
	HealthConditions []string   `yaml:"health_conditions"`
	LastServedAt     *time.Time `yaml:"last_served_at"`
	Notes            string     `yaml:"notes"`
}

type DonationEntry struct {
	ID        string     `yaml:"id" validate:"required"`
	NGOID     string     `yaml:"ngo_id" validate:"required"`
	DonorName string     `yaml:"donor_name" validate:"required"`
	ItemType  string     `yaml:"item_type" validate:"required"`
	ItemName  string     `yaml:"item_name"`
	Quantity  int        `yaml:"quantity" validate:"gte=1"`
	Unit      string     `yaml:"unit"`
	ExpiresAt *time.Time `yaml:"expires_at"`
	// Received donations are immediately available for distribution.
	Received bool `yaml:"received"`
}

func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("seed file is empty")
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := utils.ValidateStruct(f); err != nil {
		return nil, err
	}
	return &f, nil
}

func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

type transactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result counts the rows written by Apply.
type Result struct {
	NGOs          int
	Beneficiaries int
	Donations     int
}

// Seeder writes a seed file through the domain repositories.
type Seeder struct {
	txManager     transactionManager
	ngos          ngo.Repository
	beneficiaries beneficiary.Repository
	donations     donation.Repository
	now           func() time.Time
}

func NewSeeder(
	txManager transactionManager,
	ngos ngo.Repository,
	beneficiaries beneficiary.Repository,
	donations donation.Repository,
) *Seeder {
	return &Seeder{
		txManager:     txManager,
		ngos:          ngos,
		beneficiaries: beneficiaries,
		donations:     donations,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Apply inserts everything in f in one transaction; any invalid entry rolls
// the whole file back.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		res = Result{}
		for _, e := range f.NGOs {
			n, err := ngo.NewNGO(e.ID, e.Name, e.RegistrationNumber, e.City, e.State, e.Capacity)
			if err != nil {
				return fmt.Errorf("ngo %s: %w", e.ID, err)
			}
			if e.Verified {
				n.Verify()
			}
			if err := s.ngos.Create(ctx, n); err != nil {
				return fmt.Errorf("ngo %s: %w", e.ID, err)
			}
			res.NGOs++
		}

		for _, e := range f.Beneficiaries {
			b, err := toBeneficiary(e)
			if err != nil {
				return fmt.Errorf("beneficiary %s: %w", e.ID, err)
			}
			if err := s.beneficiaries.Create(ctx, b); err != nil {
				return fmt.Errorf("beneficiary %s: %w", e.ID, err)
			}
			res.Beneficiaries++
		}

		for _, e := range f.Donations {
			d, err := donation.NewDonation(e.ID, e.NGOID, e.DonorName, e.ItemType, e.ItemName, e.Quantity, e.Unit, e.ExpiresAt)
			if err != nil {
				return fmt.Errorf("donation %s: %w", e.ID, err)
			}
			if e.Received {
				if err := d.Receive(s.now()); err != nil {
					return fmt.Errorf("donation %s: %w", e.ID, err)
				}
			}
			if err := s.donations.Create(ctx, d); err != nil {
				return fmt.Errorf("donation %s: %w", e.ID, err)
			}
			res.Donations++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func toBeneficiary(e BeneficiaryEntry) (*beneficiary.Beneficiary, error) {
	b, err := beneficiary.NewBeneficiary(e.ID, e.NGOID, e.FirstName, e.LastName, bvo.PriorityTier(e.Priority), e.HealthConditions)
	if err != nil {
		return nil, err
	}
	gender, err := bvo.NewGender(e.Gender)
	if err != nil {
		return nil, err
	}
	if err := b.SetProfile(e.Age, gender, e.Phone, e.City, e.Pincode, e.NeedCategories, e.Notes); err != nil {
		return nil, err
	}
	if e.LastServedAt != nil {
		b.RecordDistribution(*e.LastServedAt)
	}
	return b, nil
}
