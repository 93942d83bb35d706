package plan

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/shared/utils"
)

// RosterFile is the offline roster format. JSON files parse as well since
// JSON is a subset of YAML.
type RosterFile struct {
	Beneficiaries []allocator.Candidate `yaml:"beneficiaries" validate:"required,min=1,dive"`
}

func LoadRoster(r io.Reader) (*RosterFile, error) {
	var roster RosterFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("roster file is empty")
		}
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if err := utils.ValidateStruct(roster); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(roster.Beneficiaries))
	for _, c := range roster.Beneficiaries {
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate beneficiary id %q in roster", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return &roster, nil
}

func LoadRosterFile(path string) (*RosterFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()
	return LoadRoster(f)
}
