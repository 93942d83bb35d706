package valueobjects

import "fmt"

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

var validGenders = map[Gender]bool{
	GenderMale:           true,
	GenderFemale:         true,
	GenderOther:          true,
	GenderPreferNotToSay: true,
}

func (g Gender) String() string {
	return string(g)
}

func (g Gender) IsValid() bool {
	return validGenders[g]
}

// NewGender accepts an empty string as "not recorded".
func NewGender(s string) (Gender, error) {
	if s == "" {
		return "", nil
	}
	g := Gender(s)
	if !g.IsValid() {
		return "", fmt.Errorf("invalid gender: %s", s)
	}
	return g, nil
}
