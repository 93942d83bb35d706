package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
	assert.NoError(t, Validate(a))
	assert.Error(t, Validate("not-a-uuid"))
}

func TestNewPlanID(t *testing.T) {
	p := NewPlanID()
	assert.True(t, strings.HasPrefix(p, PrefixPlan))
	assert.NoError(t, Validate(strings.TrimPrefix(p, PrefixPlan)))
}
