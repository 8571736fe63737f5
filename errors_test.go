package rrule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleErrorIs(t *testing.T) {
	err := newError(InvalidRule, "bad FREQ %q", "NEVER")
	assert.True(t, errors.Is(err, ErrInvalidRule))
	assert.False(t, errors.Is(err, ErrUnknownPart))
}

func TestRuleErrorMessage(t *testing.T) {
	err := newError(UnknownPart, "unrecognised rule part %q", "FOO")
	assert.Equal(t, `UnknownPart: unrecognised rule part "FOO"`, err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidRule", InvalidRule.String())
	assert.Equal(t, "HorizonExceeded", HorizonExceeded.String())
}
