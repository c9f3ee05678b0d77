//go:build unit

package errs_test

import (
	"testing"

	"member-portal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesMarkedSentinels(t *testing.T) {
	err := errs.Mark(errs.New("code expired on 2026-01-31"), errs.ErrDiscountRejected)

	assert.True(t, errs.Is(err, errs.ErrDiscountRejected))
	assert.Equal(t, "code expired on 2026-01-31", err.Error())
}

func TestIsMatchesWrappedSentinels(t *testing.T) {
	err := errs.Wrap(errs.ErrProgramNotFound, "loading program")

	assert.True(t, errs.Is(err, errs.ErrProgramNotFound))
}

func TestIsSurvivesFurtherWrapping(t *testing.T) {
	err := errs.Wrap(errs.Mark(errs.New("boom"), errs.ErrUpstreamFunctionFailed), "finalizing purchase")

	assert.True(t, errs.Is(err, errs.ErrUpstreamFunctionFailed))
	assert.False(t, errs.Is(err, errs.ErrDiscountRejected))
}

func TestMarkWithNilCauseReturnsSentinel(t *testing.T) {
	err := errs.Mark(nil, errs.ErrBookingRejected)

	assert.True(t, errs.Is(err, errs.ErrBookingRejected))
}
