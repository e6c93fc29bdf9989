package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("order %d not found", 7)))
	assert.Equal(t, KindInvalidState, KindOf(InvalidState("already decided")))
	assert.Equal(t, KindInfrastructure, KindOf(Infrastructure(errors.New("db down"))))

	// Error yang tidak dikenal diperlakukan sebagai infrastructure
	assert.Equal(t, KindInfrastructure, KindOf(errors.New("plain")))
}

func TestKindOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("review failed: %w", InvalidState("already decided"))
	assert.Equal(t, KindInvalidState, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindInvalidState))
}

func TestDetailsPreservedForBatchValidation(t *testing.T) {
	err := Validation("invalid order lines", "items[0]: quantity must be > 0", "items[2]: unknown product")
	assert.Len(t, DetailsOf(err), 2)
	assert.Contains(t, err.Error(), "items[0]")
	assert.Contains(t, err.Error(), "items[2]")
}

func TestInfrastructureHidesCauseButUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Infrastructure(cause)

	assert.NotContains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}
