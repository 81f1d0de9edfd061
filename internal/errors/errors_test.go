package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsUnwrapToSentinel(t *testing.T) {
	err := fmt.Errorf("delete diary: %w", NotFoundf("diary %s not found", "abc"))

	assert.True(t, errors.Is(err, NotFound))
	assert.False(t, errors.Is(err, BadRequest))
	assert.Equal(t, "diary abc not found", Message(err, "fallback"))
}

func TestMessageFallsBackForPlainErrors(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(NotFound, "fallback"))
}
