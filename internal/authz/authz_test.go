package authz

import (
	"errors"
	"testing"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	entry := model.DiaryEntry{Uid: "alice"}

	assert.True(t, Allowed(entry, "alice"))
	assert.False(t, Allowed(entry, "bob"))
	assert.False(t, Allowed(entry, ""))
	assert.False(t, Allowed(nil, "alice"))
}

func TestCheckConflatesForeignWithMissing(t *testing.T) {
	err := Check(model.DiaryEntry{Uid: "alice"}, "bob", "diary entry")
	assert.True(t, errors.Is(err, ierr.NotFound))
	assert.Equal(t, "diary entry not found", err.Error())

	assert.NoError(t, Check(model.DiaryEntry{Uid: "alice"}, "alice", "diary entry"))
}
