package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsStable(t *testing.T) {
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", Hash("hello"))
	assert.Len(t, Hash("오늘 가장 감사했던 일은?"), 64)
}

func TestNonEmptyStringPointer(t *testing.T) {
	assert.Nil(t, NonEmptyStringPointer(""))
	assert.Nil(t, NonEmptyStringPointer("  \n"))
	if p := NonEmptyStringPointer("hi"); assert.NotNil(t, p) {
		assert.Equal(t, "hi", *p)
	}
}
