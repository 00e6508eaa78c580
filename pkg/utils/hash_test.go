package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashContactNormalizes(t *testing.T) {
	assert.Equal(t, HashContact("(555) 123-4567"), HashContact("5551234567"))
	assert.Equal(t, HashContact(" Pat@Example.com "), HashContact("pat@example.com"))
	assert.NotEqual(t, HashContact("a@b.com"), HashContact("c@d.com"))
	assert.Len(t, HashContact("a@b.com"), 64)
}
