package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_KeepsExistingMarker(t *testing.T) {
	id, minted := New().Resolve("sid_abc")
	assert.Equal(t, "sid_abc", id)
	assert.False(t, minted)
}

func TestResolve_MintsWhenMissingOrInvalid(t *testing.T) {
	r := New()
	for _, marker := range []string{"", "   ", strings.Repeat("x", 200), "a;b"} {
		id, minted := r.Resolve(marker)
		assert.True(t, minted, marker)
		assert.True(t, strings.HasPrefix(id, "sid_"))
	}

	a, _ := r.Resolve("")
	b, _ := r.Resolve("")
	assert.NotEqual(t, a, b)
}
