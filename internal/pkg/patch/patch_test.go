//go:build unit

package patch_test

import (
	"testing"

	"sublet-booking/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	zero, five := 0, 5
	assert.Equal(t, 7, patch.Coalesce(nil, 7))
	assert.Equal(t, 5, patch.Coalesce(&five, 7))
	assert.Equal(t, 0, patch.Coalesce(&zero, 7), "an explicit zero wins over the fallback")
}
