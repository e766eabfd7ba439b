package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	counts := map[string]int{
		"Malaria":     12,
		"Typhoid":     7,
		"Common Cold": 7,
		"Cholera":     1,
	}

	got := topN(counts, 3)
	assert.Len(t, got, 3)
	assert.Equal(t, 12, got["Malaria"])
	assert.Equal(t, 7, got["Typhoid"])
	assert.Equal(t, 7, got["Common Cold"])
	assert.NotContains(t, got, "Cholera")
}

func TestTopN_FewerThanLimit(t *testing.T) {
	got := topN(map[string]int{"Malaria": 2}, 10)
	assert.Equal(t, map[string]int{"Malaria": 2}, got)
}

func TestTopN_Empty(t *testing.T) {
	assert.Empty(t, topN(map[string]int{}, 10))
}
