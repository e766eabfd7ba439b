package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitterTTL(t *testing.T) {
	base := 10 * time.Minute
	for i := 0; i < 100; i++ {
		got := jitterTTL(base)
		assert.GreaterOrEqual(t, got, 9*time.Minute)
		assert.LessOrEqual(t, got, 11*time.Minute)
	}
}

func TestJitterTTL_ZeroPassesThrough(t *testing.T) {
	assert.Equal(t, time.Duration(0), jitterTTL(0))
}

func TestCache_FullKey(t *testing.T) {
	c := &Cache{prefix: "afya:"}
	assert.Equal(t, "afya:lexicon:symptoms", c.fullKey("lexicon:symptoms"))
}
