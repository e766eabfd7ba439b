package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTriage(t *testing.T) {
	m := NewMetrics()

	m.ObserveTriage("matched", "", 20*time.Millisecond)
	m.ObserveTriage("emergency", "CRITICAL", 5*time.Millisecond)
	m.ObserveTriage("emergency", "CRITICAL", 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesTotal.WithLabelValues("matched")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MessagesTotal.WithLabelValues("emergency")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EmergenciesTotal.WithLabelValues("CRITICAL")))
}

func TestObserveTriage_NoSeverityForNormalOutcomes(t *testing.T) {
	m := NewMetrics()
	m.ObserveTriage("no_symptoms", "", time.Millisecond)

	require.Zero(t, testutil.CollectAndCount(m.EmergenciesTotal))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	assert.NotNil(t, m.Handler())
}
