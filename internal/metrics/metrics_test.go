package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	before := testutil.ToFloat64(calculations.WithLabelValues("tank", "error"))
	Observe("tank", errors.New("boom"))
	Observe("tank", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(calculations.WithLabelValues("tank", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(calculations.WithLabelValues("tank", "ok")), 1.0)
}
