package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderExposesCounters(t *testing.T) {
	r := New()
	r.OrdersCreated.Inc()
	r.PointsAwarded.Add(30)
	r.RewardsRedeemed.WithLabelValues("points").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.OrdersCreated))
	assert.Equal(t, 30.0, testutil.ToFloat64(r.PointsAwarded))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "codecup_orders_created_total 1")
	assert.Contains(t, string(body), `codecup_rewards_redeemed_total{kind="points"} 1`)
}
