package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
)

func TestPresenterRecordsCycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPresenter(reg)

	p.Publish([]model.Article{})
	p.Loading(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(p.loading))

	p.Publish([]model.Article{{ID: "a"}})
	p.ScrollToTop()
	p.Publish([]model.Article{{ID: "b"}, {ID: "a"}})
	p.ScrollToTop()
	p.Loading(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(p.cycles))
	assert.Equal(t, float64(0), testutil.ToFloat64(p.loading))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.revealed))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.displayed))
}

func TestPresenterCountsRevealsOnlyOnScroll(t *testing.T) {
	p := NewPresenter(prometheus.NewRegistry())

	p.Publish([]model.Article{})
	p.Publish([]model.Article{{ID: "a"}})
	p.Publish([]model.Article{{ID: "b"}, {ID: "a"}})

	assert.Equal(t, float64(0), testutil.ToFloat64(p.revealed))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.displayed))

	p.ScrollToTop()

	assert.Equal(t, float64(1), testutil.ToFloat64(p.revealed))
}

func TestPresenterCountsFailures(t *testing.T) {
	p := NewPresenter(prometheus.NewRegistry())

	p.Message(neterr.CategoryInternal, "ignored")
	p.Message(neterr.CategoryInternal, "ignored")
	p.Message(neterr.CategoryNoConnectivity, "ignored")

	assert.Equal(t, float64(2), testutil.ToFloat64(p.failures.WithLabelValues("internal")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.failures.WithLabelValues("no_connectivity")))
}

func TestServerHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPresenter(reg)
	p.Loading(true)

	srv := httptest.NewServer(NewServer("127.0.0.1:0", reg).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "newsticker_cycles_started_total 1")
	assert.Contains(t, string(body), "newsticker_loading 1")
}
