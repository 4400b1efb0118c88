package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/connectclub/clubterm/pkg/config"
	"github.com/matryer/is"
)

func TestNewStatsServerWithoutConfig(t *testing.T) {
	is := is.New(t)
	_, err := NewStatsServer(context.TODO())
	is.True(errors.Is(err, config.ErrNilConfig))
}

func TestMetricsEndpoint(t *testing.T) {
	is := is.New(t)
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	s, err := NewStatsServer(ctx)
	is.NoErr(err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	is.Equal(rec.Code, http.StatusOK)
}
