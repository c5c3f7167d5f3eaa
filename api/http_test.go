package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/livepeer/vod-edge/config"
	"github.com/livepeer/vod-edge/handlers"
	"github.com/livepeer/vod-edge/playlist"
	"github.com/livepeer/vod-edge/recording"
	"github.com/stretchr/testify/require"
)

func TestRouterServesHealthchecks(t *testing.T) {
	router := NewEdgeAPIRouter(&handlers.EdgeHandlersCollection{
		Defaults:  config.Cli{},
		Freshness: &playlist.Resolver{},
		Recording: &recording.Resolver{},
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/ok", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "OK", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/healthcheck", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status": "healthy"}`, rr.Body.String())
}

func TestRouterUnknownPath(t *testing.T) {
	router := NewEdgeAPIRouter(&handlers.EdgeHandlersCollection{
		Defaults:  config.Cli{},
		Freshness: &playlist.Resolver{},
		Recording: &recording.Resolver{},
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
