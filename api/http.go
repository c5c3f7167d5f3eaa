package api

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/livepeer/vod-edge/config"
	"github.com/livepeer/vod-edge/handlers"
	"github.com/livepeer/vod-edge/log"
	"github.com/livepeer/vod-edge/middleware"
)

func ListenAndServe(ctx context.Context, addr string, edgeHandlers *handlers.EdgeHandlersCollection) error {
	router := NewEdgeAPIRouter(edgeHandlers)
	server := http.Server{Addr: addr, Handler: router}
	ctx, cancel := context.WithCancel(ctx)

	log.LogNoRequestID(
		"Starting VOD Edge API!",
		"version", config.Version,
		"host", addr,
	)

	var err error
	go func() {
		err = server.ListenAndServe()
		cancel()
	}()

	<-ctx.Done()
	if err != nil {
		return err
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func NewEdgeAPIRouter(edgeHandlers *handlers.EdgeHandlersCollection) *httprouter.Router {
	router := httprouter.New()
	withLogging := middleware.LogRequest(config.Logger)

	// Simple endpoints for healthchecks
	router.GET("/ok", withLogging(edgeHandlers.Ok()))
	router.GET("/healthcheck", withLogging(edgeHandlers.Healthcheck()))

	playlistHandler := edgeHandlers.Playlist()
	metadataHandler := edgeHandlers.Metadata()
	if edgeHandlers.Metrics != nil {
		playlistHandler = middleware.MonitorRequest(edgeHandlers.Metrics.PlaylistRequestDurationSec, playlistHandler)
		metadataHandler = middleware.MonitorRequest(edgeHandlers.Metrics.MetadataRequestDurationSec, metadataHandler)
	}

	// Origin-request paths the CDN forwards to us
	router.GET("/vod/*playlistPath", withLogging(playlistHandler))
	router.GET("/recording/:channel/metadata", withLogging(metadataHandler))

	return router
}
