package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/livepeer/vod-edge/channel"
	"github.com/livepeer/vod-edge/config"
	xerrors "github.com/livepeer/vod-edge/errors"
	"github.com/livepeer/vod-edge/log"
	"github.com/livepeer/vod-edge/requests"
)

const playlistContentType = "application/vnd.apple.mpegurl"

// Playlist serves GET /vod/*playlistPath: fetch the rendition playlist from
// the bucket, decide whether it is final or still growing, and emit the body
// with the matching cache lifetime.
func (d *EdgeHandlersCollection) Playlist() httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		requestID := requests.GetRequestId(req)

		cfg, ok := d.resolveRequestConfig(req, w)
		if !ok {
			return
		}

		key := strings.TrimPrefix(params.ByName("playlistPath"), "/")
		if key == "" {
			xerrors.WriteHTTPBadRequest(w, "empty playlist path", nil)
			return
		}

		// The channel this playlist belongs to is identified by its id
		// appearing as a path segment
		role := channel.Resolve(key, cfg.Roles)
		channelArn := cfg.Roles[role]

		obj, err := d.Store.Fetch(req.Context(), cfg.Bucket, key)
		if err != nil {
			if errors.Is(err, xerrors.ObjectNotFoundError) {
				w.Header().Set("Cache-Control", "max-age=0")
				xerrors.WriteHTTPNotFound(w, "playlist not found", nil)
				return
			}
			d.playlistError(w, requestID, key, err)
			return
		}
		if obj.LastModified.IsZero() {
			// no write timestamp from the store, assume it was written just now
			obj.LastModified = config.Clock.Now()
		}

		directive, err := d.Freshness.Resolve(req.Context(), requestID, obj, channelArn, config.Clock.Now())
		if err != nil {
			d.playlistError(w, requestID, key, err)
			return
		}

		if d.Metrics != nil {
			d.Metrics.PlaylistMaxAge.Observe(float64(directive.MaxAgeSeconds))
		}

		w.Header().Set("Content-Type", playlistContentType)
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", directive.MaxAgeSeconds))
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, directive.Body); err != nil {
			log.LogError(requestID, "failed to write playlist response", err)
		}
	}
}

func (d *EdgeHandlersCollection) playlistError(w http.ResponseWriter, requestID, key string, err error) {
	log.LogError(requestID, "error serving playlist", err, "key", key)
	w.Header().Set("Cache-Control", "max-age=0")
	xerrors.WriteHTTPInternalServerError(w, "internal server error", nil)
}
