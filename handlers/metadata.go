package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	xerrors "github.com/livepeer/vod-edge/errors"
	"github.com/livepeer/vod-edge/log"
	"github.com/livepeer/vod-edge/requests"
)

// Metadata serves GET /recording/:channel/metadata: the latest recording
// descriptor for the channel merged with its current live state.
//
// Every response, including failures, carries max-age=1 so the CDN bounds the
// staleness of the live flag without hammering us, plus no-cache transport
// headers so nothing below the CDN holds the body.
func (d *EdgeHandlersCollection) Metadata() httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		requestID := requests.GetRequestId(req)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "max-age=1")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		cfg, ok := d.resolveRequestConfig(req, w)
		if !ok {
			return
		}

		channelSegment := params.ByName("channel")
		if channelSegment == "" {
			xerrors.WriteHTTPBadRequest(w, "empty channel", nil)
			return
		}

		metadata, err := d.Recording.Resolve(req.Context(), requestID, cfg.Bucket, descriptorKey(channelSegment), cfg.Roles)
		if err != nil {
			log.LogError(requestID, "error resolving recording metadata", err, "channel", channelSegment)
			xerrors.WriteHTTPInternalServerError(w, "internal server error", nil)
			return
		}

		if metadata == nil && d.Metrics != nil {
			d.Metrics.DescriptorMissing.Inc()
		}

		// a nil Metadata serializes as JSON null: the descriptor isn't
		// written yet and the client should simply ask again
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(metadata); err != nil {
			log.LogError(requestID, "failed to write metadata response", err)
		}
	}
}
