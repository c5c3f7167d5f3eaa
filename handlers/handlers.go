package handlers

import (
	"net/http"
	"path"

	"github.com/livepeer/vod-edge/channel"
	"github.com/livepeer/vod-edge/clients"
	"github.com/livepeer/vod-edge/config"
	"github.com/livepeer/vod-edge/errors"
	"github.com/livepeer/vod-edge/metrics"
	"github.com/livepeer/vod-edge/playlist"
	"github.com/livepeer/vod-edge/recording"
)

// descriptorName is the object the recorder writes next to a channel's
// recordings when a new session starts.
const descriptorName = "recording-started-latest.json"

type EdgeHandlersCollection struct {
	Defaults  config.Cli
	Store     clients.ObjectFetcher
	Freshness *playlist.Resolver
	Recording *recording.Resolver
	Metrics   *metrics.EdgeMetrics
}

// requestConfig is the per-request configuration the resolvers run against:
// CLI defaults overridden by the CDN's origin custom headers.
type requestConfig struct {
	Bucket string
	Roles  channel.RoleMap
}

func (d *EdgeHandlersCollection) resolveRequestConfig(req *http.Request, w http.ResponseWriter) (requestConfig, bool) {
	bucket := d.Defaults.VodBucket
	if h := req.Header.Get(config.BucketHeader); h != "" {
		bucket = h
	}
	if bucket == "" {
		errors.WriteHTTPBadRequest(w, "no VOD bucket configured for this request", nil)
		return requestConfig{}, false
	}

	roles := d.Defaults.ChannelRoles
	if h := req.Header.Get(config.ChannelRolesHeader); h != "" {
		parsed, err := config.ParseCommaMap(h)
		if err != nil {
			errors.WriteHTTPBadRequest(w, "invalid "+config.ChannelRolesHeader+" header", err)
			return requestConfig{}, false
		}
		roles = parsed
	}

	return requestConfig{Bucket: bucket, Roles: channel.NewRoleMap(roles)}, true
}

func descriptorKey(channelSegment string) string {
	return path.Join(channelSegment, descriptorName)
}
