// Package playlist decides how a CDN may cache a rendition playlist that is
// still being rewritten while its recording is in progress.
package playlist

import (
	"context"
	"strings"
	"time"

	"github.com/livepeer/vod-edge/clients"
	"github.com/livepeer/vod-edge/log"
)

const (
	// UpdateDelay is the cadence on which the recorder rewrites an active
	// rendition playlist.
	UpdateDelay = 30 * time.Second
	// WriteBuffer absorbs recorder jitter on top of UpdateDelay.
	WriteBuffer = 2 * time.Second
	// TotalDelay is the window after the last write inside which the playlist
	// is assumed to still be receiving rewrites.
	TotalDelay = UpdateDelay + WriteBuffer

	// FinalMaxAge is the max-age for finished recordings, the maximum the
	// surrounding cache policy permits.
	FinalMaxAge = 31536000

	EndListTag = "#EXT-X-ENDLIST"
)

// CacheDirective is the playlist body to serve and how long the CDN may cache it.
type CacheDirective struct {
	Body          string
	MaxAgeSeconds int
}

// Resolver decides whether a fetched rendition playlist is final or still
// growing. Liveness is only queried once the playlist has missed its expected
// rewrite window.
type Resolver struct {
	Liveness clients.LivenessClient
}

// Resolve classifies the playlist by the age of its last write.
//
// Inside the rewrite window the end-of-list marker is stripped and the
// response is cacheable until the next expected rewrite. Past the window the
// channel's live state disambiguates "rewrite is late" from "recording is
// finished": a live channel forces revalidation on every request, an offline
// one makes the playlist immutable.
func (r *Resolver) Resolve(ctx context.Context, requestID string, obj clients.Object, channelArn string, now time.Time) (CacheDirective, error) {
	age := now.Sub(obj.LastModified)
	if age < 0 {
		// clock skew between us and the object store
		age = 0
	}

	if age < TotalDelay {
		maxAge := int((UpdateDelay - age) / time.Second)
		if maxAge < 0 {
			maxAge = 0
		}
		return CacheDirective{Body: StripEndList(string(obj.Body)), MaxAgeSeconds: maxAge}, nil
	}

	state, err := r.Liveness.Status(ctx, channelArn)
	if err != nil {
		return CacheDirective{}, err
	}

	if state.IsLive {
		log.Log(requestID, "playlist write overdue but channel still live, forcing revalidation", "age", age)
		return CacheDirective{Body: StripEndList(string(obj.Body)), MaxAgeSeconds: 0}, nil
	}

	return CacheDirective{Body: string(obj.Body), MaxAgeSeconds: FinalMaxAge}, nil
}

// StripEndList removes the end-of-list marker so players keep polling for new
// segments, trimming the whitespace the removal leaves behind.
func StripEndList(body string) string {
	return strings.TrimSpace(strings.Replace(body, EndListTag, "", 1))
}
