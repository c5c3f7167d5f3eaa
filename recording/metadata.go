// Package recording assembles the client-facing "is this channel live, and
// where is its latest recording" descriptor.
package recording

import (
	"context"
	"errors"
	"fmt"

	"github.com/livepeer/vod-edge/channel"
	"github.com/livepeer/vod-edge/clients"
	xerrors "github.com/livepeer/vod-edge/errors"
	"github.com/livepeer/vod-edge/log"
	"github.com/livepeer/vod-edge/playlist"
)

// Metadata is the response payload for the recording metadata path. Built
// fresh per request, never persisted.
type Metadata struct {
	IsChannelLive           bool         `json:"isChannelLive"`
	LivePlaybackURL         string       `json:"livePlaybackUrl"`
	MasterKey               string       `json:"masterKey"`
	RecordingStartedAt      string       `json:"recordingStartedAt"`
	PlaylistDurationSeconds *float64     `json:"playlistDurationSeconds,omitempty"`
	ChannelID               string       `json:"channelId"`
	SourcePosition          channel.Role `json:"sourcePosition"`
}

type Resolver struct {
	Store    clients.ObjectFetcher
	Liveness clients.LivenessClient
}

// Resolve fetches the recording descriptor and merges in the channel's live
// state. A missing descriptor returns (nil, nil): requests routinely arrive
// before the recording-start notification has written it.
//
// The master key and recording start time always come from the most recent
// descriptor, even when its recorded stream id differs from the currently
// active stream.
func (r *Resolver) Resolve(ctx context.Context, requestID, bucket, descriptorKey string, roles channel.RoleMap) (*Metadata, error) {
	obj, err := r.Store.Fetch(ctx, bucket, descriptorKey)
	if errors.Is(err, xerrors.ObjectNotFoundError) {
		log.Log(requestID, "recording descriptor not written yet", "bucket", bucket, "key", descriptorKey)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	desc, err := ParseDescriptor(obj.Body)
	if err != nil {
		return nil, err
	}

	state, err := r.Liveness.Status(ctx, desc.ChannelARN)
	if err != nil {
		return nil, err
	}

	metadata := &Metadata{
		IsChannelLive:      state.IsLive,
		MasterKey:          fmt.Sprintf("%s/%s", desc.MasterPath, desc.MasterPlaylistName),
		RecordingStartedAt: desc.RecordingStartedAt,
		ChannelID:          desc.ChannelID,
		SourcePosition:     channel.Resolve(desc.ChannelARN, roles),
	}
	if state.IsLive {
		// never expose the playback URL of an offline stream
		metadata.LivePlaybackURL = state.PlaybackURL
	}

	if secs, ok := r.probeDuration(ctx, requestID, bucket, desc); ok {
		metadata.PlaylistDurationSeconds = &secs
	}

	return metadata, nil
}

// probeDuration reads the highest-quality rendition playlist for the total
// recording duration. Best effort: any failure leaves the duration absent and
// never affects the rest of the response.
func (r *Resolver) probeDuration(ctx context.Context, requestID, bucket string, desc Descriptor) (float64, bool) {
	if len(desc.Renditions) == 0 {
		return 0, false
	}

	rendition := desc.Renditions[0]
	key := fmt.Sprintf("%s/%s", rendition.Path, rendition.PlaylistName)
	obj, err := r.Store.Fetch(ctx, bucket, key)
	if err != nil {
		log.Log(requestID, "duration probe failed, omitting duration", "key", key, "error", err)
		return 0, false
	}

	return playlist.TotalSeconds(string(obj.Body))
}
