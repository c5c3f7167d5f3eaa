package recording

import (
	"context"
	"fmt"
	"testing"

	"github.com/livepeer/vod-edge/channel"
	"github.com/livepeer/vod-edge/clients"
	xerrors "github.com/livepeer/vod-edge/errors"
	"github.com/stretchr/testify/require"
)

const (
	testBucket     = "test-vod-bucket"
	testDescKey    = "ovAbCdEf0123/recording-started-latest.json"
	testChannelArn = "arn:aws:ivs:us-east-1:111111111111:channel/ovAbCdEf0123"
)

var testRoles = channel.NewRoleMap(map[string]string{
	"overview": testChannelArn,
})

const testDescriptor = `{
	"masterPath": "ivs/v1/111111111111/ovAbCdEf0123/2026/8/1/12/0/stAbCdEf/media/hls",
	"masterPlaylistName": "master.m3u8",
	"renditions": [
		{"path": "ivs/v1/111111111111/ovAbCdEf0123/2026/8/1/12/0/stAbCdEf/media/hls/720p60", "playlistName": "playlist.m3u8"},
		{"path": "ivs/v1/111111111111/ovAbCdEf0123/2026/8/1/12/0/stAbCdEf/media/hls/480p30", "playlistName": "playlist.m3u8"}
	],
	"recordingStartedAt": "2026-08-01T12:00:00Z",
	"recordedStreamId": "st-recorded",
	"channelId": "ovAbCdEf0123",
	"channelArn": "arn:aws:ivs:us-east-1:111111111111:channel/ovAbCdEf0123"
}`

const testRenditionPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TWITCH-TOTAL-SECS:120.5
#EXT-X-TARGETDURATION:10
#EXTINF:10.000,
0.ts
`

type stubFetcher struct {
	objects map[string]clients.Object
	errs    map[string]error
}

func (s *stubFetcher) Fetch(ctx context.Context, bucket, key string) (clients.Object, error) {
	if err, ok := s.errs[key]; ok {
		return clients.Object{}, err
	}
	if obj, ok := s.objects[key]; ok {
		return obj, nil
	}
	return clients.Object{}, fmt.Errorf("no object at s3://%s/%s: %w", bucket, key, xerrors.ObjectNotFoundError)
}

type stubLiveness struct {
	state clients.LiveState
	err   error
}

func (s *stubLiveness) Status(ctx context.Context, channelArn string) (clients.LiveState, error) {
	return s.state, s.err
}

func firstRenditionKey(t *testing.T) string {
	t.Helper()
	desc, err := ParseDescriptor([]byte(testDescriptor))
	require.NoError(t, err)
	return fmt.Sprintf("%s/%s", desc.Renditions[0].Path, desc.Renditions[0].PlaylistName)
}

func TestMissingDescriptorIsNotAnError(t *testing.T) {
	resolver := Resolver{
		Store:    &stubFetcher{},
		Liveness: &stubLiveness{},
	}

	metadata, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.NoError(t, err)
	require.Nil(t, metadata)
}

func TestMetadataForLiveChannel(t *testing.T) {
	store := &stubFetcher{objects: map[string]clients.Object{
		testDescKey:          {Body: []byte(testDescriptor)},
		firstRenditionKey(t): {Body: []byte(testRenditionPlaylist)},
	}}
	liveness := &stubLiveness{state: clients.LiveState{
		IsLive:      true,
		PlaybackURL: "https://playback.example/live.m3u8",
		StreamID:    "st-active",
	}}
	resolver := Resolver{Store: store, Liveness: liveness}

	metadata, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.NoError(t, err)
	require.NotNil(t, metadata)
	require.True(t, metadata.IsChannelLive)
	require.Equal(t, "https://playback.example/live.m3u8", metadata.LivePlaybackURL)
	require.Equal(t, "ivs/v1/111111111111/ovAbCdEf0123/2026/8/1/12/0/stAbCdEf/media/hls/master.m3u8", metadata.MasterKey)
	require.Equal(t, "2026-08-01T12:00:00Z", metadata.RecordingStartedAt)
	require.Equal(t, "ovAbCdEf0123", metadata.ChannelID)
	require.Equal(t, channel.RoleOverview, metadata.SourcePosition)
	require.NotNil(t, metadata.PlaylistDurationSeconds)
	require.Equal(t, 120.5, *metadata.PlaylistDurationSeconds)
}

func TestMetadataAlwaysAttachesLatestRecording(t *testing.T) {
	// the recorded stream id differs from the active one; the master key and
	// start time still come from the latest descriptor
	store := &stubFetcher{objects: map[string]clients.Object{
		testDescKey: {Body: []byte(testDescriptor)},
	}}
	liveness := &stubLiveness{state: clients.LiveState{IsLive: true, PlaybackURL: "https://playback.example/live.m3u8", StreamID: "st-different"}}
	resolver := Resolver{Store: store, Liveness: liveness}

	metadata, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.NoError(t, err)
	require.Equal(t, "ivs/v1/111111111111/ovAbCdEf0123/2026/8/1/12/0/stAbCdEf/media/hls/master.m3u8", metadata.MasterKey)
	require.Equal(t, "2026-08-01T12:00:00Z", metadata.RecordingStartedAt)
}

func TestOfflineChannelNeverExposesPlaybackURL(t *testing.T) {
	store := &stubFetcher{objects: map[string]clients.Object{
		testDescKey: {Body: []byte(testDescriptor)},
	}}
	// the oracle may still report the stale URL of the last stream
	liveness := &stubLiveness{state: clients.LiveState{IsLive: false, PlaybackURL: "https://playback.example/stale.m3u8"}}
	resolver := Resolver{Store: store, Liveness: liveness}

	metadata, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.NoError(t, err)
	require.False(t, metadata.IsChannelLive)
	require.Empty(t, metadata.LivePlaybackURL)
}

func TestDurationProbeFailureIsNonFatal(t *testing.T) {
	store := &stubFetcher{
		objects: map[string]clients.Object{
			testDescKey: {Body: []byte(testDescriptor)},
		},
		errs: map[string]error{
			firstRenditionKey(t): fmt.Errorf("transport blew up: %w", xerrors.ExternalServiceError),
		},
	}
	liveness := &stubLiveness{state: clients.LiveState{IsLive: true, PlaybackURL: "https://playback.example/live.m3u8"}}
	resolver := Resolver{Store: store, Liveness: liveness}

	metadata, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.NoError(t, err)
	require.NotNil(t, metadata)
	require.Nil(t, metadata.PlaylistDurationSeconds)
	require.True(t, metadata.IsChannelLive)
	require.NotEmpty(t, metadata.MasterKey)
}

func TestUnknownChannelRole(t *testing.T) {
	store := &stubFetcher{objects: map[string]clients.Object{
		testDescKey: {Body: []byte(testDescriptor)},
	}}
	resolver := Resolver{Store: store, Liveness: &stubLiveness{}}

	metadata, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, channel.RoleMap{})
	require.NoError(t, err)
	require.Equal(t, channel.RoleUnknown, metadata.SourcePosition)
}

func TestLivenessFailureIsFatal(t *testing.T) {
	store := &stubFetcher{objects: map[string]clients.Object{
		testDescKey: {Body: []byte(testDescriptor)},
	}}
	liveness := &stubLiveness{err: fmt.Errorf("auth failure: %w", xerrors.ExternalServiceError)}
	resolver := Resolver{Store: store, Liveness: liveness}

	_, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.ErrorIs(t, err, xerrors.ExternalServiceError)
}

func TestDescriptorFetchFailureIsFatal(t *testing.T) {
	store := &stubFetcher{errs: map[string]error{
		testDescKey: fmt.Errorf("transport blew up: %w", xerrors.ExternalServiceError),
	}}
	resolver := Resolver{Store: store, Liveness: &stubLiveness{}}

	_, err := resolver.Resolve(context.Background(), "testid", testBucket, testDescKey, testRoles)
	require.ErrorIs(t, err, xerrors.ExternalServiceError)
}
