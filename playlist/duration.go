package playlist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
)

// The recorder writes the running total of the recording into each rendition
// playlist with this tag.
var totalSecsPattern = regexp.MustCompile(`(?m)^#EXT-X-TWITCH-TOTAL-SECS:([0-9]+(?:\.[0-9]+)?)\s*$`)

// TotalSeconds extracts the recording's total duration from a rendition
// playlist. It prefers the recorder's total-seconds tag; when the tag is
// absent it falls back to summing segment durations. Returns false when
// neither yields a duration.
func TotalSeconds(body string) (float64, bool) {
	if m := totalSecsPattern.FindStringSubmatch(body); m != nil {
		secs, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return secs, true
		}
	}
	return sumSegmentDurations(body)
}

func sumSegmentDurations(body string) (float64, bool) {
	playlist, listType, err := m3u8.DecodeFrom(strings.NewReader(body), true)
	if err != nil || listType != m3u8.MEDIA {
		return 0, false
	}
	mediaPlaylist, ok := playlist.(*m3u8.MediaPlaylist)
	if !ok || mediaPlaylist == nil {
		return 0, false
	}

	var total float64
	var count int
	for _, segment := range mediaPlaylist.Segments {
		// The segments list is a ring buffer - see https://github.com/grafov/m3u8/issues/140
		// and so we only know we've hit the end of the list when we find a nil element
		if segment == nil {
			break
		}
		total += segment.Duration
		count++
	}
	if count == 0 {
		return 0, false
	}
	return total, true
}
