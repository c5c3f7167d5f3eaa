package config

import (
	"math/rand"
	"os"
	"time"

	"github.com/go-kit/log"
)

var Version string

// Used so that we can pin timestamps in tests
var Clock TimeSource = RealTimeSource{}

// Request headers the CDN sets on origin requests to override the CLI defaults.
// These mirror the distribution's origin custom headers, so a single deployment
// can serve several distributions.
const (
	BucketHeader       = "x-vod-bucket"
	ChannelRolesHeader = "x-channel-roles"
)

// Global variable, but easier than passing a logger around throughout the system
var Logger log.Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

func init() {
	Logger = log.With(Logger, "ts", log.DefaultTimestampUTC)
}

var r = rand.New(rand.NewSource(time.Now().UnixNano()))

func RandomTrailer(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	res := make([]byte, length)
	for i := 0; i < length; i++ {
		res[i] = charset[r.Intn(len(charset))]
	}
	return string(res)
}
