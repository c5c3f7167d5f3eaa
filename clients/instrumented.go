package clients

import (
	"context"
	"errors"

	xerrors "github.com/livepeer/vod-edge/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedFetcher counts object fetches by outcome.
type InstrumentedFetcher struct {
	Next  ObjectFetcher
	Count *prometheus.CounterVec
}

func (f *InstrumentedFetcher) Fetch(ctx context.Context, bucket, key string) (Object, error) {
	obj, err := f.Next.Fetch(ctx, bucket, key)
	switch {
	case err == nil:
		f.Count.WithLabelValues("ok").Inc()
	case errors.Is(err, xerrors.ObjectNotFoundError):
		f.Count.WithLabelValues("not_found").Inc()
	default:
		f.Count.WithLabelValues("error").Inc()
	}
	return obj, err
}

// InstrumentedLiveness counts liveness queries by outcome.
type InstrumentedLiveness struct {
	Next  LivenessClient
	Count *prometheus.CounterVec
}

func (l *InstrumentedLiveness) Status(ctx context.Context, channelArn string) (LiveState, error) {
	state, err := l.Next.Status(ctx, channelArn)
	switch {
	case err != nil:
		l.Count.WithLabelValues("error").Inc()
	case state.IsLive:
		l.Count.WithLabelValues("live").Inc()
	default:
		l.Count.WithLabelValues("offline").Inc()
	}
	return state, err
}
