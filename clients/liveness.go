package clients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ivs"
	xerrors "github.com/livepeer/vod-edge/errors"
)

// LiveState is the answer to "is this channel streaming right now". It is
// produced fresh for each request and never cached.
type LiveState struct {
	IsLive      bool
	PlaybackURL string
	StreamID    string
}

// LivenessClient queries the live-channel control plane for a channel's
// current stream. A channel with no active stream is a successful
// LiveState{IsLive: false}, not an error.
type LivenessClient interface {
	Status(ctx context.Context, channelArn string) (LiveState, error)
}

type IVSClient struct {
	ivs *ivs.IVS
}

func NewIVSClient(region, endpoint string) (*IVSClient, error) {
	config := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		config = config.WithEndpoint(endpoint)
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %w", err)
	}
	return &IVSClient{ivs: ivs.New(sess)}, nil
}

func (c *IVSClient) Status(ctx context.Context, channelArn string) (LiveState, error) {
	out, err := c.ivs.GetStreamWithContext(ctx, &ivs.GetStreamInput{
		ChannelArn: aws.String(channelArn),
	})
	if err != nil {
		if isNotBroadcasting(err) {
			return LiveState{}, nil
		}
		return LiveState{}, fmt.Errorf("failed to get stream for channel %s: %w: %v", channelArn, xerrors.ExternalServiceError, err)
	}

	stream := out.Stream
	if stream == nil {
		return LiveState{}, nil
	}

	return LiveState{
		// Anything other than LIVE (e.g. OFFLINE) counts as not live
		IsLive:      aws.StringValue(stream.State) == ivs.StreamStateLive,
		PlaybackURL: aws.StringValue(stream.PlaybackUrl),
		StreamID:    aws.StringValue(stream.StreamId),
	}, nil
}

func isNotBroadcasting(err error) bool {
	if awsErr, ok := err.(awserr.Error); ok {
		return awsErr.Code() == ivs.ErrCodeChannelNotBroadcasting ||
			awsErr.Code() == ivs.ErrCodeResourceNotFoundException
	}
	return false
}
