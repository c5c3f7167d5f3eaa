package clients

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	xerrors "github.com/livepeer/vod-edge/errors"
)

// Object is a fetched object-store item. LastModified is zero when the store
// did not report a write timestamp.
type Object struct {
	Body         []byte
	LastModified time.Time
}

// ObjectFetcher fetches a single object from a bucket.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (Object, error)
}

type S3Client struct {
	s3 *s3.S3
}

func NewS3Client(region, endpoint string) (*S3Client, error) {
	config := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		config = config.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %w", err)
	}
	return &S3Client{s3: s3.New(sess)}, nil
}

func (c *S3Client) Fetch(ctx context.Context, bucket, key string) (Object, error) {
	out, err := c.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return Object{}, fmt.Errorf("no object at s3://%s/%s: %w", bucket, key, xerrors.ObjectNotFoundError)
		}
		return Object{}, fmt.Errorf("failed to fetch s3://%s/%s: %w: %v", bucket, key, xerrors.ExternalServiceError, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Object{}, fmt.Errorf("failed to read body of s3://%s/%s: %w: %v", bucket, key, xerrors.ExternalServiceError, err)
	}

	obj := Object{Body: body}
	if out.LastModified != nil {
		obj.LastModified = *out.LastModified
	}
	return obj, nil
}

func isNotFound(err error) bool {
	if awsErr, ok := err.(awserr.Error); ok {
		return awsErr.Code() == s3.ErrCodeNoSuchKey || awsErr.Code() == "NotFound"
	}
	return false
}
