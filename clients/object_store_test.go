package clients

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound(awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)))
	require.True(t, isNotFound(awserr.New("NotFound", "not found", nil)))
	require.False(t, isNotFound(awserr.New("AccessDenied", "denied", nil)))
	require.False(t, isNotFound(errors.New("plain error")))
	require.False(t, isNotFound(nil))
}
