package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoRetry_InvalidURI(t *testing.T) {
	client, err := ConnectMongoRetry(context.Background(), "not-a-mongo-uri", time.Second, 2, time.Millisecond)
	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "giving up after 2 attempts")
}

func TestConnectMongoRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoRetry(ctx, "not-a-mongo-uri", time.Second, 3, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}
