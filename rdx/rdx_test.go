package rdx

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDisabled(t *testing.T) {
	client, err := Connect(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestConnectUnreachable(t *testing.T) {
	client, err := Connect(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestConnectLive(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestConnectWrongPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	client, err := Connect(context.Background(), mr.Addr(), "nope", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}
