package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

func TestNewClientAndPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.NoError(t, Ping(context.Background(), client))

	mr.Close()
	err = Ping(context.Background(), client)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient(" , ", nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSplitAddrs(t *testing.T) {
	assert.Equal(t, []string{"a:6379", "b:6379"}, splitAddrs(" a:6379, ,b:6379 "))
	assert.Empty(t, splitAddrs(""))
}
