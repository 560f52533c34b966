package storage

import (
	"context"
	"testing"

	"github.com/raykavin/signalert/core"
	"github.com/stretchr/testify/require"
)

func TestBuntStorage_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	statuses := map[string]core.Status{
		"ex1:BTC/USD:rsi:0":  core.StatusHot,
		"ex2:ETH/USD:macd:1": core.StatusCold,
	}

	ctx := context.Background()
	require.NoError(t, store.SaveStatuses(ctx, statuses))

	loaded, err := store.LoadStatuses(ctx)
	require.NoError(t, err)
	require.Equal(t, statuses, loaded)
}

func TestBuntStorage_SaveReplacesPreviousState(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.SaveStatuses(ctx, map[string]core.Status{
		"ex1:BTC/USD:rsi:0": core.StatusHot,
	}))
	require.NoError(t, store.SaveStatuses(ctx, map[string]core.Status{
		"ex1:BTC/USD:rsi:1": core.StatusCold,
	}))

	loaded, err := store.LoadStatuses(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]core.Status{
		"ex1:BTC/USD:rsi:1": core.StatusCold,
	}, loaded)
}

func TestBuntStorage_LoadEmpty(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	loaded, err := store.LoadStatuses(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}
