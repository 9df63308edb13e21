package odds

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherAllKeepsOrder(t *testing.T) {
	fns := []func(ctx context.Context) (int, error){
		func(ctx context.Context) (int, error) { time.Sleep(20 * time.Millisecond); return 1, nil },
		func(ctx context.Context) (int, error) { return 2, nil },
		func(ctx context.Context) (int, error) { time.Sleep(5 * time.Millisecond); return 3, nil },
	}

	got, err := gatherAll(context.Background(), fns)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestGatherAllFailFast(t *testing.T) {
	errBoom := errors.New("boom")
	errLater := errors.New("later")

	fns := []func(ctx context.Context) (int, error){
		func(ctx context.Context) (int, error) { return 1, nil },
		func(ctx context.Context) (int, error) { return 0, errBoom },
		func(ctx context.Context) (int, error) { return 0, errLater },
	}

	got, err := gatherAll(context.Background(), fns)
	assert.Nil(t, got)
	// primeiro erro observado (menor índice) vence
	assert.ErrorIs(t, err, errBoom)
}

func TestGatherAllWaitsForEveryone(t *testing.T) {
	var done atomic.Int32

	fns := []func(ctx context.Context) (int, error){
		func(ctx context.Context) (int, error) { done.Add(1); return 0, errors.New("fail") },
		func(ctx context.Context) (int, error) {
			time.Sleep(30 * time.Millisecond)
			done.Add(1)
			return 2, nil
		},
	}

	_, err := gatherAll(context.Background(), fns)
	require.Error(t, err)
	// a barreira espera todas as operações, mesmo com falha antecipada
	assert.Equal(t, int32(2), done.Load())
}

func TestGatherAllEmpty(t *testing.T) {
	got, err := gatherAll(context.Background(), []func(ctx context.Context) (int, error){})
	require.NoError(t, err)
	assert.Empty(t, got)
}
