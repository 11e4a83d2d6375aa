package playouts

import (
	"context"
	"github.com/LanMao8866/hexjump/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = NewConfig("max_moves=50,stop_prob=0,invalid_prob=1")
	require.NoError(t, err)
	assert.Equal(t, Config{MaxMoves: 50, StopProb: 0, InvalidProb: 1}, cfg)

	for _, config := range []string{"max_moves=0", "stop_prob=1.5", "invalid_prob=-1", "max_move=10", "max_moves=x"} {
		_, err = NewConfig(config)
		assert.Error(t, err, "Config %q should have failed", config)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	cfg := Config{MaxMoves: 150, StopProb: 0.3, InvalidProb: 0.5}
	result, err := Run(ctx, cfg, 42)
	require.NoError(t, err)
	t.Logf("Result: %s", result)
	assert.Equal(t, uint64(42), result.Seed)
	assert.LessOrEqual(t, result.Turns, cfg.MaxMoves)
	assert.Positive(t, result.Steps+result.Jumps)
	assert.Positive(t, result.Rejected)

	// Same seed, same game.
	result2, err := Run(ctx, cfg, 42)
	require.NoError(t, err)
	assert.Equal(t, result, result2)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := Run(ctx, DefaultConfig(), 1)
	require.NoError(t, err)
	assert.Zero(t, result.Turns)
	assert.False(t, result.Finished())
}

// TestParallelPlayouts runs many games concurrently: boards share no state, so every game
// must keep the invariants.
func TestParallelPlayouts(t *testing.T) {
	const numGames = 32
	cfg := Config{MaxMoves: 120, StopProb: 0.2, InvalidProb: 0.3}
	summary := NewSummary(numGames)
	var g errgroup.Group
	g.SetLimit(8)
	for seed := range uint64(numGames) {
		g.Go(func() error {
			result, err := Run(context.Background(), cfg, seed)
			if err != nil {
				return err
			}
			summary.Add(result)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	t.Logf("Summary: %s", summary)
	assert.Equal(t, numGames, summary.Played())
	finished := 0
	for _, team := range state.Teams {
		finished += summary.Wins(team)
	}
	assert.Equal(t, numGames, finished+summary.Unfinished())
}
