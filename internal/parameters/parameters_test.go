package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("color, max_moves=400,expr=a=b,,")
	assert.Equal(t, Params{"color": "", "max_moves": "400", "expr": "a=b"}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("color,clear_screen=false,max_moves=400,stop_prob=0.25,wait=2s,name=x")

	color, err := PopParamOr(params, "color", false)
	require.NoError(t, err)
	assert.True(t, color)

	clearScreen, err := PopParamOr(params, "clear_screen", true)
	require.NoError(t, err)
	assert.False(t, clearScreen)

	maxMoves, err := PopParamOr(params, "max_moves", 100)
	require.NoError(t, err)
	assert.Equal(t, 400, maxMoves)

	stopProb, err := PopParamOr(params, "stop_prob", 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.25, stopProb)

	wait, err := PopParamOr(params, "wait", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, wait)

	missing, err := PopParamOr(params, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	err = CheckAllUsed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	name, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Len(t, params, 1, "GetParamOr should not remove the key")
	_, _ = PopParamOr(params, "name", "")
	assert.NoError(t, CheckAllUsed(params))
}

func TestParseErrors(t *testing.T) {
	params := NewFromConfigString("max_moves=many,color=maybe,stop_prob=,wait=soon")
	_, err := PopParamOr(params, "max_moves", 1)
	assert.Error(t, err)
	_, err = PopParamOr(params, "color", false)
	assert.Error(t, err)
	_, err = PopParamOr(params, "stop_prob", 0.5)
	assert.Error(t, err)
	_, err = PopParamOr(params, "wait", time.Second)
	assert.Error(t, err)
	assert.Len(t, params, 4, "Failed parameters should not be removed")
}
