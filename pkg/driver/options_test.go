package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptionsCoercesHeterogeneousKList(t *testing.T) {
	opts, err := DecodeOptions(map[string]any{
		"k":      []any{"2", 3.0, 4},
		"engine": "effosil",
		"seed":   "42",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, opts.K)
	assert.Equal(t, EngineEffOSil, opts.Engine)
	assert.Equal(t, uint64(42), opts.Seed)
}

func TestDecodeOptionsRejectsUnparseableKEntry(t *testing.T) {
	_, err := DecodeOptions(map[string]any{
		"k": []any{"not-a-number"},
	})
	require.Error(t, err)
}

func TestDecodeOptionsAcceptsSingleIntK(t *testing.T) {
	opts, err := DecodeOptions(map[string]any{"k": 3})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, opts.K)
}

func TestDecodeOptionsDefaultsOnMissingFields(t *testing.T) {
	opts, err := DecodeOptions(map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, opts.K)
	assert.Equal(t, "", opts.Engine)
}
