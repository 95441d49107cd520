package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `{
	"cpu_core": 3,
	"name": "decimator",
	"cores": [0, 2, 5],
	"ratio": 1.5,
	"pool": {"frame_bytes": 4096, "nr_frames": 64}
}`

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(strings.NewReader(testDoc))
	require.NoError(t, err)

	core, err := cfg.Int("cpu_core")
	assert.NoError(t, err)
	assert.Equal(t, 3, core)
}

func TestInt(t *testing.T) {
	cfg, err := Parse([]byte(testDoc))
	require.NoError(t, err)

	table := []struct {
		name     string
		field    string
		expected int
		err      error
	}{
		{name: "integer", field: "cpu_core", expected: 3},
		{name: "missing", field: "nope", err: ErrNoEntry},
		{name: "string", field: "name", err: ErrInvalidType},
		{name: "fractional", field: "ratio", err: ErrInvalidType},
		{name: "array", field: "cores", err: ErrInvalidType},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			value, err := cfg.Int(e.field)
			if e.err != nil {
				assert.ErrorIs(t, err, e.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, e.expected, value)
		})
	}
}

func TestString(t *testing.T) {
	cfg, err := Parse([]byte(testDoc))
	require.NoError(t, err)

	name, err := cfg.String("name")
	assert.NoError(t, err)
	assert.Equal(t, "decimator", name)

	_, err = cfg.String("cpu_core")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = cfg.String("nope")
	assert.ErrorIs(t, err, ErrNoEntry)
}

func TestSub(t *testing.T) {
	cfg, err := Parse([]byte(testDoc))
	require.NoError(t, err)

	pool, err := cfg.Sub("pool")
	require.NoError(t, err)

	frameBytes, err := pool.Int("frame_bytes")
	assert.NoError(t, err)
	assert.Equal(t, 4096, frameBytes)

	_, err = cfg.Sub("cores")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestArray(t *testing.T) {
	cfg, err := Parse([]byte(testDoc))
	require.NoError(t, err)

	arr, err := cfg.Array("cores")
	require.NoError(t, err)
	assert.Equal(t, 3, arr.Len())

	for i, expected := range []int{0, 2, 5} {
		value, err := arr.IntAt(i)
		assert.NoError(t, err)
		assert.Equal(t, expected, value)
	}

	_, err = arr.IntAt(3)
	assert.ErrorIs(t, err, ErrNoEntry)

	_, err = cfg.Array("cpu_core")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestArrayMixedTypes(t *testing.T) {
	cfg, err := Parse([]byte(`{"cores": [1, "two", 3.5]}`))
	require.NoError(t, err)

	arr, err := cfg.Array("cores")
	require.NoError(t, err)

	value, err := arr.IntAt(0)
	assert.NoError(t, err)
	assert.Equal(t, 1, value)

	_, err = arr.IntAt(1)
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = arr.IntAt(2)
	assert.ErrorIs(t, err, ErrInvalidType)
}
