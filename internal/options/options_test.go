package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	factor int
	name   string
	calls  []string
}

func withFactor(f int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if f <= 0 {
			return errors.New("factor must be positive")
		}
		c.factor = f
		c.calls = append(c.calls, "factor")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withName("bit_p"), withFactor(10))
	require.NoError(t, err)
	require.Equal(t, 10, cfg.factor)
	require.Equal(t, "bit_p", cfg.name)
	require.Equal(t, []string{"name", "factor"}, cfg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withFactor(0), withName("never"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "factor must be positive")
	require.Empty(t, cfg.name)
	require.Empty(t, cfg.calls)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &testConfig{}

	var missing Option[*testConfig]
	require.NoError(t, Apply(cfg, missing, withFactor(2)))
	require.Equal(t, 2, cfg.factor)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{factor: 7}
	require.NoError(t, Apply(cfg))
	require.Equal(t, 7, cfg.factor)
}
