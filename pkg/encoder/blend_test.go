package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlendWorkedExample(t *testing.T) {
	// level of size 2 with posterior mean 0.5 against a 2/3 global prior:
	// lambda = 1/(1+exp(1)) ~ 0.2689
	global := Stat{Count: 3, Sum: 2}
	params := BlendingParams{InflectionPoint: 3, Smoothing: 1}

	v, err := Blend(Stat{Count: 2, Sum: 1}, global, params, true)
	require.NoError(t, err)
	require.InDelta(t, 0.6218431, v, 1e-6)

	v, err = Blend(Stat{Count: 1, Sum: 1}, global, params, true)
	require.NoError(t, err)
	require.InDelta(t, 0.7064010, v, 1e-6)
}

func TestBlendLimits(t *testing.T) {
	global := Stat{Count: 3, Sum: 2}
	params := DefaultBlendingParams

	// a huge level converges to its posterior mean
	v, err := Blend(Stat{Count: 1_000_000, Sum: 500_000}, global, params, true)
	require.NoError(t, err)
	require.InDelta(t, 0.5, v, 1e-9)

	// an empty level is the pure prior, blending or not
	v, err = Blend(Stat{}, global, params, true)
	require.NoError(t, err)
	require.InDelta(t, 2.0/3.0, v, 1e-12)

	v, err = Blend(Stat{}, global, params, false)
	require.NoError(t, err)
	require.InDelta(t, 2.0/3.0, v, 1e-12)
}

func TestBlendMonotonicity(t *testing.T) {
	// levels with posterior mean 0 move monotonically from the prior toward
	// 0 as their size grows
	global := Stat{Count: 100, Sum: 50}
	params := BlendingParams{InflectionPoint: 5, Smoothing: 2}

	prev := global.Mean()
	for n := int64(1); n <= 20; n++ {
		v, err := Blend(Stat{Count: n, Sum: 0}, global, params, true)
		require.NoError(t, err)
		require.Less(t, v, prev)
		prev = v
	}
}

func TestBlendDisabled(t *testing.T) {
	v, err := Blend(Stat{Count: 2, Sum: 1}, Stat{Count: 3, Sum: 2}, DefaultBlendingParams, false)
	require.NoError(t, err)
	require.Equal(t, 0.5, v)
}

func TestBlendEmptyGlobal(t *testing.T) {
	_, err := Blend(Stat{Count: 1, Sum: 1}, Stat{}, DefaultBlendingParams, true)
	require.ErrorIs(t, err, ErrEmptyTrainingSet)
}

func TestBlendingParamsValidate(t *testing.T) {
	require.NoError(t, DefaultBlendingParams.validate())
	require.Error(t, BlendingParams{InflectionPoint: 0, Smoothing: 1}.validate())
	require.Error(t, BlendingParams{InflectionPoint: 3, Smoothing: -1}.validate())
}
