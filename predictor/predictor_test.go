package predictor

import (
	"testing"

	"github.com/flightlog/blackbox/format"
	"github.com/flightlog/blackbox/header"
	"github.com/stretchr/testify/require"
)

func TestApply_Zero(t *testing.T) {
	v, err := Apply(format.PredictorZero, 5, 0, true, Context{})
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
}

func TestApply_Previous_NoHistory(t *testing.T) {
	v, err := Apply(format.PredictorPrevious, 7, 0, true, Context{})
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestApply_Previous_WithHistory(t *testing.T) {
	ctx := Context{Last: []int64{10, 20}}

	v, err := Apply(format.PredictorPrevious, 1, 1, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(21), v)
}

func TestApply_StraightLine(t *testing.T) {
	ctx := Context{Last: []int64{10}, Last2: []int64{4}}

	v, err := Apply(format.PredictorStraightLine, 0, 0, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(16), v) // 2*10-4
}

func TestApply_Average2_FloorsTowardNegativeInfinity(t *testing.T) {
	ctx := Context{Last: []int64{-3}, Last2: []int64{-4}}

	v, err := Apply(format.PredictorAverage2, 0, 0, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(-4), v) // floor(-3.5) == -4
}

func TestApply_Inc_MainFrame(t *testing.T) {
	ctx := Context{Last: []int64{41}}

	v, err := Apply(format.PredictorInc, 0, 0, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestApply_Inc_SlowFrame(t *testing.T) {
	ctx := Context{LastSlow: []int64{9}, IsSlowFrame: true}

	v, err := Apply(format.PredictorInc, 0, 0, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(10), v)
}

func TestApply_HomeCoordAndHomeLat_ReadSameSlot(t *testing.T) {
	ctx := Context{GPSHome: [2]int64{100, 200}, HomeCoordIndex: 1}

	v1, err := Apply(format.PredictorHomeCoord, 0, 0, true, ctx)
	require.NoError(t, err)

	v2, err := Apply(format.PredictorHomeLat, 0, 0, true, ctx)
	require.NoError(t, err)

	require.Equal(t, int64(200), v1)
	require.Equal(t, v1, v2)
}

func TestApply_Motor0_RequiresPriorDecode(t *testing.T) {
	ctx := Context{Current: []int64{1500}, MotorZeroIndex: 0}

	v, err := Apply(format.PredictorMotor0, 10, 1, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1510), v)
}

func TestApply_VBatRef(t *testing.T) {
	ctx := Context{Header: &header.Header{Raw: map[string]string{"vbatref": "410"}}}

	v, err := Apply(format.PredictorVBatRef, 0, 0, true, ctx)
	require.NoError(t, err)
	require.Equal(t, int64(410), v)
}

func TestApply_SignedNarrowing(t *testing.T) {
	v, err := Apply(format.PredictorZero, int64(1)<<33, 0, true, Context{})
	require.NoError(t, err)
	require.Equal(t, int64(int32(int64(1)<<33)), v)
}

func TestApply_UnsignedNarrowing(t *testing.T) {
	v, err := Apply(format.PredictorZero, -1, 0, false, Context{})
	require.NoError(t, err)
	require.Equal(t, int64(uint32(0xFFFFFFFF)), v)
}
