package header

import (
	"testing"

	"github.com/flightlog/blackbox/errs"
	"github.com/stretchr/testify/require"
)

func buildSession(headerLines []string, payload string) []byte {
	s := Signature + "\n"
	for _, l := range headerLines {
		s += "H " + l + "\n"
	}
	s += payload

	return []byte(s)
}

func TestParse_Strict_RequiresSignature(t *testing.T) {
	data := []byte("H foo:bar\nIpayload")

	_, _, err := Parse(data, 0, false)

	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestParse_Permissive_AllowsMissingSignature(t *testing.T) {
	data := []byte("H foo:bar\nIpayload")

	h, payloadStart, err := Parse(data, 0, true)

	require.NoError(t, err)
	require.Equal(t, "bar", h.Raw["foo"])
	require.Equal(t, byte('I'), data[payloadStart])
}

func TestParse_Strict_Succeeds(t *testing.T) {
	data := buildSession([]string{"I interval:1", "P interval:1/1"}, "I\x00\x00")

	h, payloadStart, err := Parse(data, 0, false)

	require.NoError(t, err)
	require.Equal(t, "1", h.Raw["I interval"])
	require.Equal(t, byte('I'), data[payloadStart])
}

func TestHeader_IInterval(t *testing.T) {
	h := &Header{Raw: map[string]string{"I interval": "32"}}

	v, err := h.IInterval()
	require.NoError(t, err)
	require.Equal(t, uint32(32), v)
}

func TestHeader_IInterval_AlternateKey(t *testing.T) {
	h := &Header{Raw: map[string]string{"frameIntervalI": "8"}}

	v, err := h.IInterval()
	require.NoError(t, err)
	require.Equal(t, uint32(8), v)
}

func TestHeader_IInterval_Missing(t *testing.T) {
	h := &Header{Raw: map[string]string{}}

	_, err := h.IInterval()
	require.ErrorIs(t, err, errs.ErrMissingHeaderKey)
}

func TestHeader_PInterval(t *testing.T) {
	h := &Header{Raw: map[string]string{"P interval": "1/2"}}

	num, denom, err := h.PInterval()
	require.NoError(t, err)
	require.Equal(t, uint32(1), num)
	require.Equal(t, uint32(2), denom)
}

func TestHeader_PInterval_AlternateKeys(t *testing.T) {
	h := &Header{Raw: map[string]string{"frameIntervalPNum": "3", "frameIntervalPDenom": "4"}}

	num, denom, err := h.PInterval()
	require.NoError(t, err)
	require.Equal(t, uint32(3), num)
	require.Equal(t, uint32(4), denom)
}

func TestHeader_MotorOutput(t *testing.T) {
	h := &Header{Raw: map[string]string{"motorOutput": "1000,2000"}}

	min, max, err := h.MotorOutput()
	require.NoError(t, err)
	require.Equal(t, int64(1000), min)
	require.Equal(t, int64(2000), max)
}

func TestHeader_VbatRef(t *testing.T) {
	h := &Header{Raw: map[string]string{"vbatref": "410"}}

	v, err := h.VbatRef()
	require.NoError(t, err)
	require.Equal(t, int64(410), v)
}

func TestHeader_DataVersion(t *testing.T) {
	h := &Header{Raw: map[string]string{"Data version": "2"}}

	v, err := h.DataVersion()
	require.NoError(t, err)
	require.Equal(t, uint32(2), v)
}
