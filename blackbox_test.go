package blackbox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flightlog/blackbox/compress"
	"github.com/flightlog/blackbox/errs"
	"github.com/flightlog/blackbox/header"
	"github.com/stretchr/testify/require"
)

func minimalSession(t *testing.T) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(header.Signature + "\n")
	b.WriteString("H Field I name:loopIteration,time\n")
	b.WriteString("H Field I signed:0,0\n")
	b.WriteString("H Field I predictor:0,0\n")
	b.WriteString("H Field I encoding:1,1\n")
	b.WriteString("H Field P signed:0,0\n")
	b.WriteString("H Field P predictor:1,1\n")
	b.WriteString("H Field P encoding:0,0\n")
	b.WriteString("I\x00\x00")

	return b.String()
}

func TestOpen_SingleSession(t *testing.T) {
	data := []byte(minimalSession(t))

	p, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 1, p.Reader().LogCount())
	require.Equal(t, []string{"loopIteration", "time"}, p.FieldNames())

	var frames int
	for item := range p.All() {
		if item.Frame != nil {
			frames++
		}
	}
	require.Equal(t, 1, frames)
}

// S4 Session split.
func TestOpen_S4_SessionSplit(t *testing.T) {
	session := minimalSession(t)
	padding := strings.Repeat("\x00", 4096-len(session))
	data := []byte(session + padding + minimalSession(t))

	p, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 2, p.Reader().LogCount())
	require.Equal(t, []int{0, 4096}, p.Reader().LogPointers())

	require.NoError(t, p.SetLogIndex(2))
	require.Equal(t, 2, p.LogIndex())

	var frames int
	for item := range p.All() {
		if item.Frame != nil {
			frames++
		}
	}
	require.Equal(t, 1, frames)
}

func TestOpen_SetLogIndex_OutOfRange(t *testing.T) {
	data := []byte(minimalSession(t))

	p, err := Open(data)
	require.NoError(t, err)

	err = p.SetLogIndex(2)
	require.ErrorIs(t, err, errs.ErrNoSuchLog)
}

// S5 allow_invalid_header.
func TestOpen_S5_AllowInvalidHeader(t *testing.T) {
	var b strings.Builder
	b.WriteString("H Field I name:loopIteration,time\n")
	b.WriteString("H Field I signed:0,0\n")
	b.WriteString("H Field I predictor:0,0\n")
	b.WriteString("H Field I encoding:1,1\n")
	b.WriteString("H Field P signed:0,0\n")
	b.WriteString("H Field P predictor:1,1\n")
	b.WriteString("H Field P encoding:0,0\n")
	b.WriteString("I\x00\x00")
	data := []byte(b.String())

	_, err := Open(data)
	require.ErrorIs(t, err, errs.ErrInvalidHeader)

	p, err := Open(data, WithAllowInvalidHeader(true))
	require.NoError(t, err)

	var frames int
	for item := range p.All() {
		if item.Frame != nil {
			frames++
		}
	}
	require.Equal(t, 1, frames)
}

func TestOpen_EmptyFile(t *testing.T) {
	_, err := Open(nil)
	require.ErrorIs(t, err, errs.ErrEmptyFile)
}

func TestParser_SetLogIndex_Idempotent(t *testing.T) {
	session := minimalSession(t)
	padding := strings.Repeat("\x00", 4096-len(session))
	data := []byte(session + padding + minimalSession(t))

	p, err := Open(data)
	require.NoError(t, err)

	require.NoError(t, p.SetLogIndex(1))
	var first []int64
	for f := range p.Frames() {
		first = f.Data
	}

	require.NoError(t, p.SetLogIndex(1))
	var second []int64
	for f := range p.Frames() {
		second = f.Data
	}

	require.Equal(t, first, second)
}

func TestReader_ExportSession_RoundTrip(t *testing.T) {
	data := []byte(minimalSession(t))

	p, err := Open(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Reader().ExportSession(1, &buf, compress.NewNoOpCompressor()))
	require.Equal(t, data, buf.Bytes())

	buf.Reset()
	require.NoError(t, p.Reader().ExportSession(1, &buf, compress.NewLZ4Compressor()))

	out, err := compress.NewLZ4Compressor().Decompress(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestReader_ExportSession_OutOfRange(t *testing.T) {
	data := []byte(minimalSession(t))

	p, err := Open(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = p.Reader().ExportSession(2, &buf, compress.NewNoOpCompressor())
	require.ErrorIs(t, err, errs.ErrNoSuchLog)
}

func TestOpen_TransparentGzipDecompression(t *testing.T) {
	data := []byte(minimalSession(t))

	var compressed bytes.Buffer
	require.NoError(t, func() error {
		out, err := compress.NewGzipCompressor().Compress(data)
		if err != nil {
			return err
		}
		_, err = compressed.Write(out)
		return err
	}())

	p, err := Open(compressed.Bytes())
	require.NoError(t, err)

	var frames int
	for item := range p.All() {
		if item.Frame != nil {
			frames++
		}
	}
	require.Equal(t, 1, frames)
}
