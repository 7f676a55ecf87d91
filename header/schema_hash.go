package header

import (
	"strconv"
	"strings"

	"github.com/flightlog/blackbox/internal/hash"
)

// SchemaHash fingerprints a session's field schema: the canonicalized
// name/signed/predictor/encoding/group-index tuples of every frame type, in
// table order. Two sessions concatenated into one merged dump that hash
// differently have drifted schemas (a different firmware build, typically),
// which blackbox.Reader surfaces to callers rather than silently decoding
// one session's frames with another's field layout.
func (t *FieldTable) SchemaHash() uint64 {
	var b strings.Builder

	for _, fields := range [][]FieldDef{t.I, t.P, t.S, t.G, t.H} {
		for _, f := range fields {
			b.WriteString(f.Name)
			b.WriteByte('|')
			b.WriteString(strconv.FormatBool(f.Signed))
			b.WriteByte('|')
			b.WriteString(strconv.Itoa(int(f.Predictor)))
			b.WriteByte('|')
			b.WriteString(strconv.Itoa(int(f.Encoding)))
			b.WriteByte('|')
			b.WriteString(strconv.Itoa(f.GroupIndex))
			b.WriteByte(';')
		}
		b.WriteByte('#')
	}

	return hash.ID(b.String())
}
