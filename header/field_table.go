package header

import (
	"strconv"
	"strings"

	"github.com/flightlog/blackbox/errs"
	"github.com/flightlog/blackbox/format"
)

// FieldDef describes one field of one frame type, per spec §3.
type FieldDef struct {
	Name       string
	Signed     bool
	Predictor  format.PredictorKind
	Encoding   format.EncodingKind
	GroupIndex int
}

// FieldTable holds the per-frame-type field layout built from a session's
// header (spec component C4). Event frames have no static field list; their
// payload shape is decoded per event-subtype instead.
type FieldTable struct {
	I []FieldDef // also used for P, by name; P has its own signed/predictor/encoding
	P []FieldDef
	S []FieldDef
	G []FieldDef
	H []FieldDef
}

// BuildFieldTable reads the "Field <T> name/signed/predictor/encoding"
// header lists for T in {I, S, G, H} and the P-frame's own
// signed/predictor/encoding lists (sharing I's names), assigning
// GroupIndex per §4.3/§4.4a.
func BuildFieldTable(h *Header) (*FieldTable, error) {
	names, signed, predictor, encoding, err := readLists(h, 'I')
	if err != nil {
		return nil, err
	}
	iFields, err := assembleFields(names, signed, predictor, encoding)
	if err != nil {
		return nil, err
	}

	pSigned, pPredictor, pEncoding, err := readFieldLists(h, 'P')
	if err != nil {
		return nil, err
	}
	pFields, err := assembleFields(names, pSigned, pPredictor, pEncoding)
	if err != nil {
		return nil, err
	}

	table := &FieldTable{I: iFields, P: pFields}

	for letter, dst := range map[byte]*[]FieldDef{'S': &table.S, 'G': &table.G, 'H': &table.H} {
		n, s, p, e, err := readLists(h, letter)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue // frame type not present in this session's header
		}

		fields, err := assembleFields(n, s, p, e)
		if err != nil {
			return nil, err
		}
		*dst = fields
	}

	return table, nil
}

// readLists returns the four parallel lists for frame-type letter T, or all
// nil if the session's header declares no fields for T at all.
func readLists(h *Header, letter byte) (names []string, signed, predictor, encoding []string, err error) {
	namesRaw, ok := h.Get("Field " + string(letter) + " name")
	if !ok {
		return nil, nil, nil, nil, nil
	}

	s, p, e, err := readFieldLists(h, letter)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return splitCSV(namesRaw), s, p, e, nil
}

// readFieldLists returns the signed/predictor/encoding lists for frame-type
// letter T (without the name list, since P reuses I's names).
func readFieldLists(h *Header, letter byte) (signed, predictor, encoding []string, err error) {
	prefix := "Field " + string(letter) + " "

	signedRaw, ok := h.Get(prefix + "signed")
	if !ok {
		return nil, nil, nil, errs.ErrMissingHeaderKey
	}
	predictorRaw, ok := h.Get(prefix + "predictor")
	if !ok {
		return nil, nil, nil, errs.ErrMissingHeaderKey
	}
	encodingRaw, ok := h.Get(prefix + "encoding")
	if !ok {
		return nil, nil, nil, errs.ErrMissingHeaderKey
	}

	return splitCSV(signedRaw), splitCSV(predictorRaw), splitCSV(encodingRaw), nil
}

// assembleFields zips the four per-field lists into FieldDefs, assigning
// GroupIndex by scanning the encoding list: an encoding whose GroupSize is k
// consumes k consecutive list entries in one group, indexed 0..k-1 (spec
// §4.3). An encoding of GroupSize 0 (NULL) consumes one list entry but
// contributes no raw token, per §4.4a.
func assembleFields(names, signed, predictor, encoding []string) ([]FieldDef, error) {
	n := len(names)
	if len(signed) != n || len(predictor) != n || len(encoding) != n {
		return nil, errs.ErrMalformedHeader
	}

	fields := make([]FieldDef, 0, n)

	for i := 0; i < n; {
		sgn, err := strconv.ParseBool(strings.TrimSpace(signed[i]))
		if err != nil {
			sgnInt, convErr := strconv.Atoi(strings.TrimSpace(signed[i]))
			if convErr != nil {
				return nil, errs.ErrMalformedHeader
			}
			sgn = sgnInt != 0
		}

		predInt, err := strconv.Atoi(strings.TrimSpace(predictor[i]))
		if err != nil {
			return nil, errs.ErrMalformedHeader
		}
		encInt, err := strconv.Atoi(strings.TrimSpace(encoding[i]))
		if err != nil {
			return nil, errs.ErrMalformedHeader
		}

		encKind := format.EncodingKind(encInt)
		groupSize := encKind.GroupSize()
		if groupSize <= 1 {
			fields = append(fields, FieldDef{
				Name:       names[i],
				Signed:     sgn,
				Predictor:  format.PredictorKind(predInt),
				Encoding:   encKind,
				GroupIndex: 0,
			})
			i++
			continue
		}

		if i+groupSize > n {
			return nil, errs.ErrMalformedHeader
		}

		for j := 0; j < groupSize; j++ {
			memberSgn, err := strconv.ParseBool(strings.TrimSpace(signed[i+j]))
			if err != nil {
				sgnInt, convErr := strconv.Atoi(strings.TrimSpace(signed[i+j]))
				if convErr != nil {
					return nil, errs.ErrMalformedHeader
				}
				memberSgn = sgnInt != 0
			}
			memberPred, err := strconv.Atoi(strings.TrimSpace(predictor[i+j]))
			if err != nil {
				return nil, errs.ErrMalformedHeader
			}

			fields = append(fields, FieldDef{
				Name:       names[i+j],
				Signed:     memberSgn,
				Predictor:  format.PredictorKind(memberPred),
				Encoding:   encKind,
				GroupIndex: j,
			})
		}
		i += groupSize
	}

	return fields, nil
}
