package header

import "bytes"

// Signature is the ASCII product-signature line that marks the start of a
// session's header block.
const Signature = "H Product:Blackbox flight data recorder by Nicholas Sherlock"

// FindSessionOffsets returns the byte offset of every non-overlapping
// occurrence of Signature in data, in ascending order. The returned slice is
// LogPointers (spec §3): its length is the file's session count.
func FindSessionOffsets(data []byte) []int {
	sig := []byte(Signature)

	var offsets []int
	pos := 0
	for {
		idx := bytes.Index(data[pos:], sig)
		if idx < 0 {
			break
		}
		offsets = append(offsets, pos+idx)
		pos += idx + len(sig)
	}

	return offsets
}

// hasSignatureAt reports whether data begins with Signature at offset.
func hasSignatureAt(data []byte, offset int) bool {
	sig := []byte(Signature)
	if offset < 0 || offset+len(sig) > len(data) {
		return false
	}

	return bytes.Equal(data[offset:offset+len(sig)], sig)
}

// scanHeaderLines reads consecutive "H <body>\n" lines starting at offset,
// stopping at the first byte that does not begin such a line — that byte is
// the first frame-type token of the payload. Each returned string is a line
// body with the "H " prefix and trailing newline stripped.
func scanHeaderLines(data []byte, offset int) (lines []string, payloadStart int) {
	pos := offset
	for pos < len(data) {
		if data[pos] != 'H' || pos+1 >= len(data) || data[pos+1] != ' ' {
			break
		}

		lineStart := pos + 2
		nl := bytes.IndexByte(data[lineStart:], '\n')
		if nl < 0 {
			lines = append(lines, string(trimCR(data[lineStart:])))
			pos = len(data)
			break
		}

		lines = append(lines, string(trimCR(data[lineStart:lineStart+nl])))
		pos = lineStart + nl + 1
	}

	return lines, pos
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}

	return b
}
