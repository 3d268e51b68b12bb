// Package encoding converts bank statement exports of unknown charset
// into UTF-8 before parsing.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize bounds how much of the input the detector inspects.
const peekSize = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// bomDecoders maps UTF-16 byte order marks to their decoders.
var bomDecoders = []struct {
	bom     []byte
	decoder func() *encoding.Decoder
}{
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// NewUTF8Reader wraps r in a reader that yields UTF-8 regardless of the
// source charset.
//
// Detection order:
//  1. BOM (UTF-8 BOM stripped, UTF-16 LE/BE decoded)
//  2. Content that is already valid UTF-8 passes through
//  3. chardet heuristics for legacy single-byte charsets
//  4. Windows-1252 as the fallback
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	for _, bd := range bomDecoders {
		if bytes.HasPrefix(buf, bd.bom) {
			return transform.NewReader(br, bd.decoder()), nil
		}
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	if dec := detectLegacy(buf); dec != nil {
		return transform.NewReader(br, dec), nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// detectLegacy runs chardet over the sample and returns a decoder for
// the charsets worth distinguishing, or nil when the heuristic has
// nothing useful to say.
func detectLegacy(buf []byte) *encoding.Decoder {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	}

	return nil
}
