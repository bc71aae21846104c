package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by DetectAndDecode.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingLatin1  = "latin-1"
)

// BOM constants
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode detects the encoding of the input data, strips any BOM,
// and returns the decoded UTF-8 bytes along with the detected encoding name.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, EncodingUTF8, nil
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], EncodingUTF8BOM, nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data, EncodingUTF16LE)
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data, EncodingUTF16BE)
	}

	if utf8.Valid(data) {
		return data, EncodingUTF8, nil
	}

	// Every byte is a valid Latin-1 code point, so this never fails.
	return decodeWith(charmap.ISO8859_1, data, EncodingLatin1)
}

func decodeWith(enc encoding.Encoding, data []byte, name string) ([]byte, string, error) {
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s decode failed: %w", name, err)
	}
	return decoded, name, nil
}
