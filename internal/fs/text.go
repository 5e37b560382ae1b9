package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30

	// DefaultMaxDocumentBytes caps documents read from disk.
	DefaultMaxDocumentBytes = 1 << 20
)

var (
	// ErrBinaryContent is returned for content that does not look like text.
	ErrBinaryContent = errors.New("content is not text")
	// ErrTooLarge is returned for documents over the size limit.
	ErrTooLarge = errors.New("document too large")
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z":   {},
	".bin":  {},
	".bmp":  {},
	".docx": {},
	".exe":  {},
	".gif":  {},
	".gz":   {},
	".jpeg": {},
	".jpg":  {},
	".pdf":  {},
	".png":  {},
	".so":   {},
	".tar":  {},
	".wasm": {},
	".webp": {},
	".zip":  {},
}

// ReadDocument reads a markup document from path and returns it decoded and
// normalized. maxBytes <= 0 means DefaultMaxDocumentBytes.
func ReadDocument(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}
	if looksBinaryByExtension(path) {
		return "", fmt.Errorf("%s: %w", path, ErrBinaryContent)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(content)) > maxBytes {
		return "", fmt.Errorf("%s exceeds %d bytes: %w", path, maxBytes, ErrTooLarge)
	}

	text, err := DecodeDocument(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// DecodeDocument turns raw bytes into document text: it rejects binary
// content, decodes BOM-marked UTF-8/UTF-16, converts CRLF and lone CR line
// endings to '\n' and applies NFC so offsets are stable across inputs.
func DecodeDocument(content []byte) (string, error) {
	if !IsText(content) {
		return "", ErrBinaryContent
	}
	return NormalizeDocument(NormalizeTextContent(content)), nil
}

// NormalizeDocument applies line ending and NFC normalization to text that
// is already UTF-8.
func NormalizeDocument(text string) string {
	if strings.ContainsRune(text, '\r') {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	return norm.NFC.String(text)
}

// IsText sniffs the first bytes of content.
func IsText(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}

	if enc := detectUnicodeEncoding(sample); enc != encodingUnknown {
		return true
	}

	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}

	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func looksBinaryByExtension(path string) bool {
	if path == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := binaryExtensions[ext]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

// NormalizeTextContent converts BOM-marked content into a UTF-8 string.
func NormalizeTextContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
