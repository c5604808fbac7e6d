package encoding

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/internal/pool"
)

// MaxTextLength is the maximum length of one string array element, counted
// in UTF-8 bytes rather than characters: a string of 255 ASCII letters fits,
// but only 85 three-byte characters such as "日" do. Lengths are stored as a
// single uint8 in the length table.
const MaxTextLength = 255

// StringSeparator divides the base64 length table from the raw payload.
//
// It is not escaped. Base64 never produces it, and the decoder splits on the
// first occurrence, so payload strings may contain it freely.
const StringSeparator = '|'

// EncodeStrings encodes a string slice as a length table plus raw payload.
//
// Stored form:
//
//	base64([TagString][len0][len1]...[lenN-1]) + "|" + s0 + s1 + ... + sN-1
//
// Every string is validated before anything is written.
//
// Parameters:
//   - texts: Strings to encode (each at most 255 bytes)
//
// Returns:
//   - string: Stored form
//   - error: errs.ErrTextTooLong if any string exceeds MaxTextLength
func EncodeStrings(texts []string) (string, error) {
	payloadSize := 0
	for i, text := range texts {
		if len(text) > MaxTextLength {
			return "", fmt.Errorf("string %d: length %d exceeds maximum %d: %w", i, len(text), MaxTextLength, errs.ErrTextTooLong)
		}
		payloadSize += len(text)
	}

	table := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(table)

	table.ExtendOrGrow(1 + len(texts))
	t := table.Bytes()
	t[0] = byte(format.TagString)
	for i, text := range texts {
		t[1+i] = uint8(len(text)) //nolint:gosec
	}

	var sb strings.Builder
	sb.Grow(base64.StdEncoding.EncodedLen(len(t)) + 1 + payloadSize)
	sb.WriteString(base64.StdEncoding.EncodeToString(t))
	sb.WriteByte(StringSeparator)
	for _, text := range texts {
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// decodeStrings walks the length table and slices the payload.
// The payload must be consumed exactly.
func decodeStrings(stored string) ([]string, error) {
	sep := strings.IndexByte(stored, StringSeparator)
	if sep < 0 {
		return nil, fmt.Errorf("missing %q separator: %w", StringSeparator, errs.ErrMalformedBlob)
	}

	table, err := base64.StdEncoding.DecodeString(stored[:sep])
	if err != nil {
		return nil, fmt.Errorf("string table: %w: %w", errs.ErrMalformedBlob, err)
	}

	lengths, err := checkTag(table, format.TagString)
	if err != nil {
		return nil, err
	}

	payload := stored[sep+1:]
	out := make([]string, len(lengths))
	offset := 0
	for i, l := range lengths {
		end := offset + int(l)
		if end > len(payload) {
			return nil, fmt.Errorf("string %d ends at %d past payload of %d: %w", i, end, len(payload), errs.ErrShortBuffer)
		}
		out[i] = payload[offset:end]
		offset = end
	}

	if offset != len(payload) {
		return nil, fmt.Errorf("%d trailing payload bytes: %w", len(payload)-offset, errs.ErrMalformedBlob)
	}

	return out, nil
}
