// Package errs defines the sentinel errors shared by the typedkv packages.
//
// Decode-side format problems (ErrShortBuffer, ErrTagMismatch, ErrMalformedBlob)
// are absorbed by the decoders and only surface through debug logging. The
// validation errors (ErrTextTooLong, ErrInvalidLiteral, ErrTypeMismatch) are
// returned to the caller of a write.
package errs

import "errors"

var (
	// ErrShortBuffer is returned when a read would run past the end of a buffer.
	ErrShortBuffer = errors.New("short buffer")
	// ErrTagMismatch is returned when a blob's tag byte is not the expected array tag.
	ErrTagMismatch = errors.New("array tag mismatch")
	// ErrMalformedBlob is returned when a blob is not valid base64 or has a bad shape.
	ErrMalformedBlob = errors.New("malformed blob")

	// ErrTextTooLong is returned when a string array element exceeds 255 bytes.
	ErrTextTooLong = errors.New("text exceeds maximum length")
	// ErrInvalidLiteral is returned when a literal cannot be parsed as the requested type.
	ErrInvalidLiteral = errors.New("invalid literal")
	// ErrTypeMismatch is returned when a Go value does not match the requested logical type.
	ErrTypeMismatch = errors.New("value does not match logical type")
	// ErrUnknownType is returned for a logical type outside the supported set.
	ErrUnknownType = errors.New("unknown logical type")

	// ErrChecksumMismatch is returned when a store snapshot fails verification.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrInvalidSnapshot is returned when a store snapshot has a bad header.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
