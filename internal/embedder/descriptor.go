// Package embedder talks to the face embedding service and provides the
// descriptor type used throughout the application. A descriptor is a
// fixed-length vector representing one detected face; it is computed once
// at upload time and never recomputed.
package embedder

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
)

// Descriptor is a face embedding vector produced by the embedding service.
type Descriptor []float32

// descriptorHeaderSize is the length prefix of the serialized form.
const descriptorHeaderSize = 4

// Bytes returns the raw little-endian byte representation of the vector
// without the length prefix. This representation feeds Fingerprint.
func (d Descriptor) Bytes() []byte {
	buf := make([]byte, len(d)*4)
	for i, v := range d {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Encode serializes the descriptor for storage: a little-endian uint32
// dimension followed by the raw vector bytes.
func (d Descriptor) Encode() []byte {
	buf := make([]byte, descriptorHeaderSize, descriptorHeaderSize+len(d)*4)
	binary.LittleEndian.PutUint32(buf, uint32(len(d)))
	return append(buf, d.Bytes()...)
}

// Fingerprint returns the sha256 hex digest of the raw vector bytes.
// It identifies a specific extraction result, not a person: the same face
// in a different photo produces a different descriptor and fingerprint.
func (d Descriptor) Fingerprint() string {
	sum := sha256.Sum256(d.Bytes())
	return hex.EncodeToString(sum[:])
}

// Decode deserializes a descriptor previously produced by Encode.
func Decode(data []byte) (Descriptor, error) {
	if len(data) < descriptorHeaderSize {
		return nil, errors.New("descriptor data too short")
	}
	dim := binary.LittleEndian.Uint32(data)
	if dim == 0 {
		return nil, errors.New("descriptor has zero dimension")
	}
	payload := data[descriptorHeaderSize:]
	if uint32(len(payload)) != dim*4 {
		return nil, fmt.Errorf("descriptor payload is %d bytes, want %d for dim %d", len(payload), dim*4, dim)
	}
	d := make(Descriptor, dim)
	for i := range d {
		d[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
	}
	return d, nil
}
