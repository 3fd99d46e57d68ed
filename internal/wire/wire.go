// Package wire encodes program images as compact CBOR documents.
package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/retroenv/quinevm/internal/program"
)

// Version is the current image format version.
const Version = 1

// ErrUnsupportedVersion is returned for images written by an unknown format version.
var ErrUnsupportedVersion = errors.New("unsupported image version")

// canonical encoding keeps images of the same program byte identical.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// image is the encoded form of a program image.
type image struct {
	Version uint8  `cbor:"1,keyasint"`
	A       uint64 `cbor:"2,keyasint"`
	B       uint64 `cbor:"3,keyasint"`
	C       uint64 `cbor:"4,keyasint"`
	Program []byte `cbor:"5,keyasint"`
}

// Marshal serializes a program image to CBOR bytes.
func Marshal(img program.Image) ([]byte, error) {
	enc := image{
		Version: Version,
		A:       img.Registers.A,
		B:       img.Registers.B,
		C:       img.Registers.C,
		Program: img.Program,
	}
	data, err := cborEncMode.Marshal(enc)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal image: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes a program image from CBOR bytes and validates it.
func Unmarshal(data []byte) (program.Image, error) {
	var dec image
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return program.Image{}, fmt.Errorf("wire: unmarshal image: %w", err)
	}
	if dec.Version != Version {
		return program.Image{}, fmt.Errorf("wire: %w: %d", ErrUnsupportedVersion, dec.Version)
	}

	img := program.Image{
		Registers: program.Registers{
			A: dec.A,
			B: dec.B,
			C: dec.C,
		},
		Program: dec.Program,
	}
	if err := img.Validate(); err != nil {
		return program.Image{}, fmt.Errorf("wire: invalid image: %w", err)
	}
	return img, nil
}
