package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/retrogolib/assert"
)

func TestMarshalUnmarshal(t *testing.T) {
	img := program.Image{
		Registers: program.Registers{A: 109020013201563, B: 2, C: 3},
		Program:   []byte{2, 4, 1, 5, 7, 5, 0, 3, 4, 1, 1, 6, 5, 5, 3, 0},
	}

	data, err := Marshal(img)
	assert.NoError(t, err)

	decoded, err := Unmarshal(data)
	assert.NoError(t, err)
	if diff := cmp.Diff(img, decoded); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalCanonical(t *testing.T) {
	img := program.New(729, []byte{0, 1, 5, 4, 3, 0})

	first, err := Marshal(img)
	assert.NoError(t, err)
	second, err := Marshal(img)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestUnmarshalErrors(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := Unmarshal([]byte{0xff, 0x00})
		assert.Error(t, err)
	})

	t.Run("unknown version", func(t *testing.T) {
		data, err := cbor.Marshal(image{Version: 99})
		assert.NoError(t, err)

		_, err = Unmarshal(data)
		assert.True(t, errors.Is(err, ErrUnsupportedVersion))
	})

	t.Run("invalid program", func(t *testing.T) {
		data, err := cbor.Marshal(image{Version: Version, Program: []byte{0, 1, 5}})
		assert.NoError(t, err)

		_, err = Unmarshal(data)
		assert.True(t, errors.Is(err, program.ErrOddLength))
	})
}
