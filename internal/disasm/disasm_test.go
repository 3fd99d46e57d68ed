package disasm

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var expectedDefault = `_label_0000:
  adv 3                          ; $0000 00 03
  out A                          ; $0002 05 04
  jnz _label_0000                ; $0004 03 00
`

var expectedNoOffsetNoHex = `_label_0000:
  bst A
  bxl 5
  cdv B
  adv 3
  bxc
  bxl 6
  out B
  jnz _label_0000
`

var expectedInnerLabel = `  out A                          ; $0000
  cdv 2                          ; $0002

_label_0004:
  adv 1                          ; $0004
  jnz _label_0004                ; $0006
  jnz 5                          ; $0008
`

var expectedInvalid = `.byte $00, $07                   ; $0000 invalid combo operand: adv 7 00 07
.byte $09, $01                   ; $0002 invalid opcode 9 09 01
.byte $02                        ; $0004 missing operand 02
`

func TestWrite(t *testing.T) {
	tests := []struct {
		name    string
		prog    []byte
		options Options
		want    string
	}{
		{
			name:    "default options",
			prog:    []byte{0, 3, 5, 4, 3, 0},
			options: NewOptions(),
			want:    expectedDefault,
		},
		{
			name:    "no offset and hex comments",
			prog:    []byte{2, 4, 1, 5, 7, 5, 0, 3, 4, 1, 1, 6, 5, 5, 3, 0},
			options: Options{},
			want:    expectedNoOffsetNoHex,
		},
		{
			name:    "label inside program",
			prog:    []byte{5, 4, 7, 2, 0, 1, 3, 4, 3, 5},
			options: Options{OffsetComments: true},
			want:    expectedInnerLabel,
		},
		{
			name:    "undecodable bytes",
			prog:    []byte{0, 7, 9, 1, 2},
			options: NewOptions(),
			want:    expectedInvalid,
		},
		{
			name:    "empty program",
			options: NewOptions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, Write(&buf, tt.prog, tt.options))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDisassemble(t *testing.T) {
	lines := Disassemble([]byte{0, 3, 5, 4, 3, 0})
	assert.Len(t, lines, 3)

	assert.Equal(t, 0, lines[0].Offset)
	assert.Equal(t, "_label_0000", lines[0].Label)
	assert.Equal(t, "adv 3", lines[0].Code)
	assert.Equal(t, "", lines[1].Label)
	assert.Equal(t, "out A", lines[1].Code)
	assert.Equal(t, 4, lines[2].Offset)
	assert.Equal(t, "jnz _label_0000", lines[2].Code)
	assert.Equal(t, "", lines[2].Comment)
}

func TestJumpTargets(t *testing.T) {
	targets := jumpTargets([]byte{3, 0, 3, 3, 3, 6, 3, 8})
	assert.Equal(t, 2, len(targets))
	assert.True(t, targets.Contains(0))
	assert.True(t, targets.Contains(6))
	assert.False(t, targets.Contains(3)) // misaligned
	assert.False(t, targets.Contains(8)) // past the end
}
