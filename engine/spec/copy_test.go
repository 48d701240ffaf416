package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneNode(t *testing.T) {
	t.Run("Should produce an independent unit copy", func(t *testing.T) {
		original := &Unit{
			Mark: MarkDef{Type: MarkLine},
			Encoding: Encoding{
				ChannelX: {Field: FieldRef{Name: "date"}, Type: "temporal"},
			},
		}
		cloned, err := CloneNode(original)
		require.NoError(t, err)

		copy := cloned.(*Unit)
		copy.Mark.Type = MarkBar
		copy.Encoding[ChannelX].Field.Name = "other"

		assert.Equal(t, MarkLine, original.Mark.Type)
		assert.Equal(t, "date", original.Encoding[ChannelX].Field.Name)
	})

	t.Run("Should not alias interface-typed children", func(t *testing.T) {
		original := &Layer{
			Layer: []Node{
				&Unit{Mark: MarkDef{Type: MarkLine}},
				&Unit{Mark: MarkDef{Type: MarkPoint}},
			},
		}
		cloned, err := CloneNode(original)
		require.NoError(t, err)

		copy := cloned.(*Layer)
		copy.Layer[0].(*Unit).Mark.Type = MarkBar

		assert.Equal(t, MarkLine, original.Layer[0].(*Unit).Mark.Type)
	})

	t.Run("Should copy a repeat template held behind the spec field", func(t *testing.T) {
		original := &Repeat{
			Repeat: RepeatDef{Flat: []string{"a", "b"}},
			Spec:   &Unit{Mark: MarkDef{Type: MarkLine}},
		}
		cloned, err := CloneNode(original)
		require.NoError(t, err)

		copy := cloned.(*Repeat)
		copy.Spec.(*Unit).Mark.Type = MarkArea
		copy.Repeat.Flat[0] = "z"

		assert.Equal(t, MarkLine, original.Spec.(*Unit).Mark.Type)
		assert.Equal(t, "a", original.Repeat.Flat[0])
	})

	t.Run("Should return nil for a nil node", func(t *testing.T) {
		cloned, err := CloneNode(nil)
		require.NoError(t, err)
		assert.Nil(t, cloned)
	})
}
