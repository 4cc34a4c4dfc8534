package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-adjust/internal/core"
)

func gray(t *testing.T, v uint8) core.Image {
	t.Helper()
	img, err := core.NewUniform(2, 2, v, v, v)
	require.NoError(t, err)
	return img
}

func TestUndoOnFreshStack(t *testing.T) {
	s := NewStack(0)
	original := gray(t, 10)
	require.NoError(t, s.Reset(original))

	img, err := s.Undo()
	assert.ErrorIs(t, err, core.ErrNoMoreUndo)
	assert.True(t, original.Equal(img))
	assert.Equal(t, 1, s.Len())
}

func TestPushThenUndo(t *testing.T) {
	s := NewStack(0)
	original := gray(t, 10)
	require.NoError(t, s.Reset(original))
	require.NoError(t, s.Push(gray(t, 20)))
	require.NoError(t, s.Push(gray(t, 30)))

	top, ok := s.Top()
	require.True(t, ok)
	assert.True(t, gray(t, 30).Equal(top))

	img, err := s.Undo()
	require.NoError(t, err)
	assert.True(t, gray(t, 20).Equal(img))

	img, err = s.Undo()
	require.NoError(t, err)
	assert.True(t, original.Equal(img))

	img, err = s.Undo()
	assert.ErrorIs(t, err, core.ErrNoMoreUndo)
	assert.True(t, original.Equal(img))
	assert.Equal(t, 1, s.Len())
}

func TestReset(t *testing.T) {
	s := NewStack(0)
	require.NoError(t, s.Reset(gray(t, 1)))
	require.NoError(t, s.Push(gray(t, 2)))

	require.NoError(t, s.Reset(gray(t, 3)))
	assert.Equal(t, 1, s.Len())
	base, ok := s.Base()
	require.True(t, ok)
	assert.True(t, gray(t, 3).Equal(base))

	assert.ErrorIs(t, s.Reset(core.Image{}), core.ErrInvalidInput)
}

func TestBoundedStackKeepsBase(t *testing.T) {
	s := NewStack(3)
	original := gray(t, 0)
	require.NoError(t, s.Reset(original))
	for v := uint8(1); v <= 5; v++ {
		require.NoError(t, s.Push(gray(t, v)))
	}
	assert.Equal(t, 3, s.Len())

	img, err := s.Undo()
	require.NoError(t, err)
	assert.True(t, gray(t, 4).Equal(img))

	img, err = s.Undo()
	require.NoError(t, err)
	assert.True(t, original.Equal(img))

	t.Run("limit of one keeps only the base", func(t *testing.T) {
		s := NewStack(1)
		require.NoError(t, s.Reset(original))
		require.NoError(t, s.Push(gray(t, 9)))
		assert.Equal(t, 1, s.Len())
	})
}

func TestEmptyStack(t *testing.T) {
	s := NewStack(0)

	_, ok := s.Top()
	assert.False(t, ok)

	_, err := s.Undo()
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.ErrorIs(t, s.Push(gray(t, 1)), core.ErrInvalidInput)
	assert.ErrorIs(t, s.Push(core.Image{}), core.ErrInvalidInput)
}
