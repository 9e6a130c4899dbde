package emptytransport

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyStreamReadIsEOF(t *testing.T) {
	c := NewClient()
	assert.Equal(t, "Empty", c.Name())

	s, err := c.Connect(context.Background())
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := s.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestEmptyStreamWriteDiscards(t *testing.T) {
	s, err := NewClient().Connect(context.Background())
	require.NoError(t, err)

	n, err := s.Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())
}

func TestEmptyStreamIsEmptyTagged(t *testing.T) {
	s, err := NewClient().Connect(context.Background())
	require.NoError(t, err)

	_, ok := any(s).(interface{ IsEmptyStream() })
	assert.True(t, ok)
}
