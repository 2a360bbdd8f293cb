package render

import (
	"testing"

	"github.com/ndsquared/snakecore/internal/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGIFProducesValidMagicBytes(t *testing.T) {
	boards := []*snake.Board{testBoard(), testBoard()}
	data, err := RenderGIF(boards, 0)
	require.NoError(t, err)
	require.True(t, len(data) > 6)
	assert.Equal(t, "GIF89a", string(data[:6]))
}

func TestRenderGIFRejectsEmptyFrameList(t *testing.T) {
	_, err := RenderGIF(nil, 0)
	assert.Error(t, err)
}

func TestRenderGIFHandlesSingleFrame(t *testing.T) {
	data, err := RenderGIF([]*snake.Board{testBoard()}, 5)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
}
