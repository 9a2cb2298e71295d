package static

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets(t *testing.T) {
	assets, err := Assets()
	require.NoError(t, err)

	css, err := fs.ReadFile(assets, "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), ".flash-error")
}
