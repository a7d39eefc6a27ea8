package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBrowserID(t *testing.T) {
	a, err := GenerateBrowserID()
	require.NoError(t, err)
	b, err := GenerateBrowserID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, IsValidBrowserID(a))
	assert.True(t, IsValidBrowserID(b))
}

func TestIsValidBrowserID(t *testing.T) {
	assert.False(t, IsValidBrowserID(""))
	assert.False(t, IsValidBrowserID("short"))
	assert.False(t, IsValidBrowserID("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
}
