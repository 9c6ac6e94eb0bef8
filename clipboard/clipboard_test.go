package clipboard_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/fwojciec/lintview/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Copy(t *testing.T) {
	t.Parallel()

	location := "editor:///w/main.py#3:4"
	encoded := base64.StdEncoding.EncodeToString([]byte(location))

	t.Run("writes OSC52 sequence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, clipboard.NewTerminal(&buf, false).Copy(location))

		out := buf.String()
		assert.True(t, len(out) > 0 && out[0] == 0x1b)
		assert.Contains(t, out, "]52;c;"+encoded)
	})

	t.Run("wraps sequence for tmux", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, clipboard.NewTerminal(&buf, true).Copy(location))

		assert.Contains(t, buf.String(), "Ptmux;")
		assert.Contains(t, buf.String(), encoded)
	})
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, clipboard.Detect(&bytes.Buffer{}, false))
}
