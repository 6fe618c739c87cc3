package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStripsTimeAttr(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Info("hello", "key", "value")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
	assert.NotContains(t, buf.String(), `"time"`)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	ctx := NewContext(context.Background(), logger)

	require.Same(t, logger, FromContextOrDiscard(ctx))
}

func TestFromContextDiscards(t *testing.T) {
	logger := FromContextOrDiscard(context.Background())
	require.NotNil(t, logger)
	logger.Info("goes nowhere")
}
