package webhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	router := NewRouter()
	router.Register("transfer.settled", func(ctx context.Context, payload map[string]any) (map[string]any, error) {
		return map[string]any{"acknowledged": payload["transfer_id"]}, nil
	})

	result, err := router.Dispatch(context.Background(), "transfer.settled", map[string]any{"transfer_id": "ACH-1"})
	require.NoError(t, err)
	assert.Equal(t, "ACH-1", result["acknowledged"])
}

func TestDispatch_UnknownEvent(t *testing.T) {
	router := NewRouter()

	_, err := router.Dispatch(context.Background(), "unknown.event", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown.event")
}

func TestRegister_Replaces(t *testing.T) {
	router := NewRouter()
	router.Register("e", func(ctx context.Context, payload map[string]any) (map[string]any, error) {
		return map[string]any{"v": 1}, nil
	})
	router.Register("e", func(ctx context.Context, payload map[string]any) (map[string]any, error) {
		return map[string]any{"v": 2}, nil
	})

	result, err := router.Dispatch(context.Background(), "e", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result["v"])
}
