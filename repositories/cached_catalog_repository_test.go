package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithCache_NilClientReturnsSource(t *testing.T) {
	repo, err := NewFixtureCatalogRepository("")
	require.NoError(t, err)

	got := WithCache(repo, nil, time.Minute, zap.NewNop())

	assert.Same(t, repo, got)
}
