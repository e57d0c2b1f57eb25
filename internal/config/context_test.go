package config

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithManager(t *testing.T) {
	mgr := NewManager(afero.NewMemMapFs())
	_, err := mgr.Load(context.Background(), NewDefaultSource())
	require.NoError(t, err)

	ctx := ContextWithManager(context.Background(), mgr)
	assert.Same(t, mgr, ManagerFromContext(ctx))

	cfg := FromContext(ctx)
	require.NotNil(t, cfg)
	assert.Equal(t, "mom", cfg.CommandName)
}

func TestFromContextWithoutManager(t *testing.T) {
	assert.Nil(t, ManagerFromContext(context.Background()))
	assert.Nil(t, FromContext(context.Background()))
}
