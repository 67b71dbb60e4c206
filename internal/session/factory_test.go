package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/smartshot/internal/logging"
	"github.com/raysh454/smartshot/internal/session"
)

func TestListBackends_Defaults(t *testing.T) {
	session.RegisterDefaultBackends()

	backends := session.ListBackends()
	assert.Contains(t, backends, "remote")
	assert.Contains(t, backends, "local")
}

func TestOpener_RejectsInvalidConfig(t *testing.T) {
	opener := session.NewOpener(logging.Nop())

	s, err := opener.Open(context.Background(), session.Config{Variant: session.VariantLocal})
	require.ErrorIs(t, err, session.ErrConfig)
	assert.Nil(t, s)
}
