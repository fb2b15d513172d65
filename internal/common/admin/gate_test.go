package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slapflip-backend/internal/common/config"
	apperrors "slapflip-backend/internal/common/errors"
)

const adminAddr = "0x06C8E296cc63B15b17878b673a9d58E71EA7508b"

func TestGateAllowlist(t *testing.T) {
	g := NewGate(config.AdminModeAllowlist, []string{adminAddr}, "ignored")

	id, err := g.Verify(Credentials{Address: "0x06c8e296cc63b15b17878b673a9d58e71ea7508b"})
	require.NoError(t, err)
	assert.Equal(t, "0x06c8e296cc63b15b17878b673a9d58e71ea7508b", id)

	_, err = g.Verify(Credentials{Address: "0x85E6cC88F3055b589eb1d4030863be2CFcc0763E"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	// the secret is not a second way in when the allow-list is configured
	_, err = g.Verify(Credentials{Password: "ignored"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestGateSecret(t *testing.T) {
	g := NewGate(config.AdminModeSecret, []string{adminAddr}, "s3cret")

	id, err := g.Verify(Credentials{Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, SecretIdentity, id)

	_, err = g.Verify(Credentials{Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = g.Verify(Credentials{Address: adminAddr})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestGateSecretEmptyServerValueRejects(t *testing.T) {
	g := NewGate(config.AdminModeSecret, nil, "")
	_, err := g.Verify(Credentials{Password: "anything"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestGateUnknownMode(t *testing.T) {
	g := NewGate("both", []string{adminAddr}, "x")
	_, err := g.Verify(Credentials{Address: adminAddr, Password: "x"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}
