// Package admin verifies the identity of callers of admin-only endpoints.
package admin

import (
	"crypto/subtle"
	"strings"

	"slapflip-backend/internal/common/config"
	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/validation"
)

// SecretIdentity is recorded as approvedBy/deniedBy when the shared secret is used.
const SecretIdentity = "admin"

// Credentials are the caller-supplied admin credentials.
type Credentials struct {
	Address  string
	Password string
}

// Gate checks exactly one mechanism, chosen at construction.
type Gate struct {
	mode      string
	addresses map[string]struct{}
	password  string
}

func NewGate(mode string, addresses []string, password string) *Gate {
	set := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		if n := validation.NormalizeAddress(a); n != "" {
			set[n] = struct{}{}
		}
	}
	return &Gate{
		mode:      strings.ToLower(mode),
		addresses: set,
		password:  password,
	}
}

func NewGateFromConfig(cfg *config.Config) *Gate {
	return NewGate(cfg.Admin.Mode, cfg.Admin.Addresses, cfg.Admin.Password)
}

func (g *Gate) Mode() string {
	return g.mode
}

// Verify returns the admin identity or an error. It never touches storage.
func (g *Gate) Verify(creds Credentials) (string, error) {
	switch g.mode {
	case config.AdminModeAllowlist:
		addr := validation.NormalizeAddress(creds.Address)
		if addr == "" {
			return "", apperrors.NewValidationError("adminAddress", "admin address is required")
		}
		if _, ok := g.addresses[addr]; !ok {
			return "", apperrors.NewForbiddenError("address is not an admin")
		}
		return addr, nil
	case config.AdminModeSecret:
		if creds.Password == "" {
			return "", apperrors.NewValidationError("adminPassword", "admin password is required")
		}
		if g.password == "" || subtle.ConstantTimeCompare([]byte(creds.Password), []byte(g.password)) != 1 {
			return "", apperrors.NewForbiddenError("invalid admin password")
		}
		return SecretIdentity, nil
	default:
		return "", apperrors.NewForbiddenError("admin access is not configured")
	}
}
