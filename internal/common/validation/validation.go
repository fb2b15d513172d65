package validation

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

const (
	MaxChatMessageLength = 500
	MaxTwitterUsername   = 15
)

var validate = validator.New()

// NormalizeAddress trims and lower-cases a wallet address. Every collection is
// keyed by the normalized form.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsValidAddress reports whether address is a 0x-prefixed 20-byte hex string.
func IsValidAddress(address string) bool {
	return validate.Var(address, "required,eth_addr") == nil
}

// ValidateAddress normalizes and checks an address.
func ValidateAddress(address string) (string, error) {
	normalized := NormalizeAddress(address)
	if normalized == "" {
		return "", fmt.Errorf("address is required")
	}
	if !IsValidAddress(normalized) {
		return "", fmt.Errorf("address must be a 0x-prefixed 40 hex character string")
	}
	return normalized, nil
}

// ValidateChatContent requires non-blank content of at most
// MaxChatMessageLength UTF-16 code units, the unit browsers count in.
func ValidateChatContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	if len(utf16.Encode([]rune(content))) > MaxChatMessageLength {
		return fmt.Errorf("message is too long (max %d characters)", MaxChatMessageLength)
	}
	return nil
}

// Struct runs tag validation on v.
func Struct(v interface{}) error {
	return validate.Struct(v)
}
