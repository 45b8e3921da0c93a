package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type TokenGenerator struct{}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

// GenerateSessionToken issues the opaque token that scopes a cart and its
// checkout session. Handed to the client on first contact.
func (g *TokenGenerator) GenerateSessionToken() (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	return fmt.Sprintf("ct_%s", hex.EncodeToString(randomBytes)), nil
}

func (g *TokenGenerator) GenerateAttemptID() string {
	randomBytes := make([]byte, 5) // 5 bytes will give us 10 hex chars
	if _, err := rand.Read(randomBytes); err != nil {
		return ""
	}
	return fmt.Sprintf("ca-%s", hex.EncodeToString(randomBytes))
}
