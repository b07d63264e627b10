package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MembershipTokenPrefix marks opaque membership tokens encoded into customer QR codes
	MembershipTokenPrefix = "LJ-"
	// CardCodePrefix marks generated loyalty card codes
	CardCodePrefix = "CARD-"
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateRandomToken generates a random hex token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateCardCode returns a new uppercase card code such as CARD-9F3A61C07B2E.
func GenerateCardCode() (string, error) {
	token, err := GenerateRandomToken(6)
	if err != nil {
		return "", err
	}
	return CardCodePrefix + strings.ToUpper(token), nil
}

// GenerateMembershipToken derives the opaque QR token for a membership.
// The digest binds customer, card and business to a random nonce so the token
// cannot be guessed from the ids alone.
func GenerateMembershipToken(customerID, cardID, businessID string) (string, error) {
	nonce, err := GenerateRandomToken(16)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(customerID + "|" + cardID + "|" + businessID + "|" + nonce))
	return MembershipTokenPrefix + strings.ToUpper(hex.EncodeToString(sum[:16])), nil
}

// GenerateTemporaryPassword returns a random password handed out once when an
// account is provisioned on someone else's behalf.
func GenerateTemporaryPassword() (string, error) {
	return GenerateRandomToken(9)
}
