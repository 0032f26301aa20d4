package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func HashPasscode(passcode string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %v", err)
	}
	return string(hashed), nil
}

func CheckPasscode(hash, passcode string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
