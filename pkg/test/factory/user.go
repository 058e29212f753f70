package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"

	"todolist/internal/core/domain"
)

// DefaultPassword is the plaintext behind every factory user's hash.
const DefaultPassword = "12345678"

// NewUser merges its defaults with the caller's overrides into a single map:
// fabricator's Build only honors the first override map it receives.
func NewUser(customData ...map[string]any) domain.User {
	data := mergeCustomData(customData)

	if _, exists := data["EncryptedPassword"]; !exists {
		encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		data["EncryptedPassword"] = string(encryptedPassword)
	}

	if _, exists := data["Active"]; !exists {
		data["Active"] = true
	}

	return fab.New(domain.User{}).Build(data)
}

func mergeCustomData(customData []map[string]any) map[string]any {
	data := map[string]any{}

	for _, overrides := range customData {
		for key, value := range overrides {
			data[key] = value
		}
	}

	return data
}
