package config

import (
	"fmt"
	"os"
	"strings"
)

// Secret is a reference to a sensitive value. The value is only dereferenced
// at the point of use, so configuration files never need to embed raw keys.
type Secret string

type SecretType string

var Env SecretType = "env"
var File SecretType = "file"
var Raw SecretType = "raw"

func NewRawSecret(secret string) Secret {
	return Secret(fmt.Sprintf("raw:%s", secret))
}

func HasTypePrefix(secretRef string) bool {
	switch SecretType(strings.Split(secretRef, ":")[0]) {
	case Env, File, Raw:
		return true
	}
	return false
}

func (s Secret) Load() (string, error) {
	return GetSecret(string(s))
}

func (s Secret) LoadOrBlank() string {
	deref, _ := GetSecret(string(s))
	return deref
}

// GetSecret dereferences a secret reference of the form <type>:<value>.
// A reference without a recognized type prefix is treated as a raw value.
func GetSecret(secretRef string) (string, error) {
	parts := strings.SplitN(secretRef, ":", 2)
	if len(parts) != 2 {
		return secretRef, nil
	}
	value := parts[1]
	switch SecretType(parts[0]) {
	case Env:
		return strings.TrimSpace(os.Getenv(value)), nil
	case File:
		bz, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("could not read secret file: %v", err)
		}
		return strings.TrimSpace(string(bz)), nil
	case Raw:
		return value, nil
	default:
		return secretRef, nil
	}
}
