package configs

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

// SessionKeys are the decoded cookie and CSRF secrets. EncKey is an AES key, CSRFKey is
// always 32 bytes as gorilla/csrf requires.
type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	CSRFKey []byte
}

// LoadSessionKeys decodes APP_AUTH_KEY, APP_ENC_KEY and the optional APP_CSRF_KEY. Without
// APP_CSRF_KEY the CSRF key is derived from the auth key, so cookie signing and CSRF tokens
// never share key bytes.
func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	authKey, err := decodeKey("APP_AUTH_KEY", env.AppAuthKey, func(n int) bool { return n >= 32 })
	if err != nil {
		return nil, err
	}
	encKey, err := decodeKey("APP_ENC_KEY", env.AppEncKey, func(n int) bool { return n == 16 || n == 24 || n == 32 })
	if err != nil {
		return nil, err
	}

	csrfKey := deriveCSRFKey(authKey)
	if env.AppCSRFKey != "" {
		csrfKey, err = decodeKey("APP_CSRF_KEY", env.AppCSRFKey, func(n int) bool { return n == 32 })
		if err != nil {
			return nil, err
		}
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey, CSRFKey: csrfKey}, nil
}

func decodeKey(name, value string, validLen func(int) bool) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is not set", name)
	}
	key, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if !validLen(len(key)) {
		return nil, fmt.Errorf("%s decodes to %d bytes, which is not a valid key length", name, len(key))
	}
	return key, nil
}

func deriveCSRFKey(authKey []byte) []byte {
	mac := hmac.New(sha256.New, authKey)
	mac.Write([]byte("catalog-admin csrf"))
	return mac.Sum(nil)
}

// WriteSessionKeys generates a fresh key set and writes it to path in .env format.
func WriteSessionKeys(path string) error {
	keys := map[string]int{"APP_AUTH_KEY": 64, "APP_ENC_KEY": 32, "APP_CSRF_KEY": 32}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	for _, name := range []string{"APP_AUTH_KEY", "APP_ENC_KEY", "APP_CSRF_KEY"} {
		key := securecookie.GenerateRandomKey(keys[name])
		if key == nil {
			return fmt.Errorf("could not generate %s", name)
		}
		if _, err := fmt.Fprintf(file, "%s=%s\n", name, base64.URLEncoding.EncodeToString(key)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
