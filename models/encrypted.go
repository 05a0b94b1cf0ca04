package models

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql/driver"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var encryptionAEAD cipher.AEAD

// SetEncryptionKey installs the process-wide key used by EncryptedString
// columns. The key is hex encoded and must decode to 16, 24 or 32 bytes.
// Called once at startup, before any database access.
func SetEncryptionKey(hexKey string) error {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return fmt.Errorf("invalid encryption key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("invalid encryption key: %w", err)
	}
	encryptionAEAD, err = cipher.NewGCM(block)
	return err
}

// EncryptedString is a string column stored encrypted at rest. The
// database sees base64(nonce || ciphertext); application code sees the
// plaintext.
type EncryptedString string

func (e EncryptedString) Value() (driver.Value, error) {
	if encryptionAEAD == nil {
		return nil, errors.New("encryption key not configured")
	}
	if e == "" {
		return "", nil
	}
	nonce := make([]byte, encryptionAEAD.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := encryptionAEAD.Seal(nonce, nonce, []byte(e), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *EncryptedString) Scan(value interface{}) error {
	if encryptionAEAD == nil {
		return errors.New("encryption key not configured")
	}

	var raw string
	switch v := value.(type) {
	case nil:
		*e = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into EncryptedString", value)
	}
	if raw == "" {
		*e = ""
		return nil
	}

	sealed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("malformed encrypted column: %w", err)
	}
	if len(sealed) < encryptionAEAD.NonceSize() {
		return errors.New("malformed encrypted column: short ciphertext")
	}
	nonce, ciphertext := sealed[:encryptionAEAD.NonceSize()], sealed[encryptionAEAD.NonceSize():]
	plaintext, err := encryptionAEAD.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("failed to decrypt column: %w", err)
	}
	*e = EncryptedString(plaintext)
	return nil
}

// GormDataType keeps the column as text regardless of driver.
func (EncryptedString) GormDataType() string {
	return "text"
}
