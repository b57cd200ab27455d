package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"tenderhunt-engine/internal/config"
)

// KeyringService groups the app's secrets in the OS keychain.
const KeyringService = "tenderhunt"

func GetResendAPIKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		key, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}
	return "", errors.New("Resend API key not found in keychain")
}

func SetResendAPIKey(keyringAccount, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteResendAPIKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func GetSMTPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	return "", errors.New("SMTP password not found in keychain")
}

func SetSMTPPassword(keyringAccount, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func ResendKeyringAccount(cfg config.Config) string {
	if cfg.Email.KeyringAccount != "" {
		return cfg.Email.KeyringAccount
	}
	return fmt.Sprintf("tenderhunt:resend:%s", cfg.Email.From)
}

func SMTPKeyringAccount(cfg config.Config) string {
	if cfg.Email.SMTP.KeyringAccount != "" {
		return cfg.Email.SMTP.KeyringAccount
	}
	return fmt.Sprintf("tenderhunt:smtp:%s@%s", cfg.Email.SMTP.Username, cfg.Email.SMTP.Host)
}
