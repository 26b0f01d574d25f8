package cli

import (
	"errors"
	"fmt"

	"github.com/Leandrogm81/Compromissos/internal/keyring"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the AI API key in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show whether an AI API key is stored."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the AI API key from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
}

// KeyringSetCmd stores the AI API key in the OS keyring
type KeyringSetCmd struct {
	APIKey string `arg:"" help:"DeepSeek API key to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if err := keyring.SetAPIKey(cmd.APIKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}

	fmt.Println("✓ API key stored successfully in OS keyring")
	fmt.Println("  The suggest command will use it automatically")
	return nil
}

// KeyringGetCmd reports whether an API key is stored, without printing it
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring. Use 'compromissos keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}

	fmt.Printf("API key present in keyring: %s\n", maskKey(key))
	return nil
}

// maskKey shows only the first and last few characters of a secret
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// KeyringDeleteCmd removes the API key from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	err := keyring.DeleteAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}

	fmt.Println("✓ API key deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	if keyring.IsAvailable() {
		fmt.Println("✓ OS keyring is available")
		return nil
	}

	fmt.Println("❌ OS keyring is not available")
	fmt.Println("   Set DEEPSEEK_API_KEY or ai.api_key in the config file instead")
	return nil
}
