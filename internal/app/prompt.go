package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrNoAPIKey is returned when the prompt is cancelled or left empty.
var ErrNoAPIKey = errors.New("no API key entered")

// PromptAPIKey asks for the provider credential with a masked input. It
// blocks until the user submits or aborts.
func PromptAPIKey(provider string) (string, error) {
	var key string
	input := huh.NewInput().
		Title(fmt.Sprintf("Enter your %s API key", provider)).
		Description("Not found in LLM_API_KEY or .env").
		EchoMode(huh.EchoModePassword).
		Value(&key)

	err := huh.NewForm(huh.NewGroup(input)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrNoAPIKey
		}
		return "", fmt.Errorf("prompt api key: %w", err)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}
