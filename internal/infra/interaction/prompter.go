// Where: cli/internal/infra/interaction/prompter.go
// What: Interactive prompts using the huh library.
// Why: Keyboard input for dates, keyword, and deletion confirmation.
package interaction

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

var runInputPrompt = func(title, placeholder string, input *string) error {
	field := huh.NewInput().
		Title(title).
		Value(input)
	if placeholder != "" {
		field.Placeholder(placeholder)
	}
	return field.Run()
}

var runConfirmPrompt = func(title string, confirmed *bool) error {
	return huh.NewConfirm().
		Title(title).
		Value(confirmed).
		Run()
}

// HuhPrompter implements the Prompter port using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Input(title, placeholder string) (string, error) {
	var input string
	if err := runInputPrompt(title, placeholder, &input); err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	if input == "" {
		return placeholder, nil
	}
	return input, nil
}

func (p HuhPrompter) Confirm(title string) (bool, error) {
	var confirmed bool
	if err := runConfirmPrompt(title, &confirmed); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return confirmed, nil
}
