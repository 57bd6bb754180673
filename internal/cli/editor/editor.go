package editor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command resolves the editor to run: $QUILL_EDITOR, then $EDITOR, then vi.
func Command() string {
	for _, env := range []string{"QUILL_EDITOR", "EDITOR"} {
		if editor := strings.TrimSpace(os.Getenv(env)); editor != "" {
			return editor
		}
	}

	return "vi"
}

// Open opens filePath in the user's editor and waits for it to exit.
// The editor value may carry arguments, e.g. "code --wait".
func Open(filePath string) error {
	parts := strings.Fields(Command())

	slog.Info("Opening post in editor", "editor", parts[0], "path", filePath)

	//nolint:gosec // Editor command is chosen by the user
	cmd := exec.Command(parts[0], append(parts[1:], filePath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		slog.Info("You can manually edit the post", "path", filePath)
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}
