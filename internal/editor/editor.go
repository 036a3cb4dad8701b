// Package editor shells out to the user's text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Open runs the editor on filePath in the foreground, attached to the
// terminal. Compound editor commands ("open -a Cursor") run via sh -c.
func Open(editor, filePath string) error {
	if editor == "" {
		return fmt.Errorf("no editor configured (set 'editor' in lapis.toml or $EDITOR)")
	}

	var cmd *exec.Cmd
	if strings.Contains(editor, " ") {
		cmd = exec.Command("sh", "-c", editor+" "+shellQuote(filePath))
	} else {
		cmd = exec.Command(editor, filePath)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor '%s' failed: %w", editor, err)
	}
	return nil
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
