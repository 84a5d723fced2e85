package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoEditor is returned when neither VISUAL nor EDITOR is set.
var ErrNoEditor = errors.New("EDITOR not set. Set it or use --type/--value instead of -i")

// Editor is an external editor command such as "vim" or "code --wait".
type Editor struct {
	Command []string
}

// EditorFromEnv returns the editor named by VISUAL, falling back to EDITOR.
func EditorFromEnv() (Editor, error) {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(key)); len(fields) > 0 {
			return Editor{Command: fields}, nil
		}
	}
	return Editor{}, ErrNoEditor
}

// Edit writes content to a temporary file with the given suffix, runs the
// editor on it and returns the saved content.
func (e Editor) Edit(content []byte, suffix string) ([]byte, error) {
	if len(e.Command) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}

	f, err := os.CreateTemp("", "dk-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	_, err = f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	cmd := exec.Command(e.Command[0], append(e.Command[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return nil, fmt.Errorf("failed to run editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return edited, nil
}

// EditYAML renders in as YAML below a commented header, opens it in the
// user's editor and decodes the result into out. changed is false when
// the file was saved untouched or emptied.
func EditYAML(header string, in, out any) (changed bool, err error) {
	editor, err := EditorFromEnv()
	if err != nil {
		return false, err
	}

	var buf bytes.Buffer
	for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
		fmt.Fprintf(&buf, "# %s\n", line)
	}
	body, err := yaml.Marshal(in)
	if err != nil {
		return false, fmt.Errorf("failed to encode YAML: %w", err)
	}
	buf.WriteByte('\n')
	buf.Write(body)
	original := buf.Bytes()

	edited, err := editor.Edit(original, ".yaml")
	if err != nil {
		return false, err
	}
	if bytes.Equal(edited, original) || isBlankYAML(edited) {
		return false, nil
	}

	if err := yaml.Unmarshal(edited, out); err != nil {
		return false, fmt.Errorf("invalid YAML: %w", err)
	}
	return true, nil
}

// isBlankYAML reports whether data holds only comments and whitespace.
func isBlankYAML(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return false
		}
	}
	return true
}
