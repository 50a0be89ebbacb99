// Package generator produces the raw note content by invoking the
// configured AI CLI. The tool is an opaque collaborator: its only contract
// is returning markdown text on stdout.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Generator runs an external command to produce one note's markdown.
type Generator struct {
	command string
	args    []string
	prompt  string
	timeout time.Duration
}

// New creates a Generator. The prompt is appended as the command's final
// argument; args come before it verbatim.
func New(command string, args []string, prompt string, timeout time.Duration) *Generator {
	return &Generator{command: command, args: args, prompt: prompt, timeout: timeout}
}

// Generate invokes the CLI and returns its stdout as the note content.
// An empty stdout is an error: the pipeline has nothing to save.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(g.args)+1)
	args = append(args, g.args...)
	if g.prompt != "" {
		args = append(args, g.prompt)
	}

	cmd := exec.CommandContext(ctx, g.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("generator: %s: %w (%s)", g.command, err, msg)
		}
		return "", fmt.Errorf("generator: %s: %w", g.command, err)
	}

	content := stdout.String()
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("generator: %s produced no output", g.command)
	}
	return content, nil
}
