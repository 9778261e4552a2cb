package location

import (
	"io"
	"os"

	"github.com/manifoldco/promptui"
)

// TerminalPrompter implements Prompter on an interactive terminal.
type TerminalPrompter struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewTerminalPrompter prompts on the process's standard streams.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{Stdin: os.Stdin, Stdout: os.Stdout}
}

func (p *TerminalPrompter) Input(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}
	return prompt.Run()
}

func (p *TerminalPrompter) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   10,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}
	idx, _, err := sel.Run()
	return idx, err
}
