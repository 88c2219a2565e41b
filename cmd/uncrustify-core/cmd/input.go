package cmd

import (
	"fmt"
	"os"
)

// resolveInput mirrors a lex command's "-e inline snippet or
// positional file path" input selection.
func resolveInput(evalExpr string, args []string) (src, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline code")
	}
}
