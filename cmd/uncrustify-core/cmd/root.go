package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	trace bool
	log   = logrus.StandardLogger()
)

var rootCmd = &cobra.Command{
	Use:   "uncrustify-core",
	Short: "Front-end pipeline for the Uncrustify source beautifier",
	Long: `uncrustify-core lexes, frames, and classifies source text for a
family of curly-brace languages (C, C++, C#, D, Java, Objective-C,
Pawn, Vala, ECMAScript), producing the fully annotated token stream a
formatter builds on.

This command exposes the three pipeline stages individually
(lex/frame/classify) for debugging; it does not format or rewrite
source files.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if trace {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&trace, "trace", "t", false, "enable pipeline trace logging")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
