package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uncrustify-go/frontend/internal/diag"
	"github.com/uncrustify-go/frontend/internal/lexer"
	"github.com/uncrustify-go/frontend/pkg/token"
)

var (
	lexEval     string
	lexLang     string
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source text and print the raw token stream",
	Long: `Run only the lexer stage and print the resulting raw tokens — no
frame-pass nesting, no classifier disambiguation.

Examples:
  uncrustify-core lex --lang c file.c
  uncrustify-core lex --lang cpp -e "int *p = a * b;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().StringVar(&lexLang, "lang", "c", "comma-separated active language(s): c,cpp,cs,d,java,oc,pawn,vala,ecma")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", true, "show token kind names")
}

func runLex(cmd *cobra.Command, args []string) error {
	src, filename, err := resolveInput(lexEval, args)
	if err != nil {
		return err
	}
	lang, err := parseLang(lexLang)
	if err != nil {
		return err
	}

	log.WithField("file", filename).WithField("lang", lang.String()).Debug("lexing")

	diags := diag.NewBag()
	l := lexer.New([]rune(src), lang, lexer.DefaultOptions(), diags, filename)
	list := l.Tokenize()

	for _, tok := range list.Slice() {
		printToken(tok)
	}

	if diags.Len() > 0 {
		fmt.Println("---")
		fmt.Print(diags.Format(false))
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-14s]", tok.Kind)
	}
	if tok.Kind == token.EOF {
		out += " EOF"
	} else if lex := tok.Lexeme(); lex != "" {
		out += fmt.Sprintf(" %q", lex)
	} else {
		out += fmt.Sprintf(" %s", tok.Kind)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.OrigLine, tok.OrigCol)
	}
	fmt.Println(out)
}
