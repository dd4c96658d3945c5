package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/newrelic/go-easy-modifiers/modifier"
	"github.com/newrelic/go-easy-modifiers/namespace"
	"github.com/newrelic/go-easy-modifiers/syntax"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultHeader = "void Run ( )"
	diffName      = "declaration"
)

// modifyOptions describes a declaration and the edits to apply to it.
type modifyOptions struct {
	modifiers []string
	header    string
	leading   []string
	indent    int
	inserts   []string
	removes   []string
	make      string
	container string
	diff      bool
}

var modifyOpts modifyOptions

var modifyCmd = &cobra.Command{
	Use:   "modify",
	Short: "edit the modifiers of a declaration",
	Long:  "build a declaration from the given modifiers and header, insert, remove or normalize modifiers on it, and print the result with its comments and indentation intact",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		editor, err := cfg.Editor()
		if err != nil {
			return err
		}
		return runModify(cmd.OutOrStdout(), editor, modifyOpts, logger)
	},
}

func runModify(w io.Writer, editor *modifier.Editor, opts modifyOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	decl, err := buildDeclaration(opts)
	if err != nil {
		return err
	}
	before := decl.String()

	edited, err := applyEdits(editor, decl, opts, logger)
	if err != nil {
		return err
	}

	var out syntax.Element = edited
	if opts.container != "" {
		class := syntax.NewContainer(syntax.Class, opts.container)
		class, _, err = namespace.AddMembers(class, edited)
		if err != nil {
			return err
		}
		out = class
	}

	if err := syntax.Render(w, out); err != nil {
		return err
	}
	if opts.diff {
		patch := godiffpatch.GeneratePatch(diffName, before, edited.String())
		return colorize(w, patch)
	}
	return nil
}

// parseKind returns the modifier keyword spelled by text.
func parseKind(text string) (syntax.Kind, error) {
	kind := syntax.KindOf(strings.TrimSpace(text))
	if !kind.IsModifier() {
		return syntax.Invalid, &modifier.ConfigError{Value: text, Err: modifier.ErrInvalidKind}
	}
	return kind, nil
}

func parseKinds(texts []string) ([]syntax.Kind, error) {
	kinds := make([]syntax.Kind, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		kind, err := parseKind(text)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// buildDeclaration creates a method declaration whose first token carries the
// leading comment lines, each on its own indented line.
func buildDeclaration(opts modifyOptions) (*syntax.Node, error) {
	if opts.indent < 0 {
		return nil, fmt.Errorf("--indent must not be negative, got %d", opts.indent)
	}
	kinds, err := parseKinds(opts.modifiers)
	if err != nil {
		return nil, err
	}

	header := opts.header
	if strings.TrimSpace(header) == "" {
		header = defaultHeader
	}
	headerTokens := syntax.Words(header)
	last := len(headerTokens) - 1
	headerTokens[last] = headerTokens[last].WithTrailingTrivia(syntax.EndOfLine())

	decl := syntax.NewNode(syntax.Method, syntax.Parts{
		Modifiers: syntax.Modifiers(kinds...),
		Header:    headerTokens,
	})

	var leading syntax.TriviaList
	for _, line := range opts.leading {
		if opts.indent > 0 {
			leading = leading.Append(syntax.Indent(opts.indent))
		}
		leading = leading.Append(syntax.Comment(line), syntax.EndOfLine())
	}
	if opts.indent > 0 {
		leading = leading.Append(syntax.Indent(opts.indent))
	}
	return decl.WithLeadingTrivia(leading), nil
}

// applyEdits runs removals, then insertions, then the --make normalization,
// and finally makes sure the modifier list is separated from the header.
func applyEdits(editor *modifier.Editor, decl *syntax.Node, opts modifyOptions, logger *zap.Logger) (*syntax.Node, error) {
	removes, err := parseKinds(opts.removes)
	if err != nil {
		return nil, err
	}
	for _, kind := range removes {
		decl = editor.Remove(decl, kind)
		logger.Debug("removed modifier", zap.Stringer("kind", kind))
	}

	inserts, err := parseKinds(opts.inserts)
	if err != nil {
		return nil, err
	}
	for _, kind := range inserts {
		var a syntax.Annotation
		decl, a, err = editor.Insert(decl, kind)
		if err != nil {
			return nil, err
		}
		logger.Debug("inserted modifier", zap.Stringer("kind", kind), zap.Stringer("annotation", a))
	}

	if target := strings.TrimSpace(opts.make); target != "" {
		kind, err := parseKind(target)
		if err != nil {
			return nil, err
		}
		var a syntax.Annotation
		decl, a, err = editor.Normalize(decl, kind)
		if err != nil {
			return nil, err
		}
		logger.Debug("normalized modifiers", zap.Stringer("target", kind), zap.Stringer("annotation", a))
	}

	return editor.EnsureSeparated(decl), nil
}

var (
	addedLine   = color.New(color.FgGreen)
	removedLine = color.New(color.FgRed)
	hunkLine    = color.New(color.FgCyan)
)

// colorize writes a unified diff to w, coloring added, removed and hunk lines.
func colorize(w io.Writer, patch string) error {
	scanner := bufio.NewScanner(strings.NewReader(patch))
	for scanner.Scan() {
		line := scanner.Text()
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = fmt.Fprintln(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = addedLine.Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = removedLine.Fprintln(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = hunkLine.Fprintln(w, line)
		default:
			_, err = fmt.Fprintln(w, line)
		}
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}

var errNoModifiers = errors.New("nothing to do: pass --insert, --remove or --make")

func init() {
	modifyCmd.Flags().StringSliceVar(&modifyOpts.modifiers, "modifiers", nil, "comma separated modifiers the declaration starts with")
	modifyCmd.Flags().StringVar(&modifyOpts.header, "header", defaultHeader, "space separated tokens following the modifiers")
	modifyCmd.Flags().StringArrayVar(&modifyOpts.leading, "leading", nil, "comment line placed above the declaration (repeatable)")
	modifyCmd.Flags().IntVar(&modifyOpts.indent, "indent", 0, "number of spaces the declaration is indented by")
	modifyCmd.Flags().StringArrayVar(&modifyOpts.inserts, "insert", nil, "modifier to insert at its canonical position (repeatable)")
	modifyCmd.Flags().StringArrayVar(&modifyOpts.removes, "remove", nil, "modifier to remove (repeatable)")
	modifyCmd.Flags().StringVar(&modifyOpts.make, "make", "", "make the given modifier the only one of its category, e.g. public or static")
	modifyCmd.Flags().StringVar(&modifyOpts.container, "container", "", "print the result as a member of an empty class with this name")
	modifyCmd.Flags().BoolVar(&modifyOpts.diff, "diff", false, "also print a colored diff of the declaration")

	modifyCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if len(modifyOpts.inserts) == 0 && len(modifyOpts.removes) == 0 && modifyOpts.make == "" {
			return errNoModifiers
		}
		return nil
	}

	rootCmd.AddCommand(modifyCmd)
}
