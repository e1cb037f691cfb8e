package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goliatone/go-structgen/pkg/model"
	"github.com/goliatone/go-structgen/pkg/schema"
	"github.com/goliatone/go-structgen/pkg/structgen"
)

var generateOpts struct {
	source     string
	typeName   string
	pkg        string
	output     string
	unexported bool
	docs       bool
	validate   bool
	debug      bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile a schema into Go type definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&generateOpts.source, "source", "s", "", "schema path or URL (reads stdin when empty)")
	flags.StringVarP(&generateOpts.typeName, "name", "n", "", "top-level type name (overrides the schema title)")
	flags.StringVarP(&generateOpts.pkg, "package", "p", "types", "package clause of the generated file")
	flags.StringVarP(&generateOpts.output, "output", "o", "", "output file (stdout when empty)")
	flags.BoolVar(&generateOpts.unexported, "unexported", false, "generate unexported identifiers")
	flags.BoolVar(&generateOpts.docs, "docs", false, "embed the full definition in the type's doc comment")
	flags.BoolVar(&generateOpts.validate, "validate", false, "embed the schema and revalidate payloads on decode")
	flags.BoolVar(&generateOpts.debug, "debug", false, "dump emitted definitions to the log")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context) error {
	src, err := parseSource(generateOpts.source)
	if err != nil {
		return err
	}

	gen := structgen.New(structgen.WithLogger(logger))
	req := structgen.Request{
		Source:           src,
		TypeName:         generateOpts.typeName,
		Package:          generateOpts.pkg,
		Unexported:       generateOpts.unexported,
		EmitDocs:         generateOpts.docs,
		ValidateOnDecode: generateOpts.validate,
		Debug:            generateOpts.debug,
	}

	result, err := gen.Generate(ctx, req)
	if shouldPromptTypeName(err, req.TypeName) {
		name, promptErr := promptTypeName()
		if promptErr != nil {
			return err
		}
		req.TypeName = name
		result, err = gen.Generate(ctx, req)
	}
	if err != nil {
		return err
	}

	if generateOpts.output == "" {
		fmt.Println(string(result.Source))
		return nil
	}
	if err := os.WriteFile(generateOpts.output, result.Source, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info().
		Str("type", result.TypeName).
		Str("path", generateOpts.output).
		Msg("definitions written")
	return nil
}

func parseSource(raw string) (schema.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, errors.New("no schema provided: pass --source or pipe a schema on stdin")
		}
		return schema.SourceFromBytes(data), nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path), nil
	}
	return schema.SourceFromFile(path), nil
}

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// shouldPromptTypeName reports whether the missing top-level identifier can
// be recovered interactively. Piped invocations get the configuration error
// back instead of a prompt they cannot answer.
func shouldPromptTypeName(err error, typeName string) bool {
	var confErr *model.ConfigurationError
	if !errors.As(err, &confErr) || typeName != "" {
		return false
	}
	return isTerminal()
}

// promptTypeName asks for the missing top-level identifier when the schema
// carries no title.
func promptTypeName() (string, error) {
	var name string
	prompt := &survey.Input{
		Message: "Type name for the generated struct:",
		Help:    "The schema has no title, so the top-level identifier must be provided.",
	}
	if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}
