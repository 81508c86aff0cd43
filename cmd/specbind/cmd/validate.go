package cmd

import (
	"github.com/specbind/specbind/internal/serve"
	"github.com/specbind/specbind/pkg/context"
	"github.com/specbind/specbind/pkg/log"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "validate an OpenAPI 3 document",
	Long: `validate loads the given document, resolves external references and runs the
full document validation. Exits non-zero when the document would be rejected
at startup.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := serve.Load(context.Context(), serve.NewOptions(serve.SpecLocation(args[0])))
		if err != nil {
			log.Fatal().Err(err).Msg("document is invalid")
		}
		log.Info().Str("location", doc.Location()).Str("prefix", doc.BasePrefix()).Int("paths", len(doc.PathEntries())).Msg("document is valid")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
