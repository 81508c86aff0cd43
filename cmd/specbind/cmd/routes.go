package cmd

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/specbind/specbind/internal/serve"
	"github.com/specbind/specbind/pkg/context"
	errors2 "github.com/specbind/specbind/pkg/errors"
	"github.com/specbind/specbind/pkg/log"
	"github.com/spf13/cobra"
)

var (
	dumpSchemas = false
)

// routesCmd represents the routes command
var routesCmd = &cobra.Command{
	Use:   "routes <document>",
	Short: "print the routes a document would register",
	Long: `routes loads and validates the given OpenAPI 3 document and prints one row
per route the synthesizer would register: method, rewritten path, operationId,
controller module, declared security schemes and upload field.

Operations without an operationId are skipped, exactly as they would be at
bind time. Document defects (invalid multipart schemas) are printed after the
table and exit non-zero.

-d will additionally dump each route's derived validation schema`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := serve.Load(context.Context(), serve.NewOptions(serve.SpecLocation(args[0])))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load document")
		}

		rows, perr := serve.Preview(doc)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Method", "Path", "Operation", "Controller", "Security", "Upload"})
		for _, v := range rows {
			table.Append([]string{v.Method, v.Path, v.OperationID, v.Controller, v.AuthSchemes, v.UploadField})
		}
		table.Render()

		if dumpSchemas {
			for _, v := range rows {
				log.Debug().Str("operation", v.OperationID).Msg("derived schema")
				spew.Fdump(os.Stderr, v.Schema)
			}
		}

		if perr != nil {
			errors2.PrintError(perr, 0)
			log.Fatal().Msg("document contains unserviceable routes")
		}
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)

	routesCmd.Flags().BoolVarP(&dumpSchemas, "dump", "d", false, "dump the derived validation schema per route")
}
