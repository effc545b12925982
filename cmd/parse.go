package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"crescer-uniformes/models"
	"crescer-uniformes/parser"
	"crescer-uniformes/repository"
)

func newParseCmd() *cobra.Command {
	var (
		jsonOut string
		sqlOut  string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse an order list offline and write JSON and/or a SQL staging script",
		Long: "Parse an order list without touching the database. Use - to read stdin.\n" +
			"Without --json or --sql the parsed orders are printed as JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := readOrderFile(cmd, args[0])
			if err != nil {
				return err
			}

			summary := parser.Summarize(orders)
			fmt.Fprintf(cmd.ErrOrStderr(), "📦 %d orders, %d items, %d without customer name, %d without phone\n",
				summary.Orders, summary.Items, summary.UnknownCustomers, summary.WithoutPhone)

			if jsonOut == "" && sqlOut == "" {
				return writeOrdersJSON(cmd.OutOrStdout(), orders)
			}

			if jsonOut != "" {
				if err := writeFile(jsonOut, func(w io.Writer) error { return writeOrdersJSON(w, orders) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "✅ JSON written to %s\n", jsonOut)
			}

			if sqlOut != "" {
				script, err := repository.RenderInsertScript(orders)
				if err != nil {
					return err
				}
				if err := writeFile(sqlOut, func(w io.Writer) error {
					_, err := io.WriteString(w, script)
					return err
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "✅ SQL script written to %s\n", sqlOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonOut, "json", "", "Write parsed orders as JSON to this path")
	cmd.Flags().StringVar(&sqlOut, "sql", "", "Write INSERT statements for imported_orders to this path")
	return cmd
}

// readOrderFile parses path, or stdin when path is "-"
func readOrderFile(cmd *cobra.Command, path string) ([]models.StagingOrder, error) {
	if path == "-" {
		return parser.ParseReader(cmd.InOrStdin())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open order list: %w", err)
	}
	defer f.Close()
	return parser.ParseReader(f)
}

func writeOrdersJSON(w io.Writer, orders []models.StagingOrder) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(orders); err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
