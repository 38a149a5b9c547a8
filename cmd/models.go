package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nanoimg/nanoimg/internal/providers"
)

var modelsJson bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available image models",
	RunE: func(cmd *cobra.Command, args []string) error {
		models := make([]providers.ModelInfo, 0, len(providers.Models))
		for _, m := range providers.Models {
			models = append(models, m)
		}
		sort.Slice(models, func(i, j int) bool { return models[i].Alias < models[j].Alias })

		if modelsJson {
			jsonData, err := json.MarshalIndent(models, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		}

		printModelTable(cmd, models)
		return nil
	},
}

func printModelTable(cmd *cobra.Command, models []providers.ModelInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "┌───────┬────────────────────────────┬──────────────────────────────────────────┐")
	fmt.Fprintln(out, "│ Alias │ Model ID                   │ Description                              │")
	fmt.Fprintln(out, "├───────┼────────────────────────────┼──────────────────────────────────────────┤")
	for _, m := range models {
		fmt.Fprintf(out, "│ %-5s │ %-26s │ %-40s │\n",
			m.Alias,
			truncate(m.ID, 26),
			truncate(m.Description, 40))
	}
	fmt.Fprintln(out, "└───────┴────────────────────────────┴──────────────────────────────────────────┘")
}

func truncate(s string, length int) string {
	if len(s) > length {
		return s[:length-3] + "..."
	}
	return s
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsJson, "json", false, "Output in JSON format")
	rootCmd.AddCommand(modelsCmd)
}
