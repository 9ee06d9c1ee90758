package branch

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"folharh/cmd/client/cmd/types"
	"folharh/internal/app/client"
	"folharh/internal/domain/branch"

	"github.com/spf13/cobra"
)

var listFormat string

var BranchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Gerir filiais",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listar as filiais da província activa",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.AppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		env, err := app.Envelope(cmd.Context(), "branches")
		if err != nil {
			return fmt.Errorf("erro ao ler as filiais: %w", err)
		}

		branches, err := branch.FromEnvelope(env)
		if err != nil {
			return err
		}

		if listFormat == "json" {
			data, err := json.MarshalIndent(branches, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(branches) == 0 {
			fmt.Println("Nenhuma filial registada")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOME\tCÓDIGO\tPROVÍNCIA\tMUNICÍPIO\tSEDE")
		for _, b := range branches {
			hq := ""
			if b.IsHeadquarters {
				hq = "sede"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				b.Name, b.Code, b.Province, b.Municipality, hq)
		}
		return w.Flush()
	},
}

func init() {
	ListCmd.Flags().StringVar(&listFormat, "format", "table", "formato de saída (table, json)")
}
