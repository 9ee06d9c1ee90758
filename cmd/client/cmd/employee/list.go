package employee

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"folharh/cmd/client/cmd/types"
	"folharh/internal/app/client"
	"folharh/internal/domain/employee"

	"github.com/spf13/cobra"
)

var listFormat string

var EmployeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Gerir funcionários",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listar os funcionários da província activa",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.AppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		env, err := app.Envelope(cmd.Context(), "employees")
		if err != nil {
			return fmt.Errorf("erro ao ler os funcionários: %w", err)
		}

		employees, err := employee.FromEnvelope(env)
		if err != nil {
			return err
		}

		if listFormat == "json" {
			data, err := json.MarshalIndent(employees, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(employees) == 0 {
			fmt.Println("Nenhum funcionário registado")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOME\tCARGO\tDEPARTAMENTO\tSALÁRIO BASE\tACTIVO")
		for _, e := range employees {
			active := "sim"
			if !e.IsActive {
				active = "não"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f Kz\t%s\n",
				e.FullName(), e.Position, e.Department, e.BaseSalary, active)
		}
		return w.Flush()
	},
}

func init() {
	ListCmd.Flags().StringVar(&listFormat, "format", "table", "formato de saída (table, json)")
}
