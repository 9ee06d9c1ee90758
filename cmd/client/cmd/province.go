package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var provinceCmd = &cobra.Command{
	Use:   "province [nome]",
	Short: "Ver ou escolher a província activa",
	Long: `Sem argumentos mostra a província cujos dados estão activos.
Com um argumento passa a trabalhar com os dados dessa província; os dados
das restantes províncias ficam guardados e intactos.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Printf("Província activa: %s\n", orDash(app.Tenant()))
			return nil
		}

		if err := app.SetTenant(args[0]); err != nil {
			return fmt.Errorf("erro ao guardar a província: %w", err)
		}
		fmt.Printf("Província activa alterada para %s\n", args[0])
		return nil
	},
}
