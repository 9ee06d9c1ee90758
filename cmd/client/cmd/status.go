package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"folharh/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Estado do armazenamento e da ligação ao servidor",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		network := app.Network()
		conn := app.Connection()
		province := app.Tenant()

		collections := make([]string, 0, len(storage.Specs))
		for name := range storage.Specs {
			collections = append(collections, name)
		}
		sort.Strings(collections)

		counts := make(map[string]int, len(collections))
		for _, name := range collections {
			records, err := app.Records(ctx, name)
			if err != nil {
				counts[name] = -1
				continue
			}
			counts[name] = len(records)
		}

		if jsonOutput {
			out := map[string]any{
				"province": province,
				"mode":     network.Mode,
				"serverIP": network.ServerIP,
				"online":   conn.Online,
				"counts":   counts,
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		bold := color.New(color.Bold)
		bold.Println("FolhaRH")
		fmt.Printf("Província: %s\n", orDash(province))
		fmt.Printf("Modo de rede: %s\n", network.Mode)

		if network.Mode == storage.ModeClient {
			fmt.Printf("Servidor: %s:%d\n", network.ServerIP, network.ServerPort)
			if conn.Online {
				color.Green("Ligação: online (última verificação %s)", conn.LastCheck.Format("15:04:05"))
			} else {
				color.Red("Ligação: offline")
				if conn.LastError != "" {
					fmt.Printf("Último erro: %s\n", conn.LastError)
				}
			}
		}

		fmt.Println()
		bold.Println("Colecções")
		for _, name := range collections {
			if counts[name] < 0 {
				color.Yellow("  %-18s indisponível", name)
				continue
			}
			fmt.Printf("  %-18s %d registos\n", name, counts[name])
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
