package user

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"folharh/cmd/client/cmd/types"
	"folharh/internal/app/client"
	"folharh/internal/domain/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	addFullName string
	addRole     string
)

var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Gerir utilizadores da aplicação",
}

var AddCmd = &cobra.Command{
	Use:   "add <nome-de-utilizador>",
	Short: "Criar um utilizador",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.AppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}
		username := args[0]

		env, err := app.Envelope(cmd.Context(), "users")
		if err != nil {
			return fmt.Errorf("erro ao ler os utilizadores: %w", err)
		}
		users, err := user.FromEnvelope(env)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Username == username {
				return fmt.Errorf("o utilizador %q já existe", username)
			}
		}

		fmt.Print("Palavra-passe: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("erro ao ler a palavra-passe: %w", err)
		}
		fmt.Println()

		fmt.Print("Repita a palavra-passe: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("erro ao ler a palavra-passe: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("as palavras-passe não coincidem")
		}

		created, err := user.New(username, addFullName, addRole, string(password))
		if err != nil {
			return err
		}
		users = append(users, created)

		raw, err := json.Marshal(users)
		if err != nil {
			return fmt.Errorf("erro ao serializar os utilizadores: %w", err)
		}
		env.State["users"] = raw

		if err := app.SaveEnvelope(cmd.Context(), "users", env); err != nil {
			return fmt.Errorf("erro ao gravar os utilizadores: %w", err)
		}

		fmt.Printf("Utilizador %s criado\n", username)
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listar os utilizadores",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.AppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("aplicação não inicializada")
		}

		env, err := app.Envelope(cmd.Context(), "users")
		if err != nil {
			return fmt.Errorf("erro ao ler os utilizadores: %w", err)
		}
		users, err := user.FromEnvelope(env)
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("Nenhum utilizador registado")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UTILIZADOR\tNOME\tPAPEL\tACTIVO")
		for _, u := range users {
			active := "sim"
			if !u.IsActive {
				active = "não"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Username, u.FullName, u.Role, active)
		}
		return w.Flush()
	},
}

func init() {
	AddCmd.Flags().StringVar(&addFullName, "name", "", "nome completo")
	AddCmd.Flags().StringVar(&addRole, "role", user.RoleOperator, "papel (admin, manager, operator)")
}
