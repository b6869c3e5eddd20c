package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellokey/internal/domain"
	"github.com/dropDatabas3/hellokey/internal/http/server"
	"github.com/dropDatabas3/hellokey/internal/store"
	"github.com/dropDatabas3/hellokey/internal/util"
)

func newCredsCmd(load loadFunc) *cobra.Command {
	credsCmd := &cobra.Command{
		Use:   "creds",
		Short: "Operaciones sobre el store de credenciales",
	}

	var reveal bool
	showCmd := &cobra.Command{
		Use:   "show <user_id>",
		Short: "Muestra el par client_id/secret guardado para un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(args[0])
			if _, err := domain.ParseUserKey(userID); err != nil {
				return fmt.Errorf("user_id inválido %q: %w", userID, err)
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			st, err := server.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			creds, err := st.Get(cmd.Context(), userID)
			if err != nil {
				if store.IsNotFound(err) {
					return fmt.Errorf("no hay credenciales para user_id %s", userID)
				}
				return err
			}
			out := *creds
			if !reveal {
				out.ClientSecret = util.MaskSecret(out.ClientSecret)
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	showCmd.Flags().BoolVar(&reveal, "reveal", false, "Imprime el client_secret completo")

	credsCmd.AddCommand(showCmd)
	return credsCmd
}
