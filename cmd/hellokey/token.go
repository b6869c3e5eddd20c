package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellokey/internal/jwt"
	"github.com/dropDatabas3/hellokey/internal/util"
)

func newTokenCmd(load loadFunc) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Utilidades de bearer tokens",
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verifica un bearer token con el secreto configurado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			keys, err := jwt.NewKeys(cfg.Auth.TokenSecret)
			if err != nil {
				return err
			}
			svc := jwt.NewService(keys, jwt.WithTTL(cfg.Auth.TokenTTL))

			raw := strings.TrimSpace(args[0])
			if !strings.HasPrefix(raw, "Bearer ") {
				raw = "Bearer " + raw
			}
			claims, err := svc.Verify(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", util.MaskToken(args[0]), err)
			}

			out := map[string]any{
				"sub":     claims.Subject,
				"company": claims.Company,
			}
			if claims.ExpiresAt != nil {
				out["exp"] = claims.ExpiresAt.UTC().Format(time.RFC3339)
			}
			if claims.IssuedAt != nil {
				out["iat"] = claims.IssuedAt.UTC().Format(time.RFC3339)
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	tokenCmd.AddCommand(verifyCmd)
	return tokenCmd
}
