package main

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/vendor-management/internal/application/auth"
	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/infrastructure/postgres"
	"github.com/jhoicas/vendor-management/pkg/validation"
)

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Aplica, revierte o lista las migraciones",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			if err := postgres.Migrate(cmd.Context(), e.cfg.DB.ConnectionString(), command); err != nil {
				return err
			}
			e.log.Info().Str("command", command).Msg("migraciones ejecutadas")
			return nil
		},
	}
}

func seedPermissionsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-permissions",
		Short: "Siembra el catálogo de permisos (idempotente)",
		Long: `Crea los permisos del catálogo que no existan y restaura el nombre canónico
de los que hayan sido renombrados. Categoría y descripción editadas se conservan.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := postgres.NewPool(cmd.Context(), e.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := usecase.NewPermissionUseCase(postgres.NewPermissionRepository(pool), postgres.NewUserRepository(pool),
				usecase.PermissionPolicy{}, usecase.NopMetrics{}, e.log)
			report, err := uc.SeedCatalog(cmd.Context())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(dto.SeedReportResponse{
				Version:   report.Version,
				Created:   report.Created,
				Renamed:   report.Renamed,
				Unchanged: report.Unchanged,
			}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func createSuperuserCmd(e *env) *cobra.Command {
	var in dto.CreateSuperuserRequest
	cmd := &cobra.Command{
		Use:     "create-superuser",
		Short:   "Crea un usuario Admin con is_staff e is_superuser",
		Example: `  vendorctl create-superuser --username admin --email admin@example.com --password 'cambiar-esto'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.Struct(&in); err != nil {
				return err
			}
			pool, err := postgres.NewPool(cmd.Context(), e.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			u, err := accountsUseCase(e, pool).CreateSuperuser(cmd.Context(), in)
			if err != nil {
				return err
			}
			e.log.Info().Str("user_id", u.ID).Str("username", u.Username).Msg("superusuario creado")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "Nombre de usuario")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Contraseña (mínimo 8 caracteres)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func accountsUseCase(e *env, pool *pgxpool.Pool) *auth.AuthUseCase {
	return auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewProfileRepository(pool),
		postgres.NewTxRunner(pool), auth.JWTConfig{
			Secret:     e.cfg.JWT.Secret,
			ExpMinutes: e.cfg.JWT.Expiration,
			Issuer:     e.cfg.JWT.Issuer,
		}, auth.SignupPolicy{AllowAdmin: e.cfg.Auth.SignupAllowAdmin}, e.log)
}
