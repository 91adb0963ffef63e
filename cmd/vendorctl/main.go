// vendorctl tareas administrativas: migraciones, siembra del catálogo de permisos y alta de superusuarios.
//
// Uso:
//
//	vendorctl migrate [up|down|status]
//	vendorctl seed-permissions
//	vendorctl create-superuser --username admin --email admin@example.com --password ...
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/vendor-management/pkg/config"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

type env struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:           "vendorctl",
		Short:         "Administración de vendor-management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := "info"
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = "debug"
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log detallado")

	rootCmd.AddCommand(migrateCmd(e))
	rootCmd.AddCommand(seedPermissionsCmd(e))
	rootCmd.AddCommand(createSuperuserCmd(e))

	if err := rootCmd.Execute(); err != nil {
		l := e.log
		if l == nil {
			l = logger.New(logger.Config{})
		}
		l.Error().Err(err).Msg("vendorctl")
		os.Exit(1)
	}
}
