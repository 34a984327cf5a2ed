package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Importa una planilla de datos maestros (todo o nada)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return withCode(exitUsage, err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: os.Stderr})

			f, err := os.Open(file)
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("abrir %s: %w", file, err))
			}
			defer f.Close()

			app, err := bootstrap.New(cmd.Context(), cfg, log)
			if err != nil {
				return withCode(exitInfra, err)
			}
			defer app.Close()

			res, err := app.ImportUC.ImportFromWorkbook(cmd.Context(), f, masterdata.ImportOptions{DryRun: dryRun})
			if res != nil {
				if werr := writeJSON(cmd.OutOrStdout(), res); werr != nil {
					return werr
				}
			}
			switch {
			case errors.Is(err, domain.ErrImportInProgress):
				return withCode(exitBusy, err)
			case errors.Is(err, domain.ErrInvalidWorkbook):
				return withCode(exitUsage, err)
			case err != nil:
				return withCode(exitInfra, err)
			case !res.Success:
				return withCode(exitValidation, fmt.Errorf("%s", res.Message))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Ruta de la planilla .xlsx (requerido)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Solo validar; no guarda cambios ni envía correos")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
