package main

import (
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Genera una planilla vacía con las hojas y encabezados esperados",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := masterdata.BuildTemplate()
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			if err := f.SaveAs(out); err != nil {
				return withCode(exitUsage, fmt.Errorf("guardar %s: %w", out, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plantilla escrita en %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "plantilla_datos_maestros.xlsx", "Ruta de salida")
	return cmd
}
