package http

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type workbookImporter interface {
	ImportFromWorkbook(ctx context.Context, file io.Reader, opts masterdata.ImportOptions) (*dto.ImportResult, error)
}

// MasterDataHandler importación de la planilla maestra y descarga de la plantilla.
type MasterDataHandler struct {
	uc       workbookImporter
	maxBytes int64
	log      zerolog.Logger
}

// NewMasterDataHandler construye el handler. maxBytes acota el tamaño de la planilla.
func NewMasterDataHandler(uc workbookImporter, maxBytes int64, log zerolog.Logger) *MasterDataHandler {
	return &MasterDataHandler{uc: uc, maxBytes: maxBytes, log: log}
}

// Import godoc
// @Summary      Importar datos maestros
// @Description  Valida e importa sucursales, horarios, personal, categorías, servicios y repuestos en un único commit.
// @Tags         master-data
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file     formData  file  true   "Planilla XLSX"
// @Param        dry_run  query     bool  false  "Solo validar, sin guardar"
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ImportResult
// @Failure      409  {object}  dto.ImportResult
// @Failure      422  {object}  dto.ImportResult
// @Failure      500  {object}  dto.ImportResult
// @Router       /api/master-data/import [post]
func (h *MasterDataHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return rejectUpload(c, "MISSING_FILE", "el campo 'file' con la planilla es requerido")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return rejectUpload(c, "FILE_TOO_LARGE", "la planilla excede el tamaño máximo permitido")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return rejectUpload(c, "INVALID_FILE_TYPE", "se espera un archivo .xlsx")
	}
	dryRun := c.QueryBool("dry_run", false) || strings.EqualFold(c.FormValue("dry_run"), "true")

	file, err := fh.Open()
	if err != nil {
		return rejectUpload(c, "INVALID_FILE", "no se pudo abrir el archivo")
	}
	defer file.Close()

	res, err := h.uc.ImportFromWorkbook(c.UserContext(), file, masterdata.ImportOptions{DryRun: dryRun})
	if err != nil {
		if res == nil {
			res = dto.ImportFail(err.Error(), nil)
		}
		switch {
		case errors.Is(err, domain.ErrImportInProgress):
			return c.Status(fiber.StatusConflict).JSON(res)
		case errors.Is(err, domain.ErrInvalidWorkbook):
			return c.Status(fiber.StatusBadRequest).JSON(res)
		}
		h.log.Error().Err(err).Str("user_id", GetUserID(c)).Msg("importación de datos maestros fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}

	h.log.Info().
		Str("user_id", GetUserID(c)).
		Str("file", fh.Filename).
		Bool("success", res.Success).
		Bool("dry_run", dryRun).
		Int("errors", len(res.Errors)).
		Msg("planilla procesada")
	if !res.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
	}
	return c.JSON(res)
}

// rejectUpload responde 400 con un ImportResult fallido para problemas del archivo subido,
// detectados antes de leer la planilla.
func rejectUpload(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ImportFail(message, []dto.ImportErrorDetail{
		{Code: code, Message: message},
	}))
}

// Template godoc
// @Summary      Descargar plantilla
// @Description  Libro vacío con las ocho hojas y sus encabezados, en el orden de importación.
// @Tags         master-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/master-data/template [get]
func (h *MasterDataHandler) Template(c *fiber.Ctx) error {
	f, err := masterdata.BuildTemplate()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Attachment("plantilla_datos_maestros.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
