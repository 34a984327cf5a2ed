package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain"
	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
)

// stubImporter devuelve un resultado fijo y registra las opciones recibidas.
type stubImporter struct {
	res   *dto.ImportResult
	err   error
	opts  masterdata.ImportOptions
	calls int
}

func (s *stubImporter) ImportFromWorkbook(_ context.Context, r io.Reader, opts masterdata.ImportOptions) (*dto.ImportResult, error) {
	s.calls++
	s.opts = opts
	_, _ = io.Copy(io.Discard, r)
	return s.res, s.err
}

func buildMasterDataApp(uc *stubImporter, maxBytes int64) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthHandler:       apphttp.NewAuthHandler(nil),
		MasterDataHandler: apphttp.NewMasterDataHandler(uc, maxBytes, zerolog.Nop()),
		JWTSecret:         testJWTSecret,
	})
	return app
}

func uploadRequest(t *testing.T, url, filename string, content []byte, role string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	return req
}

func doUpload(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestImport_Exito_200(t *testing.T) {
	uc := &stubImporter{res: dto.ImportOk("importación completada")}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var res dto.ImportResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Success)
	assert.NotNil(t, res.Errors, "errors siempre es una lista")
	assert.False(t, uc.opts.DryRun)
}

func TestImport_DryRunPorQuery(t *testing.T) {
	uc := &stubImporter{res: dto.ImportOk("validación completada")}
	app := buildMasterDataApp(uc, 1<<20)

	resp, _ := doUpload(t, app, uploadRequest(t, "/api/master-data/import?dry_run=true", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, uc.opts.DryRun)
}

func TestImport_ErroresDeValidacion_422(t *testing.T) {
	row := 2
	col := "A"
	uc := &stubImporter{res: dto.ImportFail("la importación tiene 1 errores; no se guardó ningún cambio", []dto.ImportErrorDetail{
		{Sheet: "Branch", Row: &row, Column: &col, Code: "BRANCH_NAME_REQUIRED", Message: "Name es obligatorio"},
	})}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var res dto.ImportResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "BRANCH_NAME_REQUIRED", res.Errors[0].Code)
	assert.Equal(t, 2, *res.Errors[0].Row)
}

// failedResult decodifica el cuerpo como ImportResult y verifica que sea un fallo.
func failedResult(t *testing.T, body []byte) dto.ImportResult {
	t.Helper()
	var res dto.ImportResult
	require.NoError(t, json.Unmarshal(body, &res), "el cuerpo debe ser un ImportResult: %s", body)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.NotNil(t, res.Errors)
	return res
}

func TestImport_SinArchivo_400(t *testing.T) {
	uc := &stubImporter{}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "", nil, "admin"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	res := failedResult(t, body)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "MISSING_FILE", res.Errors[0].Code)
	assert.Zero(t, uc.calls)
}

func TestImport_ExtensionInvalida_400(t *testing.T) {
	uc := &stubImporter{}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.csv", []byte("a,b"), "admin"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	res := failedResult(t, body)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "INVALID_FILE_TYPE", res.Errors[0].Code)
}

func TestImport_ArchivoMuyGrande_400(t *testing.T) {
	uc := &stubImporter{}
	app := buildMasterDataApp(uc, 4)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("demasiado"), "admin"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	res := failedResult(t, body)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "FILE_TOO_LARGE", res.Errors[0].Code)
}

func TestImport_LibroIlegible_400(t *testing.T) {
	uc := &stubImporter{res: dto.ImportFail("no se pudo leer el archivo", nil), err: domain.ErrInvalidWorkbook}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	res := failedResult(t, body)
	assert.Equal(t, "no se pudo leer el archivo", res.Message)
}

func TestImport_ImportacionEnCurso_409(t *testing.T) {
	uc := &stubImporter{res: dto.ImportFail("ya hay una importación en curso", nil), err: domain.ErrImportInProgress}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	res := failedResult(t, body)
	assert.Equal(t, "ya hay una importación en curso", res.Message)
}

func TestImport_FallaDeInfraestructura_500(t *testing.T) {
	uc := &stubImporter{res: dto.ImportFail("no se pudieron guardar los cambios", nil), err: assert.AnError}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var res dto.ImportResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	assert.Empty(t, res.Errors)
}

func TestImport_RolNoAdmin_403(t *testing.T) {
	uc := &stubImporter{}
	app := buildMasterDataApp(uc, 1<<20)

	resp, _ := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "manager"))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, uc.calls)
}

func TestImport_SinToken_401(t *testing.T) {
	app := buildMasterDataApp(&stubImporter{}, 1<<20)

	resp, _ := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), ""))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTemplate_DescargaLibroConHojas(t *testing.T) {
	app := buildMasterDataApp(&stubImporter{}, 1<<20)
	req := httptest.NewRequest(http.MethodGet, "/api/master-data/template", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))

	resp, body := doUpload(t, app, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "plantilla_datos_maestros.xlsx")
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), len(masterdata.Templates))
}

func TestMetrics_Expuestas(t *testing.T) {
	app := buildMasterDataApp(&stubImporter{}, 1<<20)

	resp, body := doUpload(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestImport_ErrorSinResultado_SiempreDevuelveImportResult(t *testing.T) {
	uc := &stubImporter{err: domain.ErrImportInProgress}
	app := buildMasterDataApp(uc, 1<<20)

	resp, body := doUpload(t, app, uploadRequest(t, "/api/master-data/import", "maestros.xlsx", []byte("xlsx"), "admin"))

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	res := failedResult(t, body)
	assert.Empty(t, res.Errors)
}
