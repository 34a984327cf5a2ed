package dto

// ImportErrorDetail problema detectado durante la importación de la planilla maestra.
// Row es la fila de la hoja (encabezado = 1); Column es la letra de columna (A, B, ...).
type ImportErrorDetail struct {
	Sheet   string  `json:"sheet"`
	Message string  `json:"message"`
	Row     *int    `json:"row,omitempty"`
	Column  *string `json:"column,omitempty"`
	Code    string  `json:"code"`
}

// ImportSummary conteo de entidades creadas y actualizadas por tipo.
type ImportSummary struct {
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
}

// ImportResult resultado único de ImportFromWorkbook.
type ImportResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []ImportErrorDetail `json:"errors"`
	Summary *ImportSummary      `json:"summary,omitempty"`
	DryRun  bool                `json:"dry_run,omitempty"`
}

// ImportOk construye un resultado exitoso.
func ImportOk(message string) *ImportResult {
	return &ImportResult{Success: true, Message: message, Errors: []ImportErrorDetail{}}
}

// ImportFail construye un resultado fallido con la lista completa de errores.
func ImportFail(message string, errs []ImportErrorDetail) *ImportResult {
	if errs == nil {
		errs = []ImportErrorDetail{}
	}
	return &ImportResult{Success: false, Message: message, Errors: errs}
}
