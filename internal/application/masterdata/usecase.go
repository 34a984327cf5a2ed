package masterdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Config parámetros de la importación.
type Config struct {
	DefaultStaffPassword string // contraseña inicial de las cuentas de personal creadas
}

// LockKey llave del lock que serializa las importaciones.
const LockKey = "master-data-import"

// ImportOptions opciones por invocación.
type ImportOptions struct {
	DryRun bool // valida todo y descarta los cambios aunque no haya errores
}

// ImportUseCase orquesta la importación de la planilla maestra:
// plantilla -> cachés -> etapas en orden -> commit único -> notificaciones.
type ImportUseCase struct {
	store    Store
	geocoder Geocoder
	identity IdentityProvider
	notifier *PostCommitNotifier
	lock     ImportLock
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewImportUseCase construye el caso de uso. notifier puede ser nil (sin correos de bienvenida).
func NewImportUseCase(store Store, geocoder Geocoder, identity IdentityProvider, notifier *PostCommitNotifier, cfg Config, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{
		store:    store,
		geocoder: geocoder,
		identity: identity,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// WithLock serializa las invocaciones con el lock dado (API y CLI comparten el mismo en Redis).
func (uc *ImportUseCase) WithLock(lock ImportLock) *ImportUseCase {
	uc.lock = lock
	return uc
}

// ImportFromWorkbook importa un libro XLSX completo. Devuelve siempre un ImportResult;
// el error solo es distinto de nil ante fallas de infraestructura (archivo ilegible, lectura o commit del Store),
// en cuyo caso el resultado es un Fail con mensaje y sin errores de fila.
func (uc *ImportUseCase) ImportFromWorkbook(ctx context.Context, file io.Reader, opts ImportOptions) (*dto.ImportResult, error) {
	start := uc.now()
	if uc.lock != nil {
		release, err := uc.lock.Acquire(ctx, LockKey)
		if err != nil {
			recordImport(outcomeBusy, time.Since(start), nil)
			if errors.Is(err, domain.ErrImportInProgress) {
				return dto.ImportFail("ya hay una importación en curso; intente más tarde", nil), err
			}
			return dto.ImportFail("no se pudo tomar el lock de importación", nil), fmt.Errorf("acquire import lock: %w", err)
		}
		defer release()
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		recordImport(outcomeFailed, time.Since(start), nil)
		return dto.ImportFail("no se pudo leer el archivo", nil), fmt.Errorf("%w: %v", domain.ErrInvalidWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	result, outcome, errs, err := uc.importWorkbook(ctx, f, opts, start)
	recordImport(outcome, time.Since(start), errs.countBySheet())
	uc.log.Info().
		Bool("success", result.Success).
		Bool("dry_run", opts.DryRun).
		Int("errors", errs.Len()).
		Str("outcome", outcome).
		Dur("elapsed", time.Since(start)).
		Msg("importación de datos maestros")
	return result, err
}

func (uc *ImportUseCase) importWorkbook(ctx context.Context, f *excelize.File, opts ImportOptions, start time.Time) (*dto.ImportResult, string, *ErrorCollector, error) {
	errs := &ErrorCollector{}
	if err := ValidateTemplate(f, errs); err != nil {
		return dto.ImportFail("no se pudo leer el archivo", nil), outcomeFailed, errs, fmt.Errorf("%w: %v", domain.ErrInvalidWorkbook, err)
	}
	if errs.HasErrors() {
		return dto.ImportFail("la plantilla no tiene las hojas o encabezados esperados", errs.Items()), outcomeTemplateRejected, errs, nil
	}

	snapshot, err := uc.store.LoadSnapshot(ctx)
	if err != nil {
		return dto.ImportFail("no se pudo leer el estado actual", nil), outcomeFailed, errs, fmt.Errorf("cargar snapshot: %w", err)
	}
	run := &importRun{
		cache:           LoadContext(snapshot),
		errs:            errs,
		tx:              NewTransactionCoordinator(),
		geocoder:        uc.geocoder,
		identity:        uc.identity,
		defaultPassword: uc.cfg.DefaultStaffPassword,
		roles:           make(map[string]bool),
		now:             start,
		log:             uc.log,
	}

	wb := newWorkbook(f)
	for _, st := range stages {
		rows, err := wb.dataRows(st.sheet)
		if err != nil {
			return dto.ImportFail("no se pudo leer la hoja "+st.sheet, nil), outcomeFailed, errs, fmt.Errorf("leer hoja %s: %w", st.sheet, err)
		}
		before := errs.Len()
		if err := st.run(ctx, run, rows); err != nil {
			return dto.ImportFail("error inesperado procesando la hoja "+st.sheet, nil), outcomeFailed, errs, err
		}
		uc.log.Debug().Str("sheet", st.sheet).Int("rows", len(rows)).Int("errors", errs.Len()-before).Msg("etapa procesada")
	}

	if errs.HasErrors() {
		msg := fmt.Sprintf("la importación tiene %d errores; no se guardó ningún cambio", errs.Len())
		return dto.ImportFail(msg, errs.Items()), outcomeRejected, errs, nil
	}
	if err := ctx.Err(); err != nil {
		return dto.ImportFail("importación cancelada antes de guardar", nil), outcomeFailed, errs, err
	}

	summary := run.tx.Summary()
	if opts.DryRun {
		res := dto.ImportOk("validación completa sin errores; no se guardaron cambios")
		res.Summary, res.DryRun = summary, true
		return res, outcomeDryRun, errs, nil
	}

	if err := run.tx.Commit(ctx, uc.store); err != nil {
		uc.log.Error().Err(err).Msg("commit de importación fallido")
		return dto.ImportFail("no se pudieron guardar los cambios", nil), outcomeFailed, errs, fmt.Errorf("commit: %w", err)
	}

	if uc.notifier != nil && len(run.welcome) > 0 {
		sent, failed := uc.notifier.NotifyWelcome(context.WithoutCancel(ctx), run.welcome)
		uc.log.Info().Int("sent", sent).Int("failed", failed).Msg("correos de bienvenida")
	}

	res := dto.ImportOk("importación completada")
	res.Summary = summary
	return res, outcomeCommitted, errs, nil
}
