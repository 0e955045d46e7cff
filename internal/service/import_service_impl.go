package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/importer"
	"github.com/alexanderramin/fundalloc/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		payors := repository.NewSQLitePayorRepo(tx)
		assessments := repository.NewSQLiteAssessmentRepo(tx)

		for _, p := range generated.Payors {
			if err := payors.Create(ctx, p); err != nil {
				return fmt.Errorf("creating payor %s: %w", p.Key(), err)
			}
		}
		for _, a := range generated.Assessments {
			if err := assessments.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assessment %d: %w", a.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["payor_count"] = len(generated.Payors)
	fields["assessment_count"] = len(generated.Assessments)
	return &ImportResult{
		PayorCount:      len(generated.Payors),
		AssessmentCount: len(generated.Assessments),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
