package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/importer"
	"github.com/adriancosta/fitflow/internal/repository"
)

type foodImportService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewFoodImportService(uow db.UnitOfWork, observers ...UseCaseObserver) FoodImportService {
	return &foodImportService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *foodImportService) ImportCatalog(ctx context.Context, filePath string) (*ImportResult, error) {
	var result *ImportResult
	err := observe(ctx, s.observer, "food.import_catalog", map[string]any{"file": filePath}, func() error {
		schema, err := importer.LoadImportSchema(filePath)
		if err != nil {
			return fmt.Errorf("loading import file: %w", err)
		}
		if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
			return formatValidationErrors(errs)
		}

		foods := importer.ToFoods(schema, time.Now().UTC())

		// All entries land in one transaction; a failure midway leaves
		// the catalog untouched.
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			repo := repository.NewSQLiteFoodRepo(tx)
			for _, f := range foods {
				if err := repo.Upsert(ctx, f); err != nil {
					return fmt.Errorf("importing %q: %w", f.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = &ImportResult{Source: schema.Source, Imported: len(foods)}
		return nil
	})
	return result, err
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
