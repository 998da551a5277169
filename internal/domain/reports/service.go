package reports

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sbreport/internal/core/tx"
	"sbreport/pkg/logger"
)

var tracer = otel.Tracer("sbreport/reports")

// Service runs the Serial and Batch Summary report.
type Service struct {
	repo  Repository
	items ItemLookup
	txm   tx.ReadOnlyManager
}

// NewService creates a new reports service.
// txm may be nil, in which case queries run without an explicit transaction.
func NewService(repo Repository, items ItemLookup, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, items: items, txm: txm}
}

// Execute fetches the rows matching filters and shapes the column list.
// Labels are passed through tr when it is not nil.
func (s *Service) Execute(ctx context.Context, filters Filters, tr Translator) (*Result, error) {
	ctx, span := tracer.Start(ctx, "reports.serial_batch_summary",
		trace.WithAttributes(
			attribute.String("filter.company", filters.Company),
			attribute.String("filter.item_code", filters.ItemCode),
			attribute.Bool("filter.date_range", filters.HasDateRange()),
		))
	defer span.End()

	var result *Result
	err := s.readOnly(ctx, func(ctx context.Context) error {
		rows, err := s.repo.FetchSummaryRows(ctx, filters)
		if err != nil {
			return fmt.Errorf("fetch serial and batch summary: %w", err)
		}

		tracking, err := ResolveItemTracking(ctx, filters, rows, s.items)
		if err != nil {
			return err
		}

		if rows == nil {
			rows = []Row{}
		}
		result = &Result{
			Columns: ShapeColumns(filters, tracking, tr),
			Rows:    rows,
		}

		logger.Debug(ctx, "serial and batch summary executed",
			"rows", len(rows),
			"columns", len(result.Columns),
			"item_tracking_resolved", tracking != nil,
		)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.rows", len(result.Rows)))
	return result, nil
}

func (s *Service) readOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txm == nil {
		return fn(ctx)
	}
	return s.txm.ReadOnly(ctx, fn)
}
