package lookup

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sbreport/internal/core/apperror"
	"sbreport/internal/core/tx"
)

var tracer = otel.Tracer("sbreport/lookup")

// Service answers the three filter-form lookups.
type Service struct {
	repo Repository
	txm  tx.ReadOnlyManager
}

// NewService creates a lookup service. txm may be nil.
func NewService(repo Repository, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txm: txm}
}

// VoucherTypes lists document types that can reference a bundle.
func (s *Service) VoucherTypes(ctx context.Context, req SearchRequest) ([][]string, error) {
	return s.search(ctx, "voucher_types", req, func(ctx context.Context) ([]string, error) {
		return s.repo.ListVoucherTypes(ctx, req.Text, req.Page())
	})
}

// SerialNos lists serial numbers. With voucher numbers in the filter context
// it searches their bundles' entries, otherwise the serial number registry
// scoped by item.
func (s *Service) SerialNos(ctx context.Context, req SearchRequest) ([][]string, error) {
	return s.search(ctx, "serial_nos", req, func(ctx context.Context) ([]string, error) {
		if vouchers := req.Filters.VoucherNoValues(); len(vouchers) > 0 {
			return s.repo.ListEntryValues(ctx, EntrySerialNo, vouchers, req.Text, req.Page())
		}
		return s.repo.ListSerialRegistry(ctx, req.Filters.ItemCode, req.Text, req.Page())
	})
}

// BatchNos is the batch counterpart of SerialNos.
func (s *Service) BatchNos(ctx context.Context, req SearchRequest) ([][]string, error) {
	return s.search(ctx, "batch_nos", req, func(ctx context.Context) ([]string, error) {
		if vouchers := req.Filters.VoucherNoValues(); len(vouchers) > 0 {
			return s.repo.ListEntryValues(ctx, EntryBatchNo, vouchers, req.Text, req.Page())
		}
		return s.repo.ListBatchRegistry(ctx, req.Filters.ItemCode, req.Text, req.Page())
	})
}

func (s *Service) search(
	ctx context.Context,
	name string,
	req SearchRequest,
	list func(ctx context.Context) ([]string, error),
) ([][]string, error) {
	if req.DocType == "" {
		return nil, apperror.NewInvalidInput("doctype", "doctype is required")
	}

	ctx, span := tracer.Start(ctx, "lookup."+name,
		trace.WithAttributes(
			attribute.String("lookup.doctype", req.DocType),
			attribute.Int("lookup.voucher_nos", len(req.Filters.VoucherNoValues())),
		))
	defer span.End()

	var values []string
	run := func(ctx context.Context) error {
		var err error
		values, err = list(ctx)
		return err
	}

	var err error
	if s.txm != nil {
		err = s.txm.ReadOnly(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("lookup %s: %w", name, err)
	}

	return toTuples(values), nil
}

func toTuples(values []string) [][]string {
	out := make([][]string, len(values))
	for i, v := range values {
		out[i] = []string{v}
	}
	return out
}
