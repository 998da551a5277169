package lookup

import "context"

// Repository runs lookup searches. Every method returns distinct values in
// ascending byte order, restricted to page.
type Repository interface {
	// ListVoucherTypes returns document types declaring BundleField directly
	// or through a child table, optionally matching text as a substring.
	ListVoucherTypes(ctx context.Context, text string, page Page) ([]string, error)

	// ListEntryValues searches field among entries of submitted,
	// non-cancelled bundles for voucherNos. An empty text matches any
	// non-empty value.
	ListEntryValues(ctx context.Context, field EntryField, voucherNos []string, text string, page Page) ([]string, error)

	// ListSerialRegistry searches the serial number registry, scoped by
	// itemCode when it is not empty.
	ListSerialRegistry(ctx context.Context, itemCode, text string, page Page) ([]string, error)

	// ListBatchRegistry searches the batch registry, scoped by itemCode when
	// it is not empty.
	ListBatchRegistry(ctx context.Context, itemCode, text string, page Page) ([]string, error)
}
