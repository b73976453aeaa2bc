package records

import "context"

// Source port: read-only access to platform-owned bid/tender/profile rows.
// The platform resolves tenants and ownership before this service runs;
// implementations never write.
type Source interface {
	// TenderBids returns the bids submitted to a tender, restricted to the
	// given suppliers when the slice is non-empty.
	TenderBids(ctx context.Context, tenant string, tenderID TenderID, supplierIDs []SupplierID) ([]Bid, error)
	Tender(ctx context.Context, tenant string, id TenderID) (*Tender, error)

	// SupplierBids returns a supplier's full bid history, oldest first.
	SupplierBids(ctx context.Context, tenant string, id SupplierID) ([]Bid, error)
	SupplierProfile(ctx context.Context, tenant string, id SupplierID) (*SupplierProfile, error)

	// TenderBudgets resolves budgets for the given tenders; tenders without a
	// disclosed budget are absent from the map.
	TenderBudgets(ctx context.Context, tenant string, ids []TenderID) (map[TenderID]float64, error)
}
