package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

// AnalyzeBidPatterns runs the pricing, timing and pairwise-relation analyzers
// over one tender's bid set. The three analyzers are pure and share nothing,
// so they fan out; the aggregate is assembled only after all of them finish.
// A cancelled context returns an error, never a partial result.
func AnalyzeBidPatterns(ctx context.Context, rawBids []records.Bid, rawTender *records.Tender) (*Result, error) {
	bids, warnings, err := records.NormalizeBids(rawBids)
	if err != nil {
		return nil, err
	}
	tender, err := records.NormalizeTender(rawTender)
	if err != nil {
		return nil, err
	}

	var (
		pricing  []Pattern
		timing   []Pattern
		relation []Pattern
		edges    []GraphEdge
	)

	// Wait cancels the group-derived context on return, so the final
	// cancellation check has to run against the caller's ctx.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		pricing = PricingPatterns(bids, tender)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		timing = TimingPatterns(bids)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		relation, edges = RelationPatterns(bids)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score, patterns := Aggregate(pricing, timing, relation)
	if patterns == nil {
		patterns = []Pattern{}
	}

	res := &Result{
		EntityType: EntityTender,
		Kind:       KindBidPatterns,
		RiskScore:  score,
		Patterns:   patterns,
		Graph:      BuildGraph(tender, bids, edges),
		Warnings:   warnings,
	}
	if tender != nil {
		res.EntityID = string(tender.ID)
	}
	return res, nil
}

// AnalyzeCompanyBackground evaluates a single supplier. A supplier with no
// bid history yields a zero result with no patterns: "no data" is not an
// error and must stay distinguishable from a failed analysis.
func AnalyzeCompanyBackground(ctx context.Context, supplierID records.SupplierID, rawBids []records.Bid, budgets map[records.TenderID]float64, rawProfile *records.SupplierProfile) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		EntityID:   string(supplierID),
		EntityType: EntityUser,
		Kind:       KindCompanyBackground,
		Patterns:   []Pattern{},
	}

	if len(rawBids) == 0 {
		return res, nil
	}

	bids, warnings, err := records.NormalizeBids(rawBids)
	if err != nil {
		return nil, err
	}
	profile, pwarn, err := records.NormalizeProfile(rawProfile)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(warnings, pwarn...)

	score, patterns := Aggregate(BackgroundPatterns(bids, budgets, profile))
	res.RiskScore = score
	if patterns != nil {
		res.Patterns = patterns
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
