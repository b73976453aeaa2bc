package analysis

import (
	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

func tenderNodeID(id records.TenderID) string { return "tender:" + string(id) }
func bidNodeID(id records.BidID) string       { return "bid:" + string(id) }

// BuildGraph assembles the relationship graph for a bid-pattern run: the
// tender node, one node per bid, a submitted edge per bid, plus whatever
// suspicious-relation edges the pairwise scorer produced.
func BuildGraph(tender *records.Tender, bids []records.Bid, suspicious []GraphEdge) *Graph {
	g := &Graph{}

	if tender != nil {
		g.Nodes = append(g.Nodes, GraphNode{
			ID:    tenderNodeID(tender.ID),
			Kind:  NodeTender,
			Label: string(tender.ID),
		})
	}
	for _, b := range bids {
		g.Nodes = append(g.Nodes, GraphNode{
			ID:    bidNodeID(b.ID),
			Kind:  NodeBid,
			Label: string(b.SupplierID),
		})
		if tender != nil {
			g.Edges = append(g.Edges, GraphEdge{
				From: bidNodeID(b.ID),
				To:   tenderNodeID(tender.ID),
				Kind: EdgeSubmitted,
			})
		}
	}
	g.Edges = append(g.Edges, suspicious...)

	return g
}
