package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validBid(id string) Bid {
	return Bid{
		ID:          BidID(id),
		SupplierID:  "sup-1",
		TenderID:    "tender-1",
		Amount:      100,
		SubmittedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:      BidSubmitted,
	}
}

func TestNormalizeBidsHappyPath(t *testing.T) {
	bids, warnings, err := NormalizeBids([]Bid{validBid("a"), validBid("b")})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, bids, 2)
}

func TestNormalizeBidsRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Bid)
	}{
		{"empty id", func(b *Bid) { b.ID = "" }},
		{"empty supplier", func(b *Bid) { b.SupplierID = "  " }},
		{"empty tender", func(b *Bid) { b.TenderID = "" }},
		{"negative amount", func(b *Bid) { b.Amount = -1 }},
		{"zero timestamp", func(b *Bid) { b.SubmittedAt = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBid("a")
			tc.mutate(&b)
			_, _, err := NormalizeBids([]Bid{b})
			require.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestNormalizeBidsUnknownStatusWarns(t *testing.T) {
	b := validBid("a")
	b.Status = "withdrawn"
	bids, warnings, err := NormalizeBids([]Bid{b, validBid("c")})
	require.NoError(t, err)
	require.Len(t, bids, 2, "odd status is kept, never dropped")
	require.Len(t, warnings, 1)
	require.Equal(t, BidID("a"), warnings[0].BidID)
	require.Contains(t, warnings[0].Message, "withdrawn")
}

func TestNormalizeTender(t *testing.T) {
	got, err := NormalizeTender(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = NormalizeTender(&Tender{ID: "", Budget: 100})
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = NormalizeTender(&Tender{ID: "t1", Budget: -1})
	require.ErrorIs(t, err, ErrInvalidRecord)

	got, err = NormalizeTender(&Tender{ID: "t1", Budget: 0})
	require.NoError(t, err)
	require.NotNil(t, got, "zero budget just means undisclosed")
}

func TestNormalizeProfileOutOfRangeScoreIgnored(t *testing.T) {
	score := 250
	in := &SupplierProfile{ID: "sup-1", Verification: VerificationVerified, RiskScore: &score}
	p, warnings, err := NormalizeProfile(in)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Nil(t, p.RiskScore)
	require.NotNil(t, in.RiskScore, "input profile is not mutated")
}
