package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/docufind/go-match-backend/internal/domain"
	"github.com/docufind/go-match-backend/internal/geo"
)

// Weights configures the contribution of each signal scorer. The zero value is
// not usable; start from DefaultWeights and override selectively.
type Weights struct {
	// ExactNumber is awarded when both document numbers are present and equal
	// under case-insensitive, whitespace-trimmed comparison.
	ExactNumber int

	// Geographic proximity bands, nearest first. A pair closer than
	// GeoNearKm earns GeoNear, closer than GeoCloseKm earns GeoClose,
	// closer than GeoRegionKm earns GeoRegion, otherwise 0. A report
	// without a location contributes 0: no bonus, no penalty.
	GeoNear, GeoClose, GeoRegion       int
	GeoNearKm, GeoCloseKm, GeoRegionKm float64

	// Temporal proximity bands over |createdAt difference| in days.
	TemporalNear, TemporalClose         int
	TemporalNearDays, TemporalCloseDays float64

	// TextWeight scales Jaccard title similarity: floor(similarity * TextWeight)
	// is contributed when similarity exceeds TextMinJaccard.
	TextWeight     int
	TextMinJaccard float64
}

// DefaultWeights returns the canonical weighted-signal scheme:
// 50 (exact number) + 30/15/5 (geo <5/<20/<50 km) + 15/10 (time <3/<7 days)
// + up to 10 (title similarity).
func DefaultWeights() Weights {
	return Weights{
		ExactNumber: 50,

		GeoNear:     30,
		GeoClose:    15,
		GeoRegion:   5,
		GeoNearKm:   5,
		GeoCloseKm:  20,
		GeoRegionKm: 50,

		TemporalNear:      15,
		TemporalClose:     10,
		TemporalNearDays:  3,
		TemporalCloseDays: 7,

		TextWeight:     10,
		TextMinJaccard: 0.5,
	}
}

// Contribution is the output of a single signal scorer: a bounded point value
// and, when points were awarded, a human-readable reason.
type Contribution struct {
	Points int
	Reason string
}

// ExactNumberScore awards w.ExactNumber when both reports carry a document
// number and the two are equal ignoring case and surrounding whitespace.
// A missing number on either side contributes 0 rather than failing the pair.
func ExactNumberScore(w Weights, a, b domain.DocumentReport) Contribution {
	an := strings.TrimSpace(a.DocumentNumber)
	bn := strings.TrimSpace(b.DocumentNumber)
	if an == "" || bn == "" {
		return Contribution{}
	}
	if !strings.EqualFold(an, bn) {
		return Contribution{}
	}
	return Contribution{Points: w.ExactNumber, Reason: "document number matches"}
}

// GeoProximityScore awards banded points by great-circle distance between the
// two report locations. If either location is missing the contribution is 0.
func GeoProximityScore(w Weights, a, b domain.DocumentReport) Contribution {
	alat, alng, aok := a.Location()
	blat, blng, bok := b.Location()
	if !aok || !bok {
		return Contribution{}
	}

	d := geo.Haversine(alat, alng, blat, blng)
	var points int
	switch {
	case d < w.GeoNearKm:
		points = w.GeoNear
	case d < w.GeoCloseKm:
		points = w.GeoClose
	case d < w.GeoRegionKm:
		points = w.GeoRegion
	default:
		return Contribution{}
	}
	return Contribution{
		Points: points,
		Reason: fmt.Sprintf("locations %.1f km apart", d),
	}
}

// TemporalProximityScore awards banded points by the absolute difference in
// days between the two creation timestamps.
func TemporalProximityScore(w Weights, a, b domain.DocumentReport) Contribution {
	days := math.Abs(a.CreatedAt.Sub(b.CreatedAt).Hours()) / 24
	switch {
	case days < w.TemporalNearDays:
		return Contribution{
			Points: w.TemporalNear,
			Reason: fmt.Sprintf("reported %d day(s) apart", int(days)),
		}
	case days < w.TemporalCloseDays:
		return Contribution{
			Points: w.TemporalClose,
			Reason: fmt.Sprintf("reported %d day(s) apart", int(days)),
		}
	default:
		return Contribution{}
	}
}

// TextSimilarityScore awards floor(jaccard * w.TextWeight) when the Jaccard
// word-set similarity of the two titles exceeds w.TextMinJaccard.
func TextSimilarityScore(w Weights, a, b domain.DocumentReport) Contribution {
	sim := Jaccard(a.Title, b.Title)
	if sim <= w.TextMinJaccard {
		return Contribution{}
	}
	return Contribution{
		Points: int(math.Floor(sim * float64(w.TextWeight))),
		Reason: fmt.Sprintf("similar titles (%.0f%% word overlap)", sim*100),
	}
}

// scorers lists the signal scorers in declaration order. Reason concatenation
// follows this order, so it must not be reordered without migrating consumers.
var scorers = []func(Weights, domain.DocumentReport, domain.DocumentReport) Contribution{
	ExactNumberScore,
	GeoProximityScore,
	TemporalProximityScore,
	TextSimilarityScore,
}

// Score runs every signal scorer over the pair and aggregates the result into
// a composite confidence score clipped to [0,100], plus the non-empty reasons
// in scorer-declaration order (exact, geo, temporal, text). The output is
// deterministic for identical inputs.
func Score(w Weights, a, b domain.DocumentReport) (int, []string) {
	total := 0
	reasons := make([]string, 0, len(scorers))
	for _, score := range scorers {
		c := score(w, a, b)
		total += c.Points
		if c.Points != 0 && c.Reason != "" {
			reasons = append(reasons, c.Reason)
		}
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total, reasons
}
