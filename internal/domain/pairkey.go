package domain

// PairKey builds the order-independent identifier for a report pair. The two
// ids are sorted lexicographically and joined, so PairKey(a, b) == PairKey(b, a)
// for any a and b. The result is the value behind the unique index on
// match_decisions and must stay stable across releases.
func PairKey(reportA, reportB string) string {
	if reportA > reportB {
		reportA, reportB = reportB, reportA
	}
	return reportA + ":" + reportB
}
