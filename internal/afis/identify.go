package afis

import (
	"context"

	"github.com/jtejido/afislr/internal/minutia"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Identify ranks every candidate against query. See IdentifyContext.
func (d *Database) Identify(query []minutia.Minutia, maxResults int) []MatchResult {
	results, _ := d.IdentifyContext(context.Background(), query, maxResults)
	return results
}

// IdentifyContext verifies query against all candidates on a bounded worker
// pool, keeps results meeting MinSimilarityScore and MinMatchedMinutiae,
// sorts them by similarity (descending, ties in id order) and truncates to
// maxResults. maxResults <= 0 falls back to Config.MaxResults; if that is
// also <= 0 nothing is truncated. Cancelling ctx abandons the remaining
// comparisons and returns ctx.Err().
func (d *Database) IdentifyContext(ctx context.Context, query []minutia.Minutia, maxResults int) ([]MatchResult, error) {
	cands := d.snapshot()
	results := make([]MatchResult, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.workers())
	for i := range cands {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Verify(query, cands[i].minutiae, d.cfg)
			res.CandidateID = cands[i].id
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return d.rank(results, maxResults), nil
}

func (d *Database) rank(results []MatchResult, maxResults int) []MatchResult {
	kept := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if d.cfg.accepted(r) {
			kept = append(kept, r)
		}
	}
	slices.SortStableFunc(kept, func(a, b MatchResult) int {
		switch {
		case a.SimilarityScore > b.SimilarityScore:
			return -1
		case a.SimilarityScore < b.SimilarityScore:
			return 1
		}
		return 0
	})

	if maxResults <= 0 {
		maxResults = d.cfg.MaxResults
	}
	if maxResults > 0 && len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept
}
