package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Engine runs the reconciliation of one source over a list of sets.
// It is synchronous: cards are processed strictly in set then local number order.
type Engine struct {
	tables *Tables
	index  *Index
	logger *zap.Logger
}

// NewEngine creates an engine around a built catalog index.
func NewEngine(tables *Tables, index *Index, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{tables: tables, index: index, logger: logger}
}

// Run scrapes every selected position of every set through src and returns the
// reconciled records.
//
// Extraction failures are counted per set; after MaxConsecutiveFailures+1 in a row
// the rest of the set is abandoned and the records collected so far are kept.
// Every position consumes a global id, failed ones included, so ids do not
// depend on which pages happened to fail. Run only returns an error when ctx is
// done, together with the partial result.
func (e *Engine) Run(ctx context.Context, src Source, sets []SetDefinition, opts RunOptions) (*RunResult, error) {
	alloc := NewAllocator(e.tables.Sets, e.tables.Gaps)
	builder := NewBuilder(e.tables, e.index, src.Language(), e.logger)

	result := &RunResult{
		Language: src.Language(),
		Eligible: make(map[string][]string),
	}

	total := 0
	for _, set := range sets {
		start, end := opts.bounds(set)
		if end >= start {
			total += end - start + 1
		}
	}
	processed := 0

	e.logger.Info("Starting run",
		zap.String("source", src.Name()),
		zap.Int("sets", len(sets)),
		zap.Int("positions", total),
	)

	for _, set := range sets {
		start, end := opts.bounds(set)
		sr := SetResult{Set: set}
		l := e.logger.With(zap.String("set", set.Code))

		alloc.Reset(set.Code)
		alloc.Skip(start - 1)
		l.Info("Processing set",
			zap.String("name", set.DisplayName),
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("start_offset", set.GlobalStartOffset),
		)

		consecutive := 0
		for n := start; n <= end; n++ {
			if err := ctx.Err(); err != nil {
				result.Sets = append(result.Sets, sr)
				return result, err
			}

			globalID := alloc.Next()
			processed++

			raw, err := src.Extract(ctx, set, n)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					result.Sets = append(result.Sets, sr)
					return result, ctxErr
				}
				sr.Failures++
				consecutive++
				l.Warn("Card extraction failed",
					zap.Int("number", n),
					zap.Int("consecutive", consecutive),
					zap.Error(err),
				)
				if consecutive > MaxConsecutiveFailures {
					sr.Abandoned = true
					sr.AbandonedAt = n
					sr.Err = fmt.Errorf("%w: %s stopped at %d: %v", ErrSetAbandoned, set.Code, n, err)
					l.Warn("Abandoning set", zap.Int("number", n), zap.Int("kept", len(sr.Records)))
					break
				}
				continue
			}
			consecutive = 0

			if raw.LocalNumber <= 0 {
				raw.LocalNumber = n
			}
			rec := builder.Build(set, globalID, raw)
			if rec.CanonicalID == "" {
				sr.Unresolved++
			}
			sr.Records = append(sr.Records, rec)

			if rec.Eligible {
				if rec.CanonicalID != "" {
					result.Eligible[set.Code] = append(result.Eligible[set.Code], rec.CanonicalID)
				} else {
					sr.UnresolvedEligible++
					l.Warn("Eligible card has no canonical id", zap.Int("number", n))
				}
			}

			l.Debug("Card reconciled",
				zap.Int("number", n),
				zap.Int("global_id", rec.GlobalSequenceID),
				zap.String("canonical_id", rec.CanonicalID),
				zap.String("pack", rec.PackAssignment),
				zap.Bool("eligible", rec.Eligible),
				zap.String("progress", fmt.Sprintf("%.1f%%", float64(processed)*100/float64(total))),
			)
		}

		result.Sets = append(result.Sets, sr)
		l.Info("Set done",
			zap.Int("records", len(sr.Records)),
			zap.Int("failures", sr.Failures),
			zap.Int("unresolved", sr.Unresolved),
			zap.Int("unresolved_eligible", sr.UnresolvedEligible),
			zap.Bool("abandoned", sr.Abandoned),
		)
	}

	return result, nil
}
