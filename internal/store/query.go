package store

import "strings"

// whereBuilder accumulates AND-ed conditions with their arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// applyOpts adds the sequence and timestamp bounds from opts.
func (w *whereBuilder) applyOpts(opts QueryOpts) {
	if opts.After > 0 {
		w.add("sequence > ?", opts.After)
	}
	if opts.Before > 0 {
		w.add("sequence < ?", opts.Before)
	}
	if !opts.From.IsZero() {
		w.add("timestamp >= ?", toNanos(opts.From))
	}
	if !opts.To.IsZero() {
		w.add("timestamp <= ?", toNanos(opts.To))
	}
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limitClause returns a LIMIT clause for positive limits.
func limitClause(w *whereBuilder, limit int) string {
	if limit <= 0 {
		return ""
	}
	w.args = append(w.args, limit)
	return " LIMIT ?"
}
