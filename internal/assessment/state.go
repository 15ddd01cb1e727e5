package assessment

import "strings"

// State is where a learner is in the feedback loop. The zero value is the
// initial state.
type State struct {
	prior []string
}

// Initial is the state for a first summary.
func Initial() State {
	return State{}
}

// Resuming is the state for a resubmission that must address prior. An
// empty prior list is the initial state.
func Resuming(prior []string) State {
	return State{prior: dedupe(prior)}
}

// StateFor routes a request: resuming iff prior carries missing points.
func StateFor(prior *Feedback) State {
	if prior == nil || len(prior.MissingPoints) == 0 {
		return Initial()
	}
	return Resuming(prior.MissingPoints)
}

// IsResuming reports whether prior points are being re-checked.
func (s State) IsResuming() bool {
	return len(s.prior) > 0
}

// Prior returns the points being re-checked.
func (s State) Prior() []string {
	return clone(s.prior)
}

// narrow maps the items of got back onto the prior list, in prior order and
// without duplicates. Items are compared after normalizePoint so that an echo
// with different case, spacing or trailing punctuation still counts as open.
// When got is non-empty but matches nothing, every prior point stays open.
func (s State) narrow(got []string) []string {
	open := make(map[string]bool, len(got))
	for _, g := range got {
		if k := normalizePoint(g); k != "" {
			open[k] = true
		}
	}
	out := make([]string, 0, len(s.prior))
	for _, p := range s.prior {
		if open[normalizePoint(p)] {
			out = append(out, p)
		}
	}
	if len(out) == 0 && len(open) > 0 {
		return clone(s.prior)
	}
	return out
}

func normalizePoint(p string) string {
	p = strings.Join(strings.Fields(p), " ")
	p = strings.TrimRight(p, ".,;:!? ")
	return strings.ToLower(p)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
