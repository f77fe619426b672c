package service

import (
	"fmt"
	"strings"

	"go-warehouse-api/internal/model"
)

// TransitionTable lists the allowed state edges. A table with no edges is
// permissive: any known state may be overwritten with any other. Re-applying
// the current state is always allowed.
type TransitionTable[S ~string] struct {
	states []S
	edges  map[S]map[S]bool
}

func PermissiveTransitions[S ~string](states []S) TransitionTable[S] {
	return TransitionTable[S]{states: states}
}

// ParseTransitions reads "FROM:TO1|TO2;FROM2:TO3". Blank input yields a permissive table.
func ParseTransitions[S ~string](rules string, states []S) (TransitionTable[S], error) {
	t := TransitionTable[S]{states: states}
	rules = strings.TrimSpace(rules)
	if rules == "" {
		return t, nil
	}

	known := make(map[S]bool, len(states))
	for _, s := range states {
		known[s] = true
	}
	parse := func(raw string) (S, error) {
		s := S(strings.ToUpper(strings.TrimSpace(raw)))
		if !known[s] {
			return s, fmt.Errorf("unknown state %q in transition table", raw)
		}
		return s, nil
	}

	t.edges = make(map[S]map[S]bool)
	for _, rule := range strings.Split(rules, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		from, targets, ok := strings.Cut(rule, ":")
		if !ok {
			return t, fmt.Errorf("transition rule %q must look like FROM:TO1|TO2", rule)
		}
		src, err := parse(from)
		if err != nil {
			return t, err
		}
		if t.edges[src] == nil {
			t.edges[src] = make(map[S]bool)
		}
		for _, to := range strings.Split(targets, "|") {
			if strings.TrimSpace(to) == "" {
				continue
			}
			dst, err := parse(to)
			if err != nil {
				return t, err
			}
			t.edges[src][dst] = true
		}
	}
	return t, nil
}

func (t TransitionTable[S]) Permissive() bool {
	return len(t.edges) == 0
}

func (t TransitionTable[S]) Allowed(from, to S) bool {
	if from == to || t.Permissive() {
		return true
	}
	return t.edges[from][to]
}

// Check returns an InvalidState error for a disallowed edge.
func (t TransitionTable[S]) Check(entity string, from, to S) error {
	if t.Allowed(from, to) {
		return nil
	}
	return invalidState("%s cannot move from %s to %s", entity, from, to)
}

func NewStageTransitions(rules string) (TransitionTable[model.BatchStage], error) {
	return ParseTransitions(rules, model.BatchStages)
}

func NewShipmentTransitions(rules string) (TransitionTable[model.ShipmentStatus], error) {
	return ParseTransitions(rules, model.ShipmentStatuses)
}
