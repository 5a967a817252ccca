package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/c360/semkg/errors"
)

// Term is one position of a triple pattern: either a variable ("?e") or a
// constant compared against the statement position's lexical form.
type Term struct {
	varName string
	value   string
}

// Var constructs a variable term. Variable names must start with '?'.
func Var(name string) Term {
	return Term{varName: name}
}

// Const constructs a constant term.
func Const(value string) Term {
	return Term{value: value}
}

// IsVar reports whether the term is a variable.
func (t Term) IsVar() bool {
	return t.varName != ""
}

// TriplePattern matches statements position by position. Constants must
// equal the statement's lexical form; variables bind to it.
type TriplePattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// CompareOp is a comparison operator for filters.
type CompareOp string

const (
	OpEQ CompareOp = "="
	OpNE CompareOp = "!="
	OpGT CompareOp = ">"
	OpGE CompareOp = ">="
	OpLT CompareOp = "<"
	OpLE CompareOp = "<="
)

// Filter constrains a bound variable. When both the binding and the operand
// parse as floats the comparison is numeric, otherwise lexical.
type Filter struct {
	Var     string
	Op      CompareOp
	Operand string
}

// AggFunc is an aggregation function.
type AggFunc string

const (
	// AggCount counts the rows in a group where the variable is bound.
	AggCount AggFunc = "count"
	// AggMax takes the numeric maximum of the variable within a group.
	AggMax AggFunc = "max"
)

// Aggregate computes a per-group value bound to a fresh variable.
type Aggregate struct {
	Func AggFunc
	Var  string
	As   string
}

// Pattern is a declarative query over the statement set: triple patterns
// with shared variables, comparison filters, optional grouping with
// aggregates and a having clause, ordering and limiting.
//
// A malformed pattern is a programming error and the one condition under
// which Query fails loudly; every well-formed pattern that matches nothing
// returns an empty result.
type Pattern struct {
	// Select lists the variables returned per binding. With GroupBy or
	// Aggregates present, only grouped variables and aggregate outputs are
	// selectable.
	Select []string

	// Where is the conjunctive set of triple patterns.
	Where []TriplePattern

	// Filters constrain bindings before grouping.
	Filters []Filter

	// GroupBy groups bindings by the listed variables. Empty GroupBy with
	// Aggregates present forms a single global group.
	GroupBy []string

	// Aggregates are computed per group.
	Aggregates []Aggregate

	// Having filters groups after aggregation. Having variables must be
	// aggregate outputs or grouped variables.
	Having []Filter

	// OrderBy sorts results by the named variable, numeric-aware.
	OrderBy string

	// Descending reverses the sort order.
	Descending bool

	// Limit truncates the result. Zero means no limit.
	Limit int
}

// Binding maps variable names to the string values they matched.
type Binding map[string]string

const queryComponent = "Store"

// Query executes a pattern against the statement set and returns one binding
// per result row. Results without an explicit OrderBy come back in
// insertion-correlated order.
func (s *Store) Query(p Pattern) ([]Binding, error) {
	if err := s.validatePattern(p); err != nil {
		return nil, err
	}

	rows := []Binding{{}}
	for _, tp := range p.Where {
		rows = s.matchPattern(rows, tp)
		if len(rows) == 0 {
			break
		}
	}

	rows = applyFilters(rows, p.Filters)

	if len(p.GroupBy) > 0 || len(p.Aggregates) > 0 {
		rows = groupRows(rows, p.GroupBy, p.Aggregates)
		rows = applyFilters(rows, p.Having)
	}

	if p.OrderBy != "" {
		orderRows(rows, p.OrderBy, p.Descending)
	}

	if p.Limit > 0 && len(rows) > p.Limit {
		rows = rows[:p.Limit]
	}

	return projectRows(rows, p.Select), nil
}

// validatePattern rejects malformed patterns with a classified invalid
// error. This is the query engine's only loud failure path.
func (s *Store) validatePattern(p Pattern) error {
	if len(p.Where) == 0 {
		return errors.WrapInvalid(errors.ErrInvalidPattern,
			queryComponent, "Query", "pattern has no where clause")
	}
	if len(p.Select) == 0 {
		return errors.WrapInvalid(errors.ErrInvalidPattern,
			queryComponent, "Query", "pattern selects no variables")
	}

	bound := make(map[string]bool)
	for i, tp := range p.Where {
		for _, term := range []Term{tp.Subject, tp.Predicate, tp.Object} {
			if !term.IsVar() {
				continue
			}
			if !strings.HasPrefix(term.varName, "?") {
				return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
					fmt.Sprintf("variable %q in pattern %d does not start with '?'", term.varName, i))
			}
			bound[term.varName] = true
		}
	}

	for _, agg := range p.Aggregates {
		if agg.Func != AggCount && agg.Func != AggMax {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("unknown aggregate function %q", agg.Func))
		}
		if !bound[agg.Var] {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("aggregate over unbound variable %q", agg.Var))
		}
		if agg.As == "" {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("aggregate over %q has no output name", agg.Var))
		}
		bound[agg.As] = true
	}

	grouped := make(map[string]bool)
	for _, g := range p.GroupBy {
		if !bound[g] {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("group by unbound variable %q", g))
		}
		grouped[g] = true
	}

	aggregated := len(p.GroupBy) > 0 || len(p.Aggregates) > 0
	outputs := bound
	if aggregated {
		outputs = make(map[string]bool)
		for g := range grouped {
			outputs[g] = true
		}
		for _, agg := range p.Aggregates {
			outputs[agg.As] = true
		}
	}

	for _, sel := range p.Select {
		if !outputs[sel] {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("select of unavailable variable %q", sel))
		}
	}
	for _, f := range p.Filters {
		if !validOp(f.Op) {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("unknown filter operator %q", f.Op))
		}
		if !bound[f.Var] {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("filter on unbound variable %q", f.Var))
		}
	}
	for _, f := range p.Having {
		if !validOp(f.Op) {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("unknown having operator %q", f.Op))
		}
		if !outputs[f.Var] {
			return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
				fmt.Sprintf("having on unavailable variable %q", f.Var))
		}
	}
	if p.OrderBy != "" && !outputs[p.OrderBy] {
		return errors.WrapInvalid(errors.ErrInvalidPattern, queryComponent, "Query",
			fmt.Sprintf("order by unavailable variable %q", p.OrderBy))
	}
	if len(p.Having) > 0 && !aggregated {
		return errors.WrapInvalid(errors.ErrInvalidPattern,
			queryComponent, "Query", "having clause without grouping")
	}

	return nil
}

func validOp(op CompareOp) bool {
	switch op {
	case OpEQ, OpNE, OpGT, OpGE, OpLT, OpLE:
		return true
	default:
		return false
	}
}

// candidates picks the narrowest index for a triple pattern: known subjects
// use the subject index, known predicates the predicate index; fully
// variable patterns scan everything.
func (s *Store) candidates(binding Binding, tp TriplePattern) []int {
	if subj, ok := resolveTerm(binding, tp.Subject); ok {
		return s.bySubject[subj]
	}
	if pred, ok := resolveTerm(binding, tp.Predicate); ok {
		return s.byPredicate[pred]
	}
	all := make([]int, len(s.statements))
	for i := range s.statements {
		all[i] = i
	}
	return all
}

// resolveTerm returns the concrete value of a term under a binding, if any.
func resolveTerm(binding Binding, t Term) (string, bool) {
	if !t.IsVar() {
		return t.value, true
	}
	v, ok := binding[t.varName]
	return v, ok
}

// matchPattern extends each binding with every statement matching the
// pattern under it.
func (s *Store) matchPattern(rows []Binding, tp TriplePattern) []Binding {
	var out []Binding
	for _, binding := range rows {
		for _, pos := range s.candidates(binding, tp) {
			st := s.statements[pos]
			next, ok := unify(binding, tp, st)
			if ok {
				out = append(out, next)
			}
		}
	}
	return out
}

// unify attempts to match a statement against a pattern under an existing
// binding, returning the extended binding on success.
func unify(binding Binding, tp TriplePattern, st Statement) (Binding, bool) {
	positions := []struct {
		term  Term
		value string
	}{
		{tp.Subject, st.Subject},
		{tp.Predicate, st.Predicate},
		{tp.Object, st.Object.Lexical()},
	}

	// Check constants and already-bound variables before copying.
	for _, pos := range positions {
		if resolved, ok := resolveTerm(binding, pos.term); ok && resolved != pos.value {
			return nil, false
		}
	}

	next := make(Binding, len(binding)+3)
	for k, v := range binding {
		next[k] = v
	}
	for _, pos := range positions {
		if pos.term.IsVar() {
			next[pos.term.varName] = pos.value
		}
	}
	return next, true
}

func applyFilters(rows []Binding, filters []Filter) []Binding {
	if len(filters) == 0 {
		return rows
	}
	out := rows[:0:0]
	for _, row := range rows {
		keep := true
		for _, f := range filters {
			if !evalFilter(row[f.Var], f) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// evalFilter compares a bound value against the filter operand, numerically
// when both sides parse as floats.
func evalFilter(value string, f Filter) bool {
	cmp := compareLexical(value, f.Operand)
	switch f.Op {
	case OpEQ:
		return cmp == 0
	case OpNE:
		return cmp != 0
	case OpGT:
		return cmp > 0
	case OpGE:
		return cmp >= 0
	case OpLT:
		return cmp < 0
	case OpLE:
		return cmp <= 0
	default:
		return false
	}
}

// compareLexical orders two binding values, numeric-aware.
func compareLexical(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// groupRows folds bindings into groups keyed by the GroupBy variables and
// computes the aggregates per group. Groups appear in first-seen order.
func groupRows(rows []Binding, groupBy []string, aggregates []Aggregate) []Binding {
	type group struct {
		binding Binding
		rows    []Binding
	}

	var order []string
	groups := make(map[string]*group)

	for _, row := range rows {
		keyParts := make([]string, len(groupBy))
		for i, g := range groupBy {
			keyParts[i] = row[g]
		}
		key := strings.Join(keyParts, "\x00")

		grp, ok := groups[key]
		if !ok {
			binding := make(Binding, len(groupBy)+len(aggregates))
			for _, g := range groupBy {
				binding[g] = row[g]
			}
			grp = &group{binding: binding}
			groups[key] = grp
			order = append(order, key)
		}
		grp.rows = append(grp.rows, row)
	}

	out := make([]Binding, 0, len(order))
	for _, key := range order {
		grp := groups[key]
		for _, agg := range aggregates {
			switch agg.Func {
			case AggCount:
				count := 0
				for _, row := range grp.rows {
					if _, ok := row[agg.Var]; ok {
						count++
					}
				}
				grp.binding[agg.As] = strconv.Itoa(count)
			case AggMax:
				maxVal := 0.0
				found := false
				for _, row := range grp.rows {
					if v, err := strconv.ParseFloat(row[agg.Var], 64); err == nil {
						if !found || v > maxVal {
							maxVal = v
							found = true
						}
					}
				}
				if found {
					grp.binding[agg.As] = strconv.FormatFloat(maxVal, 'f', -1, 64)
				}
			}
		}
		out = append(out, grp.binding)
	}
	return out
}

func orderRows(rows []Binding, orderBy string, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareLexical(rows[i][orderBy], rows[j][orderBy])
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// projectRows narrows each binding to the selected variables.
func projectRows(rows []Binding, sel []string) []Binding {
	out := make([]Binding, 0, len(rows))
	for _, row := range rows {
		projected := make(Binding, len(sel))
		for _, v := range sel {
			if val, ok := row[v]; ok {
				projected[v] = val
			}
		}
		out = append(out, projected)
	}
	return out
}
