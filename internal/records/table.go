package records

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

// Table is an in-memory records table answering the fetch / get / create / update
// operations of the protocol. Records are kept in external field naming.
type Table struct {
	mu   sync.RWMutex
	name string
	rows []map[string]any
}

// NewTable loads a JSON array of records.
func NewTable(name string, raw []byte) (*Table, error) {
	var rows []map[string]any
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("load table %s: %w", name, err)
	}
	return &Table{name: name, rows: rows}, nil
}

func (t *Table) Name() string { return t.name }

// Fetch returns the records matching q, projected to q.Fields (plus Id) when set.
func (t *Table) Fetch(q Query) []map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []map[string]any{}
	for _, r := range t.rows {
		if Match(r, q) {
			out = append(out, project(r, q.Fields))
		}
	}
	for i := len(q.OrderBy) - 1; i >= 0; i-- {
		ob := q.OrderBy[i]
		desc := strings.EqualFold(ob.SortType, "DESC")
		sort.SliceStable(out, func(a, b int) bool {
			c := compare(out[a][ob.FieldName], out[b][ob.FieldName])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if p := q.PagingInfo; p != nil {
		if p.Offset >= len(out) {
			return []map[string]any{}
		}
		out = out[max(p.Offset, 0):]
		if p.Limit > 0 && p.Limit < len(out) {
			out = out[:p.Limit]
		}
	}
	return out
}

// Get returns the record with the given Id.
func (t *Table) Get(id int) (map[string]any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i := t.index(id); i >= 0 {
		return copyRow(t.rows[i]), nil
	}
	return nil, ErrNotFound
}

// Create appends rec, assigning the next Id when it has none.
func (t *Table) Create(rec map[string]any) (map[string]any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := copyRow(rec)
	id, ok := idOf(row)
	if !ok {
		id = t.nextID()
		row["Id"] = id
	} else if t.index(id) >= 0 {
		return nil, apperr.New(apperr.Validation, fmt.Sprintf("%s %d already exists", t.name, id))
	}
	t.rows = append(t.rows, row)
	return copyRow(row), nil
}

// Update merges rec into the stored record named by its Id.
func (t *Table) Update(rec map[string]any) (map[string]any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := idOf(rec)
	if !ok {
		return nil, apperr.New(apperr.Validation, "Id is required")
	}
	i := t.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	for k, v := range rec {
		t.rows[i][k] = v
	}
	return copyRow(t.rows[i]), nil
}

func (t *Table) index(id int) int {
	for i, r := range t.rows {
		if rid, ok := idOf(r); ok && rid == id {
			return i
		}
	}
	return -1
}

func (t *Table) nextID() int {
	next := 1
	for _, r := range t.rows {
		if id, ok := idOf(r); ok && id >= next {
			next = id + 1
		}
	}
	return next
}

// Match reports whether rec satisfies every where condition and every where group.
func Match(rec map[string]any, q Query) bool {
	for _, c := range q.Where {
		if !matchCondition(rec, c) {
			return false
		}
	}
	for _, g := range q.WhereGroups {
		if !matchGroup(rec, g) {
			return false
		}
	}
	return true
}

func matchGroup(rec map[string]any, g WhereGroup) bool {
	or := strings.EqualFold(g.Operator, "OR")
	if len(g.SubGroups) == 0 {
		return true
	}
	for _, sg := range g.SubGroups {
		ok := true
		for _, c := range sg.Conditions {
			if !matchCondition(rec, c) {
				ok = false
				break
			}
		}
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or
}

// matchCondition compares textual forms, ignoring case. A condition matches when any value does.
func matchCondition(rec map[string]any, c Condition) bool {
	v, ok := rec[c.FieldName]
	if !ok || v == nil {
		return false
	}
	field := strings.ToLower(text(v))
	for _, want := range c.Values {
		w := strings.ToLower(text(want))
		switch c.Operator {
		case OpEqualTo:
			if field == w {
				return true
			}
		case OpContains:
			if strings.Contains(field, w) {
				return true
			}
		}
	}
	return false
}

func project(rec map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return copyRow(rec)
	}
	out := map[string]any{"Id": rec["Id"]}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}
	return out
}

func compare(a, b any) int {
	fa, errA := strconv.ParseFloat(text(a), 64)
	fb, errB := strconv.ParseFloat(text(b), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(text(a)), strings.ToLower(text(b)))
}

func idOf(rec map[string]any) (int, bool) {
	v, ok := rec["Id"]
	if !ok || v == nil {
		return 0, false
	}
	id, err := strconv.Atoi(text(v))
	return id, err == nil
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func copyRow(r map[string]any) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
