// Package records speaks the remote records API the storefront catalog can be served from:
// a small JSON protocol of fetch / get / create / update over named tables.
package records

import "encoding/json"

// Operators understood in conditions.
const (
	OpEqualTo  = "EqualTo"
	OpContains = "Contains"
)

// Condition compares one field against any of Values.
type Condition struct {
	FieldName string `json:"fieldName"`
	Operator  string `json:"operator"`
	Values    []any  `json:"values"`
}

// SubGroup is satisfied when all of its conditions are.
type SubGroup struct {
	Conditions []Condition `json:"conditions"`
}

// WhereGroup combines sub groups with Operator "AND" or "OR".
type WhereGroup struct {
	Operator  string     `json:"operator"`
	SubGroups []SubGroup `json:"subGroups"`
}

type OrderBy struct {
	FieldName string `json:"fieldName"`
	SortType  string `json:"sorttype"` // ASC or DESC
}

type Paging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Query is the body of a fetch request. Where conditions and groups are ANDed together.
type Query struct {
	Fields      []string     `json:"fields,omitempty"`
	Where       []Condition  `json:"where,omitempty"`
	WhereGroups []WhereGroup `json:"whereGroups,omitempty"`
	OrderBy     []OrderBy    `json:"orderBy,omitempty"`
	PagingInfo  *Paging      `json:"pagingInfo,omitempty"`
}

// Response is the envelope of every records API answer.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Results []Result        `json:"results,omitempty"`
}

// Result reports the outcome for one record of a create or update.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

type FieldError struct {
	FieldLabel string `json:"fieldLabel"`
	Message    string `json:"message"`
}

// WriteRequest is the body of create and update requests.
type WriteRequest struct {
	Records []json.RawMessage `json:"records"`
}
