package locus

import "fmt"

// Locus is a genomic region record from rnc_locus
type Locus struct {
	ID              int64    `json:"id"`
	AssemblyID      string   `json:"assemblyId"`
	LocusName       string   `json:"locusName"`
	PublicLocusName string   `json:"publicLocusName"`
	Chromosome      string   `json:"chromosome"`
	Strand          string   `json:"strand"`
	LocusStart      int64    `json:"locusStart"`
	LocusStop       int64    `json:"locusStop"`
	MemberCount     int64    `json:"memberCount"`
	Members         []Member `json:"locusMembers,omitempty"`
}

// Member links a region to a locus (rnc_locus_members)
type Member struct {
	ID               int64  `json:"id"`
	RegionID         int64  `json:"regionId"`
	LocusID          int64  `json:"locusId"`
	MembershipStatus string `json:"membershipStatus"`
}

// SideloadMembers is the only supported sideload option
const SideloadMembers = "locusMembers"

// SortField is a closed tag for the sortable locus attributes
type SortField string

const (
	SortByID          SortField = "id"
	SortByAssemblyID  SortField = "assemblyId"
	SortByLocusName   SortField = "locusName"
	SortByChromosome  SortField = "chromosome"
	SortByLocusStart  SortField = "locusStart"
	SortByLocusStop   SortField = "locusStop"
	SortByMemberCount SortField = "memberCount"
)

// sortColumns maps every sort tag to its column. Exhaustive; unmapped
// tags are rejected at the validation boundary, never at build time.
var sortColumns = map[SortField]string{
	SortByID:          "id",
	SortByAssemblyID:  "assembly_id",
	SortByLocusName:   "locus_name",
	SortByChromosome:  "chromosome",
	SortByLocusStart:  "locus_start",
	SortByLocusStop:   "locus_stop",
	SortByMemberCount: "member_count",
}

// ParseSortField validates a sortBy value
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if _, ok := sortColumns[f]; !ok {
		return "", fmt.Errorf("unknown sort field: %q", s)
	}
	return f, nil
}

// column returns the database column for the tag. Callers only see
// fields that passed ParseSortField, so a miss falls back to id.
func (f SortField) column() string {
	if col, ok := sortColumns[f]; ok {
		return col
	}
	return "id"
}

// SortOrder is the sort direction
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// ParseSortOrder validates a sortOrder value
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order: %q", s)
}

// Pagination bounds
const (
	DefaultPage  = 1
	DefaultLimit = 1000
	MaxLimit     = 1000
)

// Query holds the validated parameters of one locus request. Values
// arrive already type- and range-checked from the HTTP boundary; the
// plan builder may assume they are valid.
type Query struct {
	ID               *int64
	AssemblyID       string
	RegionIDs        []int64
	MembershipStatus string
	Sideload         []string
	Page             int
	Limit            int
	SortBy           SortField
	SortOrder        SortOrder
}

// withDefaults returns a copy with absent values resolved to their
// defaults. The receiver is never modified.
func (q Query) withDefaults() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortByID
	}
	if q.SortOrder == "" {
		q.SortOrder = OrderAsc
	}
	return q
}

// WantsSideload reports whether the query requests the given option.
// Repeated options are tolerated.
func (q Query) WantsSideload(option string) bool {
	for _, o := range q.Sideload {
		if o == option {
			return true
		}
	}
	return false
}

// Pagination is the paging metadata of a response envelope
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Envelope is the assembled response for one locus query. Included is
// present only when at least one member record was sideloaded.
type Envelope struct {
	Data       []Locus    `json:"data"`
	Pagination Pagination `json:"pagination"`
	Included   []Member   `json:"included,omitempty"`
}
