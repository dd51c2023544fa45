package locus

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/davranaff/locusd/pkg/auth"
)

const locusColumns = "l.id, l.assembly_id, l.locus_name, l.public_locus_name, " +
	"l.chromosome, l.strand, l.locus_start, l.locus_stop, l.member_count"

// Plan is a fully-resolved, request-local description of one locus
// query: page SELECT, full-set COUNT, and their positional args. It is
// built once per request and handed to the store unchanged.
type Plan struct {
	SelectSQL  string
	SelectArgs []interface{}
	CountSQL   string
	CountArgs  []interface{}
	Page       int
	Limit      int
	Distinct   bool
}

// BuildPlan turns a validated query and the caller's role into a query
// plan. For the limited role it adds a mandatory membership join and an
// allow-list predicate on region id; input filters intersect with that
// restriction, they can never replace it. Building performs no I/O and
// does not mutate q.
func BuildPlan(q Query, role auth.Role, allowedRegionIDs []int64) Plan {
	q = q.withDefaults()

	var (
		preds []string
		args  []interface{}
	)
	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	joinMembers := false

	if q.ID != nil {
		preds = append(preds, "l.id = "+bind(*q.ID))
	}
	if q.AssemblyID != "" {
		preds = append(preds, "l.assembly_id = "+bind(q.AssemblyID))
	}
	if len(q.RegionIDs) > 0 {
		joinMembers = true
		preds = append(preds, "m.region_id = ANY("+bind(pq.Array(q.RegionIDs))+")")
	}
	if q.MembershipStatus != "" {
		joinMembers = true
		preds = append(preds, "m.membership_status = "+bind(q.MembershipStatus))
	}
	if role == auth.RoleLimited {
		// Mandatory row restriction: intersected with any caller
		// filters, never skippable.
		joinMembers = true
		allowed := append([]int64(nil), allowedRegionIDs...)
		preds = append(preds, "m.region_id = ANY("+bind(pq.Array(allowed))+")")
	}

	from := " FROM rnc_locus l"
	if joinMembers {
		from += " JOIN rnc_locus_members m ON m.locus_id = l.id"
	}

	where := ""
	if len(preds) > 0 {
		where = " WHERE " + strings.Join(preds, " AND ")
	}

	// The join fans one locus out to many qualifying members, so joined
	// queries must deduplicate rows.
	selectSQL := "SELECT "
	countSQL := "SELECT COUNT(*)"
	if joinMembers {
		selectSQL = "SELECT DISTINCT "
		countSQL = "SELECT COUNT(DISTINCT l.id)"
	}
	selectSQL += locusColumns + from + where
	countSQL += from + where

	countArgs := append([]interface{}(nil), args...)

	// Stable secondary key keeps pagination reproducible when primary
	// sort values tie.
	orderBy := fmt.Sprintf(" ORDER BY l.%s %s", q.SortBy.column(), q.SortOrder)
	if q.SortBy != SortByID {
		orderBy += ", l.id ASC"
	}

	offset := (q.Page - 1) * q.Limit
	selectSQL += orderBy + " LIMIT " + bind(q.Limit) + " OFFSET " + bind(offset)

	return Plan{
		SelectSQL:  selectSQL,
		SelectArgs: args,
		CountSQL:   countSQL,
		CountArgs:  countArgs,
		Page:       q.Page,
		Limit:      q.Limit,
		Distinct:   joinMembers,
	}
}
