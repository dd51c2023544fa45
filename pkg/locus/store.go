package locus

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Store executes query plans against the locus tables in postgres.
// It only ever reads; the service owns no writable state.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over the given database handle. In production
// this is the read-replica handle from the connection manager.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Count returns the total number of loci matching the plan's filters,
// computed over the full filtered set, not the page.
func (s *Store) Count(ctx context.Context, plan Plan) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, plan.CountSQL, plan.CountArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("locus count query failed: %w", err)
	}
	return total, nil
}

// FindPage returns the page of loci selected by the plan
func (s *Store) FindPage(ctx context.Context, plan Plan) ([]Locus, error) {
	rows, err := s.db.QueryContext(ctx, plan.SelectSQL, plan.SelectArgs...)
	if err != nil {
		return nil, fmt.Errorf("locus page query failed: %w", err)
	}
	defer rows.Close()

	loci := make([]Locus, 0)
	for rows.Next() {
		var l Locus
		if err := rows.Scan(
			&l.ID,
			&l.AssemblyID,
			&l.LocusName,
			&l.PublicLocusName,
			&l.Chromosome,
			&l.Strand,
			&l.LocusStart,
			&l.LocusStop,
			&l.MemberCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan locus row: %w", err)
		}
		loci = append(loci, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("locus page query failed: %w", err)
	}

	return loci, nil
}

// MembersForLoci loads all member records belonging to the given loci in
// a single query
func (s *Store) MembersForLoci(ctx context.Context, locusIDs []int64) ([]Member, error) {
	if len(locusIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, region_id, locus_id, membership_status
		FROM rnc_locus_members
		WHERE locus_id = ANY($1)
		ORDER BY id
	`, pq.Array(locusIDs))
	if err != nil {
		return nil, fmt.Errorf("locus members query failed: %w", err)
	}
	defer rows.Close()

	members := make([]Member, 0)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.RegionID, &m.LocusID, &m.MembershipStatus); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("locus members query failed: %w", err)
	}

	return members, nil
}
