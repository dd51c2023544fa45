package locus

import (
	"context"

	"github.com/davranaff/locusd/pkg/auth"
	"github.com/davranaff/locusd/pkg/observability"
	"github.com/davranaff/locusd/pkg/policy"
)

// Reader is the store surface the assembler needs
type Reader interface {
	Count(ctx context.Context, plan Plan) (int64, error)
	FindPage(ctx context.Context, plan Plan) ([]Locus, error)
	MembersForLoci(ctx context.Context, locusIDs []int64) ([]Member, error)
}

// Service assembles response envelopes for locus queries. Each call is
// independent and stateless; the plan is request-local and the store
// provides its own concurrency control.
type Service struct {
	store            Reader
	allowedRegionIDs []int64
	logger           *observability.Logger
}

// NewService creates a locus service. allowedRegionIDs is the fixed set
// of region ids visible to the limited role.
func NewService(store Reader, allowedRegionIDs []int64, logger *observability.Logger) *Service {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Service{
		store:            store,
		allowedRegionIDs: append([]int64(nil), allowedRegionIDs...),
		logger:           logger,
	}
}

// Find executes one locus query for the given role: builds the plan,
// retrieves the page and the full-set count, optionally sideloads
// member records, and assembles the envelope. A sideload policy
// violation aborts the whole request.
func (s *Service) Find(ctx context.Context, q Query, role auth.Role) (*Envelope, error) {
	if err := policy.CanSideload(role, q.Sideload); err != nil {
		return nil, err
	}

	q = q.withDefaults()
	plan := BuildPlan(q, role, s.allowedRegionIDs)

	total, err := s.store.Count(ctx, plan)
	if err != nil {
		return nil, err
	}

	loci, err := s.store.FindPage(ctx, plan)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Data: loci,
		Pagination: Pagination{
			Page:       plan.Page,
			Limit:      plan.Limit,
			Total:      total,
			TotalPages: totalPages(total, plan.Limit),
		},
	}

	if q.WantsSideload(SideloadMembers) && policy.ReceivesMemberData(role) {
		if err := s.attachMembers(ctx, env); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"role":     string(role),
		"page":     plan.Page,
		"limit":    plan.Limit,
		"total":    total,
		"returned": len(loci),
	}).Debug("locus query executed")

	return env, nil
}

// attachMembers loads all members for the loci on the current page in
// one query, groups them by locus id, and fills the envelope's included
// set. Duplicate locus ids within the page are fetched once.
func (s *Service) attachMembers(ctx context.Context, env *Envelope) error {
	seen := make(map[int64]bool, len(env.Data))
	ids := make([]int64, 0, len(env.Data))
	for _, l := range env.Data {
		if !seen[l.ID] {
			seen[l.ID] = true
			ids = append(ids, l.ID)
		}
	}

	members, err := s.store.MembersForLoci(ctx, ids)
	if err != nil {
		return err
	}

	byLocus := make(map[int64][]Member, len(ids))
	for _, m := range members {
		byLocus[m.LocusID] = append(byLocus[m.LocusID], m)
	}

	included := make([]Member, 0, len(members))
	for i := range env.Data {
		group := byLocus[env.Data[i].ID]
		env.Data[i].Members = group
		included = append(included, group...)
	}

	if len(included) > 0 {
		env.Included = included
	}
	return nil
}

// totalPages is ceil(total / limit); zero rows means zero pages
func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
