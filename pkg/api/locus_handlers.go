package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davranaff/locusd/pkg/httputil"
	"github.com/davranaff/locusd/pkg/locus"
	"github.com/davranaff/locusd/pkg/middleware"
	"github.com/davranaff/locusd/pkg/observability"
	"github.com/davranaff/locusd/pkg/policy"
)

// LocusHandlers handles locus query HTTP requests
type LocusHandlers struct {
	service *locus.Service
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewLocusHandlers creates a new locus handlers instance
func NewLocusHandlers(service *locus.Service, logger *observability.Logger, metrics *observability.Metrics) *LocusHandlers {
	return &LocusHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// find handles GET /api/v1/locus
func (h *LocusHandlers) find(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetPrincipal(r.Context())
	if claims == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	q, err := parseLocusQuery(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	start := time.Now()
	env, err := h.service.Find(r.Context(), q, claims.Role)
	if err != nil {
		if errors.Is(err, policy.ErrSideloadForbidden) {
			h.countQuery(string(claims.Role), "forbidden")
			if h.metrics != nil {
				h.metrics.PolicyViolationsTotal.WithLabelValues(string(claims.Role), "sideload").Inc()
			}
			httputil.WriteForbidden(w, err.Error())
			return
		}

		h.logger.WithError(err).WithField("role", string(claims.Role)).Error("locus query failed")
		h.countQuery(string(claims.Role), "error")
		httputil.WriteInternalError(w)
		return
	}

	h.countQuery(string(claims.Role), "ok")
	if h.metrics != nil {
		h.metrics.LocusQueryDuration.WithLabelValues(string(claims.Role)).Observe(time.Since(start).Seconds())
		h.metrics.LocusRowsReturned.Observe(float64(len(env.Data)))
	}

	httputil.WriteSuccess(w, env)
}

func (h *LocusHandlers) countQuery(role, status string) {
	if h.metrics != nil {
		h.metrics.LocusQueriesTotal.WithLabelValues(role, status).Inc()
	}
}

// parseLocusQuery validates and converts the query string into a locus
// query. Any invalid parameter fails the whole request.
func parseLocusQuery(r *http.Request) (locus.Query, error) {
	var q locus.Query

	id, err := httputil.ParseQueryInt64Ptr(r, "id")
	if err != nil {
		return q, err
	}
	q.ID = id

	q.AssemblyID = httputil.ParseQueryString(r, "assemblyId", "")
	q.MembershipStatus = httputil.ParseQueryString(r, "membershipStatus", "")

	regionIDs, err := httputil.ParseQueryInt64List(r, "regionId")
	if err != nil {
		return q, err
	}
	q.RegionIDs = regionIDs

	for _, option := range httputil.ParseQueryStringList(r, "sideload") {
		if option != locus.SideloadMembers {
			return q, fmt.Errorf("unknown sideload option: %s", option)
		}
		q.Sideload = append(q.Sideload, option)
	}

	page, err := httputil.ParseQueryInt(r, "page", locus.DefaultPage)
	if err != nil {
		return q, err
	}
	if page < 1 {
		return q, fmt.Errorf("page must be at least 1")
	}
	q.Page = page

	limit, err := httputil.ParseQueryInt(r, "limit", locus.DefaultLimit)
	if err != nil {
		return q, err
	}
	if limit < 1 || limit > locus.MaxLimit {
		return q, fmt.Errorf("limit must be between 1 and %d", locus.MaxLimit)
	}
	q.Limit = limit

	if sortBy := httputil.ParseQueryString(r, "sortBy", ""); sortBy != "" {
		field, err := locus.ParseSortField(sortBy)
		if err != nil {
			return q, err
		}
		q.SortBy = field
	}

	if sortOrder := httputil.ParseQueryString(r, "sortOrder", ""); sortOrder != "" {
		order, err := locus.ParseSortOrder(sortOrder)
		if err != nil {
			return q, err
		}
		q.SortOrder = order
	}

	return q, nil
}
