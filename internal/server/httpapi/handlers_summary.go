package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/services"
)

// periodQuery reads ?year=&month=. Missing values are zero, so a year that
// is present must be positive; month=0 selects the whole year.
func periodQuery(q url.Values) (services.PeriodQuery, error) {
	var pq services.PeriodQuery
	for name, dst := range map[string]*int{"year": &pq.Year, "month": &pq.Month} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return pq, fmt.Errorf("%s %q: %w", name, v, common.ErrInvalidPeriod)
		}
		if name == "year" && n <= 0 {
			return pq, fmt.Errorf("year %d: %w", n, common.ErrInvalidPeriod)
		}
		*dst = n
	}
	if pq.Month < 0 || pq.Month > 12 {
		return pq, fmt.Errorf("month %d: %w", pq.Month, common.ErrInvalidPeriod)
	}
	return pq, nil
}

// detailedSummary handles GET /api/summary/detailed?year=&month=
func (s *Server) detailedSummary(w http.ResponseWriter, r *http.Request, p models.Principal) {
	pq, err := periodQuery(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	sum, err := s.deps.Summaries.Detailed(r.Context(), p, pq)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// seriesOverview handles GET /api/summary/series
func (s *Server) seriesOverview(w http.ResponseWriter, r *http.Request, p models.Principal) {
	o, err := s.deps.Summaries.Overview(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// series handles GET /api/summary/{weekly|monthly|yearly}
func (s *Server) series(w http.ResponseWriter, r *http.Request, p models.Principal) {
	g, ok := aggregate.ParseGranularity(r.PathValue("granularity"))
	if !ok {
		writeError(w, http.StatusNotFound, common.ErrorNotFound.Error())
		return
	}

	buckets, err := s.deps.Summaries.Series(r.Context(), p, g)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{g.String(): buckets})
}

// export handles POST /api/export?year=&month=
func (s *Server) export(w http.ResponseWriter, r *http.Request, p models.Principal) {
	pq, err := periodQuery(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	res, err := s.deps.Exporter.Export(r.Context(), p, pq)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
