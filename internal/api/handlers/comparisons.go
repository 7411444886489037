package handlers

import (
	"distance-compare-service/internal/api/dto"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"distance-compare-service/internal/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ComparisonHandler runs destination comparisons and serves their history.
// Repo may be nil, in which case runs are not stored and history is unavailable.
type ComparisonHandler struct {
	Aggregator *services.Aggregator
	Repo       ports.ComparisonRepository
}

func (h *ComparisonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errTrailingData) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	svcReq := services.CompareRequest{
		Origins:      toLocations(req.Origins),
		Destinations: toLocations(req.Destinations),
	}

	c, err := services.CompareDestinations(r.Context(), svcReq, h.Aggregator, h.Repo)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		obs.Logger(r.Context()).Error("compare destinations failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toComparisonResponse(c))
}

func (h *ComparisonHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "comparison history is disabled")
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	cs, err := h.Repo.ListComparisons(r.Context(), limit)
	if err != nil {
		obs.Logger(r.Context()).Error("list comparisons failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListComparisonsResponse{Comparisons: make([]dto.ComparisonListItem, 0, len(cs))}
	for _, c := range cs {
		res.Comparisons = append(res.Comparisons, dto.ComparisonListItem{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			Best:      c.Best,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ComparisonHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "comparison history is disabled")
		return
	}

	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	c, err := h.Repo.GetComparison(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrComparisonNotFound) {
			writeError(w, r, http.StatusNotFound, "comparison not found")
			return
		}
		obs.Logger(r.Context()).Error("get comparison failed", "id", id, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toComparisonResponse(c))
}

func toLocations(in []dto.LocationRequest) []domain.NamedLocation {
	out := make([]domain.NamedLocation, 0, len(in))
	for _, l := range in {
		out = append(out, domain.NamedLocation{Name: l.Name, Address: l.Address})
	}
	return out
}

func toComparisonResponse(c *domain.Comparison) dto.ComparisonResponse {
	res := dto.ComparisonResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Details:   make([]dto.DetailResponse, 0, len(c.Details)),
		Summaries: make([]dto.SummaryResponse, 0, len(c.Summaries)),
		Errors:    make([]dto.DestinationErrorResponse, 0, len(c.Errors)),
		Best:      c.Best,
	}

	for _, d := range c.Details {
		res.Details = append(res.Details, dto.DetailResponse{
			Origin:      d.Origin,
			Destination: d.Destination,
			DistanceKm:  d.DistanceKm,
			DurationMin: d.DurationMin,
		})
	}
	for _, s := range c.Summaries {
		res.Summaries = append(res.Summaries, dto.SummaryResponse{
			Destination:      s.Destination,
			TotalDistanceKm:  s.TotalDistanceKm,
			TotalDurationMin: s.TotalDurationMin,
		})
	}
	for _, e := range c.Errors {
		res.Errors = append(res.Errors, dto.DestinationErrorResponse{
			Destination: e.Destination,
			Message:     e.Message,
		})
	}

	return res
}
