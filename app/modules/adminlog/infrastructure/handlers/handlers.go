package adminloghandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	adminlogservice "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/application"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/attr"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/httpjson"
)

// Handlers defines the HTTP handlers for the admin action log.
type Handlers interface {
	HandleListActions(w http.ResponseWriter, r *http.Request)
}

// AdminLogHandlers implements the Handlers interface.
type AdminLogHandlers struct {
	service adminlogservice.Service
	logger  *slog.Logger
}

// NewAdminLogHandlers creates a new AdminLogHandlers instance.
func NewAdminLogHandlers(service adminlogservice.Service, logger *slog.Logger) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminLogHandlers{service: service, logger: logger}
}

type listActionsResponse struct {
	httpjson.Response
	Actions []adminlogservice.ActionRecord `json:"actions"`
	Count   int                            `json:"count"`
	Total   int                            `json:"total"`
	Limit   int                            `json:"limit"`
	Offset  int                            `json:"offset"`
}

func (h *AdminLogHandlers) HandleListActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	page, err := h.service.ListActions(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to fetch admin actions", attr.RequestID(ctx), attr.Error(err))
		httpjson.Fail(w, http.StatusInternalServerError, "Failed to fetch admin actions", err.Error())
		return
	}

	httpjson.Write(w, http.StatusOK, listActionsResponse{
		Response: httpjson.Response{Success: true},
		Actions:  page.Actions,
		Count:    len(page.Actions),
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// queryInt reads an optional integer query parameter, writing a 400 when it is malformed.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, name+" must be an integer", "")
		return 0, false
	}
	return n, true
}
