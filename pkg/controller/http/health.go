package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gramfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(fetchUC interfaces.FetchUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := &model.HealthStatus{
			Status:          "healthy",
			Service:         types.ServiceName,
			Version:         types.Version,
			LoaderAvailable: fetchUC.LoaderAvailable(r.Context()),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
		}
	}
}
