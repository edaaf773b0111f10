package api

import (
	"net/http"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
)

// handleListAssemblies returns the installation assembly catalogue.
func (s *Server) handleListAssemblies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, estimate.Assemblies())
}
