// backend/src/handlers/platform_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/tourdesk/backend/src/models"
)

type PlatformHandler struct{}

func NewPlatformHandler() *PlatformHandler { return &PlatformHandler{} }

// HandleListPlatforms returns the closed set of supported platforms so the
// upload UI never offers a platform the registry cannot parse.
func (h *PlatformHandler) HandleListPlatforms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.PlatformKey{
		"platforms": models.SupportedPlatforms(),
	})
}
