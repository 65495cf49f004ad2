package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// CacheStats reports the Redis pool and whether the server can reach it
func (drm *DebugRoutesManager) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := drm.cacheService.GetConnectionStats()

	reachable := drm.cacheService.Enabled()
	if reachable {
		reachable = drm.cacheService.Ping(r.Context()) == nil
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"enabled":   drm.cacheService.Enabled(),
			"reachable": reachable,
			"pool":      stats,
		}),
		gecho.Send(),
	)
}
