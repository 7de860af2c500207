package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

// HandleDay serves one day document by its hashed key. Unknown and
// out-of-horizon keys both report 404 so the response never confirms whether
// a guessed key belongs to a future date.
func (a *API) HandleDay(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	start := time.Now()

	key := strings.TrimSuffix(p.ByName("file"), ".json")
	if len(key) != 16 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "day not found"})
		return
	}

	subjects, ok := a.provider.SubjectsForKey(key)
	if !ok {
		a.log.Infow("day lookup missed", "key", key, "remote", r.RemoteAddr)
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "day not found"})
		return
	}

	writeJSON(w, http.StatusOK, subjects)
	a.log.Infow("served day", "key", key, "remote", r.RemoteAddr, "elapsed", time.Since(start))
}

// HandleManifest serves the edition-to-key map used by pre-rendered
// deployments to locate today's file.
func (a *API) HandleManifest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, a.provider.Manifest())
	a.log.Infow("served manifest", "remote", r.RemoteAddr)
}

func (a *API) HandleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (a *API) HandleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, versionResponse{Version: Version})
}
