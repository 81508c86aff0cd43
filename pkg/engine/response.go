package engine

import (
	"encoding/json"
	"net/http"

	"github.com/specbind/specbind/pkg/log"
	"github.com/valyala/bytebufferpool"
)

// writeJSON serializes v through a pooled buffer so a marshalling failure
// never produces a half written 200 response.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	if err := json.NewEncoder(bb).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to serialize response")
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(bb.Bytes()) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
