package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/idempotency"
)

const idempotencyKeyHeader = "Idempotency-Key"

// idempotent runs create and writes its result with status. When the request carries an
// Idempotency-Key, a retry with the same canonical body replays the stored response and a
// reuse of the key with a different body is rejected with 409.
func (s *Server) idempotent(w http.ResponseWriter, r *http.Request, route string, canon any, status int, create func() (any, error)) {
	ctx := r.Context()
	key := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
	if key == "" || s.Idem == nil {
		resp, err := create()
		if err != nil {
			s.writeAppError(w, r, err)
			return
		}
		writeJSON(w, status, resp)
		return
	}

	bodyHash, err := hashBody(canon)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	metaFP := idempotency.Fingerprint{
		Key:    idempotency.Key(key),
		Method: r.Method,
		Route:  route,
	}
	meta, ok, err := s.Idem.Get(ctx, metaFP)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	if ok && string(meta.Body) != bodyHash {
		writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
		return
	}
	if !ok {
		if err := s.Idem.Put(ctx, metaFP, idempotency.Record{
			ContentType: "text/plain",
			Body:        []byte(bodyHash),
			CreatedAt:   s.Clock.Now(),
		}); err != nil {
			s.writeAppError(w, r, err)
			return
		}
	}

	respFP := metaFP
	respFP.BodyHash = bodyHash
	if rec, ok, err := s.Idem.Get(ctx, respFP); err != nil {
		s.writeAppError(w, r, err)
		return
	} else if ok && rec.StatusCode == status {
		w.Header().Set("Content-Type", rec.ContentType)
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(rec.StatusCode)
		_, _ = w.Write(rec.Body)
		return
	}

	resp, err := create()
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	b = append(b, '\n')
	_ = s.Idem.Put(ctx, respFP, idempotency.Record{
		StatusCode:  status,
		ContentType: "application/json",
		Body:        b,
		CreatedAt:   s.Clock.Now(),
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func hashBody(canon any) (string, error) {
	raw, err := json.Marshal(canon)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
