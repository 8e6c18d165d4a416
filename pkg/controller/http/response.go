package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/metrics"
	"github.com/secmon-lab/riskstage/pkg/utils/errutil"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

// maxBodySize bounds request bodies; the largest worksheet payload is a few kilobytes
const maxBodySize = 1 << 20

var badRequestErrors = []error{
	model.ErrMissingParameter,
	model.ErrInvalidParameter,
	model.ErrInvalidCardinality,
	model.ErrInvalidEstimate,
	model.ErrDegenerateWeights,
	model.ErrInvalidCatalog,
}

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	if errors.Is(err, model.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func handleError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	metrics.ObserveError(operation)
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.From(r.Context()).Warn("failed to write response", "error", err.Error())
	}
}

// decodeJSON reads the request body into dst. Malformed JSON is a client error.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return goerr.Wrap(err, "failed to read request body")
	}
	if len(body) == 0 {
		return goerr.Wrap(model.ErrMissingParameter, "request body is empty")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return goerr.Wrap(model.ErrInvalidParameter, "malformed JSON body: "+err.Error())
	}
	return nil
}
