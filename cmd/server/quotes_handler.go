package main

import (
    "encoding/json"
    "errors"
    "net/http"

    "quotescore/internal/quote"
)

type errorResponse struct {
    Error  string `json:"error"`
    Detail string `json:"detail,omitempty"`
}

func handleGetQuotes(w http.ResponseWriter, r *http.Request, svc *quote.Service) {
    snap, err := svc.Snapshot(r.Context(), r.URL.Query().Get("symbols"))
    if err != nil {
        writeError(w, err)
        return
    }
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    w.WriteHeader(http.StatusOK)
    _ = enc.Encode(snap)
}

// writeError renders a pipeline failure as a structured error body with the
// status class the consumer expects for that kind.
func writeError(w http.ResponseWriter, err error) {
    kind := quote.KindUpstream
    detail := err.Error()
    var qerr *quote.Error
    if errors.As(err, &qerr) {
        kind = qerr.Kind
        detail = qerr.Detail
    }
    w.WriteHeader(statusFor(kind))
    _ = json.NewEncoder(w).Encode(errorResponse{Error: string(kind), Detail: detail})
}

func statusFor(kind quote.Kind) int {
    switch kind {
    case quote.KindConfig:
        return http.StatusInternalServerError
    case quote.KindValidation:
        return http.StatusBadRequest
    case quote.KindRateLimited:
        return http.StatusTooManyRequests
    default:
        return http.StatusBadGateway
    }
}
