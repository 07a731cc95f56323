package quote

// Kind is a stable error classification string surfaced to callers as the
// "error" field of a failure payload.
type Kind string

const (
    // KindConfig means the upstream credential is missing; every request
    // fails identically until the deployment is fixed.
    KindConfig Kind = "config_error"
    // KindValidation means the symbol input was empty or unusable.
    KindValidation Kind = "invalid_symbols"
    // KindRateLimited means the upstream was still rate limiting after the
    // retry budget was spent. Callers should cool down before retrying.
    KindRateLimited Kind = "rate_limit"
    // KindUpstream covers transport faults, decode faults and non-429 error
    // statuses from the provider.
    KindUpstream Kind = "upstream_error"
)

// Error is a classified pipeline failure.
type Error struct {
    Kind   Kind
    Detail string
    Err    error
}

func (e *Error) Error() string {
    if e.Detail != "" {
        return string(e.Kind) + ": " + e.Detail
    }
    if e.Err != nil {
        return string(e.Kind) + ": " + e.Err.Error()
    }
    return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error from a kind and detail string.
func E(kind Kind, detail string) *Error { return &Error{Kind: kind, Detail: detail} }

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, err error) *Error {
    detail := ""
    if err != nil { detail = err.Error() }
    return &Error{Kind: kind, Detail: detail, Err: err}
}
