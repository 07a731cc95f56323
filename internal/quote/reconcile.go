package quote

import "strings"

// Reconcile maps upstream records back onto the requested symbol list.
// The output has exactly one Quote per requested symbol, in request order,
// regardless of upstream ordering, duplication or omission. Symbols the
// upstream omitted come back with nil numerics and an empty name.
func Reconcile(requested []string, records []UpstreamRecord) []Quote {
    out := make([]Quote, 0, len(requested))
    for _, sym := range requested {
        var found *UpstreamRecord
        for i := range records {
            if strings.EqualFold(records[i].Symbol, sym) {
                found = &records[i]
                break
            }
        }
        q := Quote{Symbol: sym}
        if found != nil {
            q.Name = found.Symbol
            q.Price = found.Close
            q.Volume = found.Volume
            q.ChangePct = changePct(found.Close, found.Open)
        }
        out = append(out, q)
    }
    return out
}

// changePct is the percent change from open to close. Nil when either side
// is absent or the reference open is zero.
func changePct(close, open *float64) *float64 {
    if close == nil || open == nil || *open == 0 {
        return nil
    }
    v := (*close - *open) / *open * 100
    return &v
}
