package quote

import "math"

// batchStats holds population mean/sd of change% and volume across one
// batch. Nil fields count as zero during aggregation only.
type batchStats struct {
    meanChange, sdChange float64
    meanVolume, sdVolume float64
}

// ScoreBatch computes the composite score for every quote in the batch:
//
//	score = 50 + 20*z(changePct) + 15*z(volume)
//
// where z is the standardized deviation from the batch mean, and z is 0
// whenever the batch sd is 0. Scores are relative to this batch only and
// must be recomputed whenever batch membership changes; a single-quote
// batch always scores exactly 50.
func ScoreBatch(batch []Quote) []ScoredQuote {
    changes := make([]float64, len(batch))
    volumes := make([]float64, len(batch))
    for i, q := range batch {
        changes[i] = orZero(q.ChangePct)
        volumes[i] = orZero(q.Volume)
    }

    var stats batchStats
    stats.meanChange, stats.sdChange = meanStd(changes)
    stats.meanVolume, stats.sdVolume = meanStd(volumes)

    out := make([]ScoredQuote, 0, len(batch))
    for i, q := range batch {
        score := 50 +
            20*zScore(changes[i], stats.meanChange, stats.sdChange) +
            15*zScore(volumes[i], stats.meanVolume, stats.sdVolume)
        out = append(out, ScoredQuote{Quote: q, Score: score})
    }
    return out
}

// meanStd computes the population mean and standard deviation (divide by
// count, not count-1).
func meanStd(data []float64) (float64, float64) {
    if len(data) == 0 {
        return 0, 0
    }
    sum := 0.0
    for _, v := range data { sum += v }
    mean := sum / float64(len(data))

    varianceSum := 0.0
    for _, v := range data {
        varianceSum += (v - mean) * (v - mean)
    }
    return mean, math.Sqrt(varianceSum / float64(len(data)))
}

func zScore(value, mean, sd float64) float64 {
    if sd == 0 { return 0 }
    return (value - mean) / sd
}

func orZero(v *float64) float64 {
    if v == nil { return 0 }
    return *v
}
