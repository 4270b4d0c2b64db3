// Package traffic converts interval workload figures into offered load.
package traffic

// Intensity returns the offered load in Erlangs for a volume of contacts
// with the given average handle time arriving over an interval. Any
// non-positive input yields zero load rather than an error, so downstream
// solvers still produce a deterministic "no load" result.
func Intensity(volume, ahtSeconds, intervalSeconds float64) float64 {
	if volume <= 0 || ahtSeconds <= 0 || intervalSeconds <= 0 {
		return 0
	}
	return volume * ahtSeconds / intervalSeconds
}
