package geometry

// BuildConfig controls BVH construction. A BinCount below 2 (including the
// zero value) makes Build fall back to the package BinCount.
type BuildConfig struct {
	// BinCount is the number of SAH bins sampled per axis per node.
	BinCount int
}

// DefaultBuildConfig returns a BuildConfig that uses the package BinCount.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{BinCount: BinCount}
}
