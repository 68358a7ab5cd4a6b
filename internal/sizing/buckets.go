package sizing

import "fmt"

// Size is a veranda footprint in whole centimeters.
type Size struct {
	WidthCM int `json:"width_cm"`
	DepthCM int `json:"depth_cm"`
}

// MatrixKey addresses one cell of the maatwerk price matrix. Both values are
// bucket values, never raw customer input.
type MatrixKey struct {
	WidthCM int `json:"width_cm"`
	DepthCM int `json:"depth_cm"`
}

// NearestBucket maps a raw centimeter value onto a sorted ascending bucket
// list. Values at or below the smallest bucket clamp to it, values at or above
// the largest clamp to that; anything in between rounds UP to the smallest
// bucket >= value. Rounding up is intentional: a larger custom size must never
// fall into a cheaper price tier.
func NearestBucket(value int, buckets []int) (int, error) {
	if len(buckets) == 0 {
		return 0, fmt.Errorf("empty bucket list")
	}
	if value <= buckets[0] {
		return buckets[0], nil
	}
	if value >= buckets[len(buckets)-1] {
		return buckets[len(buckets)-1], nil
	}
	for _, b := range buckets {
		if b >= value {
			return b, nil
		}
	}
	// Unreachable with a sorted list.
	return buckets[len(buckets)-1], nil
}

// CustomKey maps a raw maatwerk size onto its price-matrix cell by bucketing
// each axis independently.
func CustomKey(widthCM, depthCM int, widthBuckets, depthBuckets []int) (MatrixKey, error) {
	w, err := NearestBucket(widthCM, widthBuckets)
	if err != nil {
		return MatrixKey{}, fmt.Errorf("width axis: %w", err)
	}
	d, err := NearestBucket(depthCM, depthBuckets)
	if err != nil {
		return MatrixKey{}, fmt.Errorf("depth axis: %w", err)
	}
	return MatrixKey{WidthCM: w, DepthCM: d}, nil
}
