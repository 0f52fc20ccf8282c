// Package charts turns numeric series into drawing primitives for pie and bar charts.
package charts

import "math"

// Slice is one wedge of a pie chart.
type Slice struct {
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	StartDegrees float64 `json:"start_degrees"`
	AngleDegrees float64 `json:"angle_degrees"`
	Color        RGB     `json:"color"`
}

// Bar is one bar of a bar chart.
type Bar struct {
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	HeightFraction float64 `json:"height_fraction"`
	Color          RGB     `json:"color"`
}

// ShapePie lays out values as consecutive wedges in input order.
// Mismatched or empty input yields an empty result. When the values sum to 0
// every wedge has a zero angle. Negative and NaN values take no space.
func ShapePie(values []float64, labels []string) []Slice {
	if len(values) != len(labels) {
		return []Slice{}
	}

	total, scale := 0.0, 1.0
	for _, v := range values {
		total += drawable(v)
	}
	if math.IsInf(total, 1) {
		// Finite values overflowed; sum them relative to the largest instead.
		scale = 0
		for _, v := range values {
			scale = math.Max(scale, drawable(v))
		}
		total = 0
		for _, v := range values {
			total += drawable(v) / scale
		}
	}

	slices := make([]Slice, len(values))
	start := 0.0
	for i, v := range values {
		angle := 0.0
		if total > 0 {
			angle = drawable(v) / scale / total * 360
		}
		slices[i] = Slice{
			Label:        labels[i],
			Value:        v,
			StartDegrees: start,
			AngleDegrees: angle,
			Color:        ColorAt(i),
		}
		start += angle
	}
	return slices
}

// ShapeBars scales values against the largest one. Mismatched input yields an
// empty result; when the maximum is not positive every height is 0.
func ShapeBars(values []float64, labels []string) []Bar {
	if len(values) != len(labels) {
		return []Bar{}
	}

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, drawable(v))
	}

	bars := make([]Bar, len(values))
	for i, v := range values {
		h := 0.0
		if peak > 0 {
			h = drawable(v) / peak
		}
		bars[i] = Bar{Label: labels[i], Value: v, HeightFraction: h, Color: ColorAt(i)}
	}
	return bars
}

// drawable maps values that cannot be drawn to 0.
func drawable(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
