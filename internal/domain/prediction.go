package domain

import "math"

// Prediction is a projected recovery value for a body system.
type Prediction struct {
	Metric    MetricID
	Label     string
	Current   float64
	Predicted float64
	Timeframe string
}

// PredictHealth projects current and future values from the elapsed days.
func PredictHealth(days int) []Prediction {
	d := float64(days)
	if d < 0 {
		d = 0
	}
	return []Prediction{
		{MetricHeart, "Heart Health", math.Min(70+d*0.5, 95), math.Min(80+d*0.5, 100), "30 days"},
		{MetricLung, "Lung Function", math.Min(60+d*0.7, 90), math.Min(75+d*0.7, 100), "60 days"},
		{MetricEnergy, "Energy Levels", math.Min(65+d*0.6, 92), math.Min(85+d*0.6, 100), "45 days"},
	}
}
