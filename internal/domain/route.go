package domain

import "fmt"

// Route is a navigation target. The set is closed; callers switch on it
// to decide which view to show.
type Route int

const (
	RouteDashboard Route = iota
	RouteLungRecovery
	RouteHeartRecovery
	RouteEnergyImprovement
	RouteTasteSmellRecovery
	RouteRecoveryGraph
	RouteBiometricsEntry
	RoutePrediction
	RouteSavings
	RouteChat
)

var routeNames = map[Route]string{
	RouteDashboard:          "dashboard",
	RouteLungRecovery:       "lung-recovery",
	RouteHeartRecovery:      "heart-recovery",
	RouteEnergyImprovement:  "energy-improvement",
	RouteTasteSmellRecovery: "taste-smell-recovery",
	RouteRecoveryGraph:      "recovery-graph",
	RouteBiometricsEntry:    "biometrics-entry",
	RoutePrediction:         "health-prediction",
	RouteSavings:            "money-saved",
	RouteChat:               "ai-chat",
}

// String returns the route's stable name.
func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

// MetricSelected is emitted when the user picks a recovery metric.
type MetricSelected struct {
	Metric MetricID
}

// Route resolves the event to its navigation target.
func (e MetricSelected) Route() (Route, error) {
	return RouteFor(e.Metric)
}

// RouteFor maps a recovery metric to the view that details it.
func RouteFor(id MetricID) (Route, error) {
	switch id {
	case MetricLung:
		return RouteLungRecovery, nil
	case MetricHeart:
		return RouteHeartRecovery, nil
	case MetricEnergy:
		return RouteEnergyImprovement, nil
	case MetricTaste:
		return RouteTasteSmellRecovery, nil
	default:
		return RouteDashboard, fmt.Errorf("%w: %q", ErrUnknownMetric, id)
	}
}
