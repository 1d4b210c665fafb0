package models

import (
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order when decoding route times.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Route represents one driver's scheduled delivery run as reported by the route source.
type Route struct {
	ID             string    `json:"routeId"`        // ID is the unique identifier of the route.
	DriverName     string    `json:"driverName"`     // DriverName is the assigned driver.
	VehicleType    string    `json:"vehicleType"`    // VehicleType is the vehicle class used for the run.
	StartTime      time.Time `json:"startTime"`      // StartTime is the scheduled start of the route.
	EndTime        time.Time `json:"endTime"`        // EndTime is the scheduled end of the route.
	TotalStops     int       `json:"totalStops"`     // TotalStops is the number of stops announced by the source.
	TotalPackages  int       `json:"totalPackages"`  // TotalPackages is the number of packages on the route.
	EstimatedMiles float64   `json:"estimatedMiles"` // EstimatedMiles is the planned driving distance.
}

// UnmarshalJSON decodes a route. Start and end times that are missing, empty or not
// a recognised timestamp decode to the zero time instead of failing the route.
// Timestamps without a zone are taken as UTC.
func (r *Route) UnmarshalJSON(data []byte) error {
	type plain Route
	aux := struct {
		*plain
		StartTime json.RawMessage `json:"startTime"`
		EndTime   json.RawMessage `json:"endTime"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.StartTime = parseTimestamp(aux.StartTime)
	r.EndTime = parseTimestamp(aux.EndTime)

	return nil
}

func parseTimestamp(raw json.RawMessage) time.Time {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil || value == "" {
		return time.Time{}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}

// RouteDetail holds a route together with its stops in delivery order.
type RouteDetail struct {
	Route Route  `json:"route"`
	Stops []Stop `json:"stops"`
}
