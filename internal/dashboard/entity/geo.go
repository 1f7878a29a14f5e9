package entity

// City is a fixed heatmap location with its weighting profile.
type City struct {
	Name             string  `json:"name"`
	District         string  `json:"district"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Population       float64 `json:"population"`
	EconomicActivity float64 `json:"economicActivity"`
	Urbanization     float64 `json:"urbanization"`
}

// CityAggregate is recomputed from scratch on every heatmap cycle.
type CityAggregate struct {
	City         string         `json:"city"`
	Coordinates  GeoPoint       `json:"coordinates"`
	Count        int            `json:"count"`
	TotalAmount  float64        `json:"totalAmount"`
	AvgAmount    float64        `json:"avgAmount"`
	AvgRiskScore float64        `json:"avgRiskScore"`
	ByType       map[TxType]int `json:"byType,omitempty"`
	Color        string         `json:"color"`
	MarkerSize   int            `json:"markerSize"`
}

// GeoDistrict is one element of the backend's geo aggregation.
type GeoDistrict struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Count int     `json:"count"`
}

type GeoData struct {
	Districts []GeoDistrict `json:"districts"`
}
