package models

// Metric is a dashboard counter with its change since the previous period
type Metric struct {
	Total            float64 `json:"total"`
	PercentageChange float64 `json:"percentage_change"`
}

// Analytics is the organization dashboard summary
type Analytics struct {
	Events      Metric             `json:"events"`
	Users       Metric             `json:"users"`
	Revenue     Metric             `json:"revenue"`
	EventGrowth map[string]float64 `json:"event_growth"`
	UserGrowth  map[string]float64 `json:"user_growth"`
}
