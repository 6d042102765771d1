package models

// SendResult summarizes one full campaign fan-out
type SendResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// SimulationResult summarizes one bulk engagement backfill
type SimulationResult struct {
	Opened  int `json:"opened,omitempty"`
	Clicked int `json:"clicked,omitempty"`
	Total   int `json:"total"`
}

// DayBucket is one slot of the Mon..Sun activity series
type DayBucket struct {
	Day       string `json:"day"`
	Delivered int    `json:"delivered"`
	Opened    int    `json:"opened"`
	Clicked   int    `json:"clicked"`
}

// CampaignStats is the realtime-stats payload for one campaign
type CampaignStats struct {
	Sent              int         `json:"sent"`
	Opened            int         `json:"opened"`
	Clicked           int         `json:"clicked"`
	AvgOpenRate       float64     `json:"avgOpenRate"`
	AvgClickRate      float64     `json:"avgClickRate"`
	AvgEngagementRate float64     `json:"avgEngagementRate"`
	GraphData         []DayBucket `json:"graphData"`
}

// PerformancePoint is one day of the cross-campaign performance series
type PerformancePoint struct {
	Date      string `json:"date"`
	Sent      int    `json:"sent"`
	Delivered int    `json:"delivered"`
	Opened    int    `json:"opened"`
	Clicked   int    `json:"clicked"`
}
