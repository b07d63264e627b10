package entities

// BusinessDashboard summarises a business's month
type BusinessDashboard struct {
	TotalCustomers  int64 `json:"totalCustomers"`
	StampsThisMonth int64 `json:"stampsThisMonth"`
	RewardsRedeemed int64 `json:"rewardsRedeemed"`
	ActiveCards     int64 `json:"activeCards"`
}

// TodayStats feeds the scanner app header
type TodayStats struct {
	StampsGiven     int64 `json:"stampsGiven"`
	CustomersServed int64 `json:"customersServed"`
	RewardsRedeemed int64 `json:"rewardsRedeemed"`
}
