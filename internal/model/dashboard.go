package model

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	UsersByRole           map[Role]int `json:"usersByRole"`
	TotalClasses          int          `json:"totalClasses"`
	UnpaidInvoices        int          `json:"unpaidInvoices"`
	OverdueInvoices       int          `json:"overdueInvoices"`
	PendingAnnouncements  int          `json:"pendingAnnouncements"`
	SuccessfulPaymentsSum float64      `json:"successfulPaymentsSum"`
}
