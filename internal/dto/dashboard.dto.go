package dto

// DashboardDTO is the professional's landing summary.
type DashboardDTO struct {
	Date  string               `json:"date"`
	Today []AppointmentListDTO `json:"today"`

	TodayCount     int `json:"today_count"`
	UpcomingCount  int `json:"upcoming_count"`
	MonthCompleted int `json:"month_completed"`
	MonthCancelled int `json:"month_cancelled"`
	AutoCompleted  int `json:"auto_completed"`

	MonthRevenue   float64 `json:"month_revenue"`
	ExpectedIncome float64 `json:"expected_income"`
}
