package dto

// DailyCount is one zero-filled bucket in a trailing-window series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type CompletenessCheck struct {
	Name       string `json:"name"`
	Points     int    `json:"points"`
	Passed     bool   `json:"passed"`
	Suggestion string `json:"suggestion,omitempty"`
}

type DashboardResponse struct {
	TotalViews       int64               `json:"total_views"`
	TotalClicks      int64               `json:"total_clicks"`
	ClickThroughRate float64             `json:"click_through_rate"`
	DailyViews       []DailyCount        `json:"daily_views"`
	DailyClicks      []DailyCount        `json:"daily_clicks"`
	ViewsToday       int64               `json:"views_today"`
	ViewsYesterday   int64               `json:"views_yesterday"`
	ViewsDelta       int64               `json:"views_delta"`
	ClicksToday      int64               `json:"clicks_today"`
	ClicksYesterday  int64               `json:"clicks_yesterday"`
	ClicksDelta      int64               `json:"clicks_delta"`
	Completeness     int                 `json:"completeness"`
	Checks           []CompletenessCheck `json:"checks"`
}

type FeedbackRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}
