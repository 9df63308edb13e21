package topics

const (
	// Analytics
	AnalyticsEvents = "analytics_events"
)
