package models

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

// DefaultReportTitle heads every formatted report unless configured otherwise.
const DefaultReportTitle = "Financial Report"

// DefaultChartTitle heads the monthly expense chart.
const DefaultChartTitle = "Monthly Expenses"
