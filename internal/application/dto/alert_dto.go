package dto

// AlertSummary conteos agregados de la partición de alertas.
type AlertSummary struct {
	LowStockCount     int `json:"low_stock_count"`
	OutOfStockCount   int `json:"out_of_stock_count"`
	ExpiredCount      int `json:"expired_count"`
	ExpiringSoonCount int `json:"expiring_soon_count"`
	TotalAlerts       int `json:"total_alerts"`
}

// AlertsResponse partición completa de alertas para el dashboard.
type AlertsResponse struct {
	Summary      AlertSummary      `json:"summary"`
	OutOfStock   []ReagentResponse `json:"out_of_stock"`
	LowStock     []ReagentResponse `json:"low_stock"`
	ExpiredLots  []LotResponse     `json:"expired_lots"`
	ExpiringSoon []LotResponse     `json:"expiring_soon"`
}

// DigestResponse resultado de una ejecución del digest (endpoint cron).
type DigestResponse struct {
	Success     bool `json:"success"`
	Sent        int  `json:"sent"`
	TotalAlerts int  `json:"totalAlerts"`
}
