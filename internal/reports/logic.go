package reports

import "leavedesk/internal/domain/leave"

// Dashboard is the statistics payload served to API clients.
func Dashboard(stats leave.Stats, activeEmployees int) map[string]any {
	return map[string]any{
		"totalEmployees":   stats.TotalEmployees,
		"activeEmployees":  activeEmployees,
		"totalRequests":    stats.TotalRequests,
		"pendingRequests":  stats.ByStatus[leave.StatusPending],
		"approvedRequests": stats.ByStatus[leave.StatusApproved],
		"rejectedRequests": stats.ByStatus[leave.StatusRejected],
	}
}

// UsedDays sums approved days per category across requests.
func UsedDays(requests []leave.LeaveRequest) map[leave.Category]int {
	out := map[leave.Category]int{}
	for _, req := range requests {
		if req.Status == leave.StatusApproved {
			out[req.Category] += req.Days
		}
	}
	return out
}
