package academics

import (
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/eschool-portal/internal/models"
)

// LowAttendanceThreshold is the minimum attendance percentage required.
const LowAttendanceThreshold = 75.0

// AttendancePercentage returns present/total*100, or 0 when total is 0.
func AttendancePercentage(present, total int) float64 {
	if total <= 0 || present <= 0 {
		return 0
	}
	if present > total {
		present = total
	}
	return float64(present) / float64(total) * 100
}

// AttendanceBucket classifies an attendance percentage.
func AttendanceBucket(pct float64) models.Status {
	switch {
	case pct >= 90:
		return models.Status{Label: "Excellent", Color: ColorExcellent}
	case pct >= 80:
		return models.Status{Label: "Good", Color: ColorGood}
	case pct >= 70:
		return models.Status{Label: "Average", Color: ColorAverage}
	case pct >= 60:
		return models.Status{Label: "Below Average", Color: ColorBelowAverage}
	default:
		return models.Status{Label: "Poor", Color: ColorPoor}
	}
}

// MonthlyAttendance is one month of the attendance breakdown.
type MonthlyAttendance struct {
	Month      string        `json:"month"`
	Present    int           `json:"present"`
	Absent     int           `json:"absent"`
	Total      int           `json:"total"`
	Percentage float64       `json:"percentage"`
	Status     models.Status `json:"status"`
	sortKey    string
}

// AttendanceSummary aggregates attendance records for display.
type AttendanceSummary struct {
	Present       int                 `json:"present"`
	Absent        int                 `json:"absent"`
	Total         int                 `json:"total"`
	Percentage    float64             `json:"percentage"`
	Status        models.Status       `json:"status"`
	LowAttendance bool                `json:"low_attendance"`
	Monthly       []MonthlyAttendance `json:"monthly"`
}

const undatedMonth = "Undated"

// SummarizeAttendance counts present and absent days overall and per month. Months are
// ordered chronologically; records with unparseable dates are grouped last.
func SummarizeAttendance(records []models.AttendanceRecord) AttendanceSummary {
	months := make(map[string]*MonthlyAttendance)
	var summary AttendanceSummary
	for _, r := range records {
		key, label := monthOf(r.Date)
		m, ok := months[key]
		if !ok {
			m = &MonthlyAttendance{Month: label, sortKey: key}
			months[key] = m
		}
		m.Total++
		summary.Total++
		if strings.EqualFold(r.Status, models.AttendancePresent) {
			m.Present++
			summary.Present++
		} else {
			m.Absent++
			summary.Absent++
		}
	}

	summary.Percentage = round2(AttendancePercentage(summary.Present, summary.Total))
	summary.Status = AttendanceBucket(summary.Percentage)
	summary.LowAttendance = summary.Total > 0 && summary.Percentage < LowAttendanceThreshold

	summary.Monthly = make([]MonthlyAttendance, 0, len(months))
	for _, m := range months {
		m.Percentage = round2(AttendancePercentage(m.Present, m.Total))
		m.Status = AttendanceBucket(m.Percentage)
		summary.Monthly = append(summary.Monthly, *m)
	}
	sort.Slice(summary.Monthly, func(i, j int) bool {
		return summary.Monthly[i].sortKey < summary.Monthly[j].sortKey
	})
	return summary
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

func monthOf(raw string) (key, label string) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01"), t.Format("January 2006")
		}
	}
	// "~" sorts after any digit so undated records land last.
	return "~", undatedMonth
}
