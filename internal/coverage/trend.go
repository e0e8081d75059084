package coverage

import (
	"time"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

const trendWindowDays = 30

type DayBucket struct {
	Date      string `json:"data"`
	Incidents int    `json:"intercorrencias"`
	GoodDays  int    `json:"diasBons"`
	Total     int    `json:"total"`
}

type TrendReport struct {
	Days              []DayBucket `json:"dias"`
	TotalIncidents    int         `json:"totalIntercorrencias"`
	TotalGoodDays     int         `json:"totalDiasBons"`
	TotalObservations int         `json:"totalObservacoes"`
	RecentIncidents   int         `json:"intercorrenciasRecentes"`
	PriorIncidents    int         `json:"intercorrenciasAnteriores"`
	// Trend compares the last 7 days with the 7 before them, in percent.
	// It is 0 when the earlier week had no incidents.
	Trend float64 `json:"tendencia"`
}

func Trend30Days(entries []domain.CareLogEntry, now time.Time) TrendReport {
	byDate := make(map[string][]domain.CareLogEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	today := startOfDay(now)
	report := TrendReport{Days: make([]DayBucket, 0, trendWindowDays)}
	for i := trendWindowDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(domain.DateLayout)
		incidents, goodDays, _ := countByType(byDate[date])
		report.Days = append(report.Days, DayBucket{
			Date:      date,
			Incidents: incidents,
			GoodDays:  goodDays,
			Total:     len(byDate[date]),
		})
	}

	for _, d := range report.Days[trendWindowDays-7:] {
		report.RecentIncidents += d.Incidents
	}
	for _, d := range report.Days[trendWindowDays-14 : trendWindowDays-7] {
		report.PriorIncidents += d.Incidents
	}
	if report.PriorIncidents > 0 {
		report.Trend = float64(report.RecentIncidents-report.PriorIncidents) / float64(report.PriorIncidents) * 100
	}

	report.TotalIncidents, report.TotalGoodDays, report.TotalObservations = countByType(entries)

	return report
}
