package exporter

import (
	"strconv"

	"yhstat/internal/providers"
	"yhstat/pkg/contracts/domain"
)

// ProviderTable converts the ranked provider summaries into CSV rows.
func ProviderTable(summaries []providers.Summary) WriteOptions {
	headers := []string{
		"Anordnare", "Beviljade platser", "Sökta platser", "Andel beviljade platser (%)",
		"Beviljade kurser", "Antal kurser", "Andel beviljade kurser (%)",
		"Rank platser", "Rank kurser",
	}
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Provider,
			formatFloat(s.GrantedSeats),
			formatFloat(s.RequestedSeats),
			formatFloat(s.SeatsApprovalRate),
			strconv.Itoa(s.ApprovedCourses),
			strconv.Itoa(s.TotalCourses),
			formatFloat(s.CoursesApprovalRate),
			strconv.Itoa(s.RankBySeats),
			strconv.Itoa(s.RankByCourses),
		})
	}
	return WriteOptions{Headers: headers, Records: records, BOMPrefix: true}
}

// CohortTable converts long-form cohort observations into CSV rows.
func CohortTable(obs []domain.CohortObservation) WriteOptions {
	headers := []string{"Kön", "Utbildningsområde", "Ålder", "År", "Antal"}
	records := make([][]string, 0, len(obs))
	for _, o := range obs {
		records = append(records, []string{
			o.Gender,
			o.EducationArea,
			o.AgeGroup,
			strconv.Itoa(o.Year),
			formatFloat(o.Count),
		})
	}
	return WriteOptions{Headers: headers, Records: records, BOMPrefix: true}
}
