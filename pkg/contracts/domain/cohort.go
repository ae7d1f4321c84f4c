package domain

// TotalsSentinel is the age-group and education-area value meaning "all
// combined" in the admitted-students dataset.
const TotalsSentinel = "Totalt"

// AllAreasLabel is prepended to education-area selectors so the presentation
// layer can offer an unfiltered view.
const AllAreasLabel = "Alla utbildningsområden"

// Genders as spelled in the cohort dataset.
const (
	GenderWomen = "kvinnor"
	GenderMen   = "män"
)

// CohortRecord is one wide-format row of the admitted-students dataset: one
// (gender, education area, age group) combination with one count per year.
// The wide form is a storage convenience only; every computation reshapes to
// CohortObservation first.
type CohortRecord struct {
	Gender        string          `json:"gender"`
	EducationArea string          `json:"education_area"`
	AgeGroup      string          `json:"age_group"`
	YearCounts    map[int]float64 `json:"year_counts"`
}

// CohortObservation is the long-format row used by all time-series and ratio
// computations.
type CohortObservation struct {
	Gender        string  `json:"gender"`
	EducationArea string  `json:"education_area"`
	AgeGroup      string  `json:"age_group"`
	Year          int     `json:"year"`
	Count         float64 `json:"count"`
}
