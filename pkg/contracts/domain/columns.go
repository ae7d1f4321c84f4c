package domain

// Column names as they appear in the source spreadsheets. The base results
// workbook and the applications workbook share the diary-number key column.
const (
	ColRegion        = "Län"
	ColDecision      = "Beslut"
	ColProvider      = "Anordnare namn"
	ColEducationArea = "Utbildningsområde"
	ColCredits       = "YH-poäng"
	ColKey           = "Diarienummer"

	// ColTotalRequested is the derived row-wise sum added by enrichment.
	ColTotalRequested = "Totalt antal sökta platser"
	// ColTotalGranted is the granted-seats total carried by the base data.
	ColTotalGranted = "Totalt antal beviljade platser"

	// RequestedSeatsPrefix selects the per-intake seat columns of the
	// applications workbook ("Sökt antal platser 2025", ... per year).
	RequestedSeatsPrefix = "Sökt antal platser"
)

// RequiredColumns must be present in the base dataset before any scope
// statistic is computed. A missing member is a schema violation, not a
// degradable condition.
var RequiredColumns = []string{ColRegion, ColDecision, ColProvider, ColEducationArea}

// GrantedSeatsCandidates is the prioritized fallback list for resolving the
// granted-seats column; the name varies with whether enrichment ran and which
// vintage of the workbook was exported.
var GrantedSeatsCandidates = []string{
	ColTotalGranted,
	"Beviljade platser totalt",
}

// RequestedSeatsCandidates is the prioritized fallback list for the
// pre-aggregated requested-seats total. When none is present the per-year
// prefix columns are summed instead, and failing that the value is 0.
var RequestedSeatsCandidates = []string{
	ColTotalRequested,
	"Sökta platser totalt",
}

// MultiMunicipality marks rows that span several municipalities; they are
// excluded from per-county map aggregation because they have no single home
// county.
const MultiMunicipality = "Flera kommuner"
