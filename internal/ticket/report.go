package ticket

// Meta describes one report run.
type Meta struct {
	TotalRecords int    `json:"total_records"`
	Status       string `json:"status"`
}

// Report is the assembled summary for one batch of tickets. Every field is
// a plain, directly-serializable structure.
type Report struct {
	Meta        Meta               `json:"meta"`
	Averages    map[string]float64 `json:"averages"`
	Escalations Escalations        `json:"escalations"`
}

// GenerateReport combines both aggregate summaries with run metadata. It
// performs no validation of its own and cannot fail on data content;
// Status is always "Success".
func GenerateReport(tickets []Record) Report {
	return Report{
		Meta: Meta{
			TotalRecords: len(tickets),
			Status:       "Success",
		},
		Averages:    AverageResolutionByCategory(tickets),
		Escalations: EscalationRates(tickets),
	}
}
