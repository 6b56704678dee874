package ticket

// IssueType classifies why a resolution_minutes value failed validation.
type IssueType string

const (
	IssueMissing   IssueType = "Missing"
	IssueWrongType IssueType = "Wrong Type"
)

// InvalidResolution is a diagnostic for one ticket whose resolution_minutes
// is absent or not an integer.
type InvalidResolution struct {
	Index        int       `json:"index"`
	TicketID     string    `json:"ticket_id"`
	InvalidValue any       `json:"invalid_value"`
	IssueType    IssueType `json:"issue_type"`
}

// ValidateKeys returns the indices, in input order, of tickets missing at
// least one of requiredKeys. Presence is all that is checked; a nil value
// still satisfies its key.
func ValidateKeys(tickets []Record, requiredKeys []string) []int {
	var missing []int
	for i, t := range tickets {
		for _, key := range requiredKeys {
			if _, ok := t[key]; !ok {
				missing = append(missing, i)
				break
			}
		}
	}
	return missing
}

// FindInvalidResolutions returns one diagnostic, in input order, for every
// ticket whose resolution_minutes is nil or absent (Missing) or present but
// not an integer (Wrong Type). InvalidValue carries the raw offending
// value.
func FindInvalidResolutions(tickets []Record) []InvalidResolution {
	var invalid []InvalidResolution
	for i, t := range tickets {
		v, ok := t["resolution_minutes"]
		if !ok || v == nil {
			invalid = append(invalid, InvalidResolution{
				Index:     i,
				TicketID:  t.TicketID(),
				IssueType: IssueMissing,
			})
			continue
		}
		if !isInteger(v) {
			invalid = append(invalid, InvalidResolution{
				Index:        i,
				TicketID:     t.TicketID(),
				InvalidValue: v,
				IssueType:    IssueWrongType,
			})
		}
	}
	return invalid
}
