package ticket

// AverageResolutionByCategory computes the mean resolution_minutes per
// category, rounded to two decimals. A ticket without the field
// contributes zero minutes and still counts; a ticket with a non-numeric
// value is excluded from both sum and count for its category.
func AverageResolutionByCategory(tickets []Record) map[string]float64 {
	type stats struct {
		total float64
		count int
	}

	byCategory := make(map[string]stats)
	for _, t := range tickets {
		minutes := 0.0
		if v, ok := t["resolution_minutes"]; ok {
			f, numeric := numericValue(v)
			if !numeric {
				continue
			}
			minutes = f
		}

		s := byCategory[t.Category()]
		s.total += minutes
		s.count++
		byCategory[t.Category()] = s
	}

	averages := make(map[string]float64, len(byCategory))
	for cat, s := range byCategory {
		if s.count > 0 {
			averages[cat] = round2(s.total / float64(s.count))
		} else {
			averages[cat] = 0
		}
	}
	return averages
}

// Escalations summarizes the share of Critical-priority tickets, overall
// and per category, as percentages in [0, 100].
type Escalations struct {
	OverallRate float64            `json:"overall_rate"`
	ByCategory  map[string]float64 `json:"by_category"`
}

// EscalationRates computes the percentage of tickets whose priority is
// exactly Critical. An empty input yields an overall rate of 0.0 and an
// empty by-category map.
func EscalationRates(tickets []Record) Escalations {
	type counts struct {
		total    int
		critical int
	}

	byCategory := make(map[string]counts)
	total, critical := 0, 0
	for _, t := range tickets {
		isCritical := 0
		if t.Priority() == PriorityCritical {
			isCritical = 1
		}

		total++
		critical += isCritical

		c := byCategory[t.Category()]
		c.total++
		c.critical += isCritical
		byCategory[t.Category()] = c
	}

	rates := Escalations{ByCategory: make(map[string]float64, len(byCategory))}
	if total > 0 {
		rates.OverallRate = round2(float64(critical) / float64(total) * 100)
	}
	for cat, c := range byCategory {
		if c.total > 0 {
			rates.ByCategory[cat] = round2(float64(c.critical) / float64(c.total) * 100)
		}
	}
	return rates
}
