package job

import (
	"strings"
)

// AllSentinel disables a string filter
const AllSentinel = "all"

// Filter is one predicate of the listing filter chain
type Filter struct {
	Name  string
	Match func(*EnrichedJob) bool
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, AllSentinel)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// BuildFilters turns criteria into the ordered filter chain. Exact matches run
// before the substring scans.
func BuildFilters(c ListCriteria) []Filter {
	filters := make([]Filter, 0, 6)

	if active(c.JobType) {
		want := JobType(strings.TrimSpace(c.JobType))
		filters = append(filters, Filter{
			Name:  "job_type",
			Match: func(j *EnrichedJob) bool { return j.JobType == want },
		})
	}

	if active(c.ExperienceLevel) {
		want := ExperienceLevel(strings.TrimSpace(c.ExperienceLevel))
		filters = append(filters, Filter{
			Name:  "experience_level",
			Match: func(j *EnrichedJob) bool { return j.ExperienceLevel == want },
		})
	}

	if c.RemoteWork != nil {
		want := *c.RemoteWork
		filters = append(filters, Filter{
			Name:  "remote_work",
			Match: func(j *EnrichedJob) bool { return j.RemoteWork == want },
		})
	}

	if active(c.Location) {
		needle := strings.ToLower(strings.TrimSpace(c.Location))
		filters = append(filters, Filter{
			Name: "location",
			Match: func(j *EnrichedJob) bool {
				return j.Location != nil && containsFold(*j.Location, needle)
			},
		})
	}

	if active(c.CompanyName) {
		needle := strings.ToLower(strings.TrimSpace(c.CompanyName))
		filters = append(filters, Filter{
			Name: "company_name",
			Match: func(j *EnrichedJob) bool {
				return j.Company != nil && containsFold(j.Company.Name, needle)
			},
		})
	}

	if active(c.SearchQuery) {
		needle := strings.ToLower(strings.TrimSpace(c.SearchQuery))
		filters = append(filters, Filter{
			Name:  "search",
			Match: func(j *EnrichedJob) bool { return matchesSearch(j, needle) },
		})
	}

	return filters
}

func matchesSearch(j *EnrichedJob, needle string) bool {
	if containsFold(j.Title, needle) || containsFold(j.Description, needle) {
		return true
	}
	if j.Company != nil && containsFold(j.Company.Name, needle) {
		return true
	}
	for _, skill := range j.SkillsRequired {
		if containsFold(skill, needle) {
			return true
		}
	}
	return false
}

// ApplyFilters keeps the jobs matching every filter, preserving input order
func ApplyFilters(jobs []*EnrichedJob, filters []Filter) []*EnrichedJob {
	out := make([]*EnrichedJob, 0, len(jobs))
next:
	for _, j := range jobs {
		for _, f := range filters {
			if !f.Match(j) {
				continue next
			}
		}
		out = append(out, j)
	}
	return out
}
