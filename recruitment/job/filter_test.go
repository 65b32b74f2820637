package job

import (
	"fmt"
	"sort"
	"testing"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureJobs() []*EnrichedJob {
	seattle, austin := "Seattle, WA", "Austin, TX"
	return []*EnrichedJob{
		{Job: &Job{ID: "j-1", Title: "Backend Engineer", Location: &seattle, JobType: JobTypeFullTime, RemoteWork: true}},
		{Job: &Job{ID: "j-2", Title: "Frontend Developer", Location: &austin, JobType: JobTypeContract, RemoteWork: false}},
	}
}

func ids(jobs []*EnrichedJob) []kernel.JobID {
	out := make([]kernel.JobID, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilterCorrectness(t *testing.T) {
	remote := true
	tests := []struct {
		name     string
		criteria ListCriteria
		want     []kernel.JobID
	}{
		{"location substring ignores case", ListCriteria{Location: "seattle"}, []kernel.JobID{"j-1"}},
		{"job type exact", ListCriteria{JobType: "contract"}, []kernel.JobID{"j-2"}},
		{"remote work", ListCriteria{RemoteWork: &remote}, []kernel.JobID{"j-1"}},
		{"all sentinel is ignored", ListCriteria{Location: "all", JobType: "ALL"}, []kernel.JobID{"j-1", "j-2"}},
		{"no criteria", ListCriteria{}, []kernel.JobID{"j-1", "j-2"}},
		{"search title", ListCriteria{SearchQuery: "frontend"}, []kernel.JobID{"j-2"}},
		{"no match", ListCriteria{Location: "Boston"}, []kernel.JobID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(fixtureJobs(), BuildFilters(tt.criteria))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFiltersNeverMatchAbsentFields(t *testing.T) {
	jobs := []*EnrichedJob{
		{Job: &Job{ID: "no-location"}},
		{Job: &Job{ID: "no-company"}, Company: nil},
	}

	assert.Empty(t, ApplyFilters(jobs, BuildFilters(ListCriteria{Location: "seattle"})))
	assert.Empty(t, ApplyFilters(jobs, BuildFilters(ListCriteria{CompanyName: "acme"})))
}

func TestSearchMatchesCompanyAndSkills(t *testing.T) {
	jobs := []*EnrichedJob{
		{Job: &Job{ID: "j-1", Title: "Engineer"}, Company: &company.Company{Name: "Acme Robotics"}},
		{Job: &Job{ID: "j-2", Title: "Engineer", SkillsRequired: []string{"Go", "PostgreSQL"}}},
		{Job: &Job{ID: "j-3", Title: "Designer", Description: "Figma all day"}},
	}

	assert.Equal(t, []kernel.JobID{"j-1"}, ids(ApplyFilters(jobs, BuildFilters(ListCriteria{SearchQuery: "robotics"}))))
	assert.Equal(t, []kernel.JobID{"j-2"}, ids(ApplyFilters(jobs, BuildFilters(ListCriteria{SearchQuery: "postgres"}))))
	assert.Equal(t, []kernel.JobID{"j-3"}, ids(ApplyFilters(jobs, BuildFilters(ListCriteria{SearchQuery: "FIGMA"}))))
}

func TestBuildFiltersOrder(t *testing.T) {
	remote := false
	filters := BuildFilters(ListCriteria{
		SearchQuery:     "go",
		CompanyName:     "acme",
		Location:        "nyc",
		RemoteWork:      &remote,
		ExperienceLevel: "mid",
		JobType:         "full-time",
	})

	names := make([]string, 0, len(filters))
	for _, f := range filters {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"job_type", "experience_level", "remote_work", "location", "company_name", "search"}, names)
}

// permutations returns every ordering of filters
func permutations(filters []Filter) [][]Filter {
	if len(filters) <= 1 {
		return [][]Filter{append([]Filter(nil), filters...)}
	}
	var out [][]Filter
	for i := range filters {
		rest := make([]Filter, 0, len(filters)-1)
		rest = append(rest, filters[:i]...)
		rest = append(rest, filters[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Filter{filters[i]}, p...))
		}
	}
	return out
}

func TestFilterChainIsOrderIndependent(t *testing.T) {
	acme := &company.Company{Name: "Acme"}
	globex := &company.Company{Name: "Globex"}
	cities := []string{"Seattle, WA", "Austin, TX", "New York, NY"}
	types := []JobType{JobTypeFullTime, JobTypeContract, JobTypePartTime}
	levels := []ExperienceLevel{ExperienceMid, ExperienceSenior}

	var jobs []*EnrichedJob
	for i := 0; i < 36; i++ {
		loc := cities[i%len(cities)]
		j := &EnrichedJob{
			Job: &Job{
				ID:              kernel.JobID(fmt.Sprintf("j-%02d", i)),
				Title:           fmt.Sprintf("Engineer %d", i),
				JobType:         types[i%len(types)],
				ExperienceLevel: levels[i%len(levels)],
				RemoteWork:      i%4 == 0,
				SkillsRequired:  []string{[]string{"Go", "Rust", "SQL"}[i%3]},
			},
			Company: []*company.Company{acme, globex, nil}[i%3],
		}
		if i%5 != 0 {
			j.Location = &loc
		}
		jobs = append(jobs, j)
	}

	remote := true
	filters := BuildFilters(ListCriteria{
		Location:    "a",
		CompanyName: "ac",
		SearchQuery: "go",
		JobType:     string(JobTypeFullTime),
		RemoteWork:  &remote,
	})
	require.Len(t, filters, 5)

	reference := ids(ApplyFilters(jobs, filters))
	sort.Slice(reference, func(i, k int) bool { return reference[i] < reference[k] })

	perms := permutations(filters)
	require.Len(t, perms, 120)
	for _, p := range perms {
		got := ids(ApplyFilters(jobs, p))
		sort.Slice(got, func(i, k int) bool { return got[i] < got[k] })
		assert.Equal(t, reference, got)
	}
}
