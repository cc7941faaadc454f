package listing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/models"
)

func studentSpec() Spec[models.Student] {
	return Spec[models.Student]{
		SearchFields: []func(models.Student) string{
			func(s models.Student) string { return s.FirstName },
			func(s models.Student) string { return s.AdmissionNo },
			func(s models.Student) string { return s.Username },
		},
		Dropdowns: map[string]Dropdown[models.Student]{
			"class":  {Value: func(s models.Student) string { return s.ClassSection }},
			"gender": {Value: func(s models.Student) string { return s.Gender }, FoldCase: true},
		},
		Columns: map[string]func(models.Student) string{
			"first_name": func(s models.Student) string { return s.FirstName },
		},
	}
}

func sampleStudents() []models.Student {
	return []models.Student{
		{AdmissionNo: "A100", FirstName: "Abebe", ClassSection: "Grade 10A", Gender: "Male", Username: "abebe.k"},
		{AdmissionNo: "A101", FirstName: "Hana", ClassSection: "Grade 10A", Gender: "female", Username: "hana.t"},
		{AdmissionNo: "B200", FirstName: "Sara", ClassSection: "Grade 9B", Gender: "Female", Username: "sara.m"},
		{AdmissionNo: "B201", FirstName: "Dawit", ClassSection: "Grade 9B", Gender: "male"},
	}
}

func TestApplyAllSentinelIsNoop(t *testing.T) {
	spec := studentSpec()
	items := sampleStudents()

	got := spec.Apply(items, Criteria{Selected: map[string]string{"class": "all", "gender": "all"}})
	assert.Equal(t, items, got)
	assert.Equal(t, items, spec.Apply(items, Criteria{}))
}

func TestApplyConjunction(t *testing.T) {
	spec := studentSpec()
	items := sampleStudents()

	got := spec.Apply(items, Criteria{Search: "a1", Selected: map[string]string{"gender": "FEMALE"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Hana", got[0].FirstName)

	got = spec.Apply(items, Criteria{Selected: map[string]string{"class": "grade 9b"}})
	assert.Empty(t, got, "class filter is case sensitive")

	got = spec.Apply(items, Criteria{Search: "SARA"})
	require.Len(t, got, 1)
	assert.Equal(t, "B200", got[0].AdmissionNo)
}

func TestMatchIsConjunctionOfSubFilters(t *testing.T) {
	spec := studentSpec()
	items := sampleStudents()
	searches := []string{"", "a", "b2", "hana", "zzz"}
	classes := []string{"all", "Grade 10A", "Grade 9B"}
	genders := []string{"all", "male", "Female"}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		c := Criteria{
			Search: searches[rng.Intn(len(searches))],
			Selected: map[string]string{
				"class":  classes[rng.Intn(len(classes))],
				"gender": genders[rng.Intn(len(genders))],
			},
		}
		for _, item := range items {
			alone := spec.Match(item, Criteria{Search: c.Search}) &&
				spec.Match(item, Criteria{Selected: map[string]string{"class": c.Selected["class"]}}) &&
				spec.Match(item, Criteria{Selected: map[string]string{"gender": c.Selected["gender"]}})
			require.Equal(t, alone, spec.Match(item, c))
		}
	}
}

func TestOptions(t *testing.T) {
	spec := studentSpec()
	items := sampleStudents()
	assert.Equal(t, []string{All, "Grade 10A", "Grade 9B"}, spec.Options(items, "class"))
	assert.Equal(t, []string{All, "female", "male"}, spec.Options(items, "gender"))
	assert.Equal(t, []string{All}, spec.Options(items, "department"))
}

func TestSortBy(t *testing.T) {
	spec := studentSpec()
	items := sampleStudents()

	spec.SortBy(items, "first_name", false)
	assert.Equal(t, "Abebe", items[0].FirstName)
	assert.Equal(t, "Sara", items[3].FirstName)

	spec.SortBy(items, "first_name", true)
	assert.Equal(t, "Sara", items[0].FirstName)

	spec.SortBy(items, "unknown", false)
	assert.Equal(t, "Sara", items[0].FirstName)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, 3, 10)
	assert.Equal(t, []int{20, 21, 22}, page)
	assert.Equal(t, models.Pagination{Page: 3, PageSize: 10, TotalCount: 23, TotalPages: 3}, meta)

	page, meta = Paginate(items, 99, 0)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, DefaultPageSize, meta.PageSize)
	assert.Len(t, page, 3)

	page, meta = Paginate(items, -1, 5)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, page)

	page, meta = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestSortByNumericColumn(t *testing.T) {
	type unit struct{ name, population string }
	spec := Spec[unit]{Columns: map[string]func(unit) string{
		"population": func(u unit) string { return u.population },
	}}
	items := []unit{{"a", "900"}, {"b", "10000"}, {"c", "85"}}
	spec.SortBy(items, "population", false)
	assert.Equal(t, []string{"c", "a", "b"}, []string{items[0].name, items[1].name, items[2].name})
	spec.SortBy(items, "population", true)
	assert.Equal(t, "b", items[0].name)
}
