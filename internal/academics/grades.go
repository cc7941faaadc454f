// Package academics derives the grade and attendance figures shown on student dashboards.
// Every function is pure and total: empty input yields zero values, never NaN.
package academics

import (
	"math"

	"github.com/noah-isme/eschool-portal/internal/models"
)

// DefaultCredits is applied to subjects missing from the credit-hours map.
const DefaultCredits = 3.0

// DefaultSemester labels records without a semester name.
const DefaultSemester = "Current"

var letterSteps = []struct {
	min    float64
	letter string
}{
	{90, "A+"}, {85, "A"}, {80, "A-"},
	{75, "B+"}, {70, "B"}, {65, "B-"},
	{60, "C+"}, {55, "C"}, {50, "C-"},
}

var gradePoints = map[string]float64{
	"A+": 4.0, "A": 3.7, "A-": 3.3,
	"B+": 3.0, "B": 2.7, "B-": 2.3,
	"C+": 2.0, "C": 1.7, "C-": 1.3,
	"F": 0.0,
}

// LetterGrade maps a percentage to a letter. Values above 100 stay A+, values below 0 are F.
func LetterGrade(p float64) string {
	if math.IsNaN(p) {
		return "F"
	}
	for _, step := range letterSteps {
		if p >= step.min {
			return step.letter
		}
	}
	return "F"
}

// GradePoints returns the points for a letter; unknown letters score 0.
func GradePoints(letter string) float64 {
	return gradePoints[letter]
}

type subjectGroup struct {
	name    string
	total   float64
	records int
}

// groupBySubject keeps first-appearance order so per-subject output is stable.
func groupBySubject(records []models.GradeRecord) []*subjectGroup {
	index := make(map[string]*subjectGroup)
	var groups []*subjectGroup
	for _, r := range records {
		g, ok := index[r.SubjectName]
		if !ok {
			g = &subjectGroup{name: r.SubjectName}
			index[r.SubjectName] = g
			groups = append(groups, g)
		}
		g.total += r.Percentage()
		g.records++
	}
	return groups
}

func (g *subjectGroup) mean() float64 {
	if g.records == 0 {
		return 0
	}
	return g.total / float64(g.records)
}

// GPA is the credit-weighted mean of per-subject grade points, rounded to two decimals.
// credits may be nil; subjects not listed use DefaultCredits.
func GPA(records []models.GradeRecord, credits map[string]float64) float64 {
	var totalPoints, totalCredits float64
	for _, g := range groupBySubject(records) {
		weight := DefaultCredits
		if c, ok := credits[g.name]; ok && c > 0 {
			weight = c
		}
		totalPoints += GradePoints(LetterGrade(g.mean())) * weight
		totalCredits += weight
	}
	if totalCredits == 0 {
		return 0
	}
	return round2(totalPoints / totalCredits)
}

// SemesterGPA is one line of the semester breakdown.
type SemesterGPA struct {
	Semester     string  `json:"semester"`
	GPA          float64 `json:"gpa"`
	SubjectCount int     `json:"subject_count"`
	RecordCount  int     `json:"record_count"`
}

// SemesterBreakdown groups records by semester in order of first appearance.
func SemesterBreakdown(records []models.GradeRecord, credits map[string]float64) []SemesterGPA {
	index := make(map[string]int)
	var order []string
	grouped := make(map[string][]models.GradeRecord)
	for _, r := range records {
		label := r.SemesterName
		if label == "" {
			label = DefaultSemester
		}
		if _, ok := index[label]; !ok {
			index[label] = len(order)
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], r)
	}

	out := make([]SemesterGPA, 0, len(order))
	for _, label := range order {
		group := grouped[label]
		out = append(out, SemesterGPA{
			Semester:     label,
			GPA:          GPA(group, credits),
			SubjectCount: len(groupBySubject(group)),
			RecordCount:  len(group),
		})
	}
	return out
}

// SubjectAverage is the per-subject line of the grades table.
type SubjectAverage struct {
	Subject     string  `json:"subject"`
	Average     float64 `json:"average"`
	Letter      string  `json:"letter"`
	Points      float64 `json:"points"`
	Assessments int     `json:"assessments"`
}

// SubjectAverages returns the mean percentage and letter of each subject.
func SubjectAverages(records []models.GradeRecord) []SubjectAverage {
	groups := groupBySubject(records)
	out := make([]SubjectAverage, 0, len(groups))
	for _, g := range groups {
		mean := g.mean()
		letter := LetterGrade(mean)
		out = append(out, SubjectAverage{
			Subject:     g.name,
			Average:     round2(mean),
			Letter:      letter,
			Points:      GradePoints(letter),
			Assessments: g.records,
		})
	}
	return out
}

// Status colours shared by GPA and attendance views.
const (
	ColorExcellent    = "#10b981"
	ColorGood         = "#3b82f6"
	ColorAverage      = "#f59e0b"
	ColorBelowAverage = "#f97316"
	ColorPoor         = "#ef4444"
)

// GPAStatus classifies a GPA on the 4.0 scale.
func GPAStatus(gpa float64) models.Status {
	switch {
	case gpa >= 3.5:
		return models.Status{Label: "Excellent", Color: ColorExcellent}
	case gpa >= 3.0:
		return models.Status{Label: "Good", Color: ColorGood}
	case gpa >= 2.5:
		return models.Status{Label: "Average", Color: ColorAverage}
	case gpa >= 2.0:
		return models.Status{Label: "Below Average", Color: ColorBelowAverage}
	default:
		return models.Status{Label: "Poor", Color: ColorPoor}
	}
}

// GradeReport bundles every figure the grades and GPA pages show.
type GradeReport struct {
	GPA          float64          `json:"gpa"`
	CGPA         float64          `json:"cgpa"`
	Status       models.Status    `json:"status"`
	TotalCredits float64          `json:"total_credits"`
	Semesters    []SemesterGPA    `json:"semesters"`
	Subjects     []SubjectAverage `json:"subjects"`
	Records      int              `json:"records"`
}

// BuildGradeReport derives the full report. CGPA equals the GPA over all records.
func BuildGradeReport(records []models.GradeRecord, credits map[string]float64) GradeReport {
	subjects := SubjectAverages(records)
	var totalCredits float64
	for _, s := range subjects {
		weight := DefaultCredits
		if c, ok := credits[s.Subject]; ok && c > 0 {
			weight = c
		}
		totalCredits += weight
	}
	gpa := GPA(records, credits)
	return GradeReport{
		GPA:          gpa,
		CGPA:         gpa,
		Status:       GPAStatus(gpa),
		TotalCredits: totalCredits,
		Semesters:    SemesterBreakdown(records, credits),
		Subjects:     subjects,
		Records:      len(records),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
