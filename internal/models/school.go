package models

// School is an institution under a wereda office.
type School struct {
	ID           ID     `json:"id,omitempty" form:"id"`
	Name         string `json:"name" form:"name" label:"Name" validate:"notblank"`
	Code         string `json:"code" form:"code" label:"Code" validate:"notblank"`
	Level        string `json:"level,omitempty" form:"level"`
	Type         string `json:"type,omitempty" form:"type"`
	StudentCount Count  `json:"student_count,omitempty" form:"student_count"`
	TeacherCount Count  `json:"teacher_count,omitempty" form:"teacher_count"`
	Principal    string `json:"principal,omitempty" form:"principal"`
	Address      string `json:"address,omitempty" form:"address"`
	Phone        string `json:"phone,omitempty" form:"phone"`
	Email        string `json:"email,omitempty" form:"email"`
	Established  string `json:"established,omitempty" form:"established"`
}

// NewSchool returns a blank school for the add form.
func NewSchool() *School {
	return &School{Level: "Primary", Type: "Government"}
}

// Wereda is a district office with manually maintained counters.
type Wereda struct {
	ID                ID      `json:"id,omitempty" form:"id"`
	Name              string  `json:"name" form:"name" label:"Name" validate:"notblank"`
	Population        Count   `json:"population,omitempty" form:"population"`
	Area              Decimal `json:"area,omitempty" form:"area"`
	NumberOfSchools   Count   `json:"number_of_schools,omitempty" form:"number_of_schools"`
	NumberOfStudents  Count   `json:"number_of_students,omitempty" form:"number_of_students"`
	NumberOfTeachers  Count   `json:"number_of_teachers,omitempty" form:"number_of_teachers"`
	LiteracyRate      Decimal `json:"literacy_rate,omitempty" form:"literacy_rate"`
	Status            string  `json:"status,omitempty" form:"status"`
	CreatedByUsername string  `json:"created_by_username,omitempty"`
	CreatedAt         string  `json:"created_at,omitempty"`
}

// NewWereda returns a blank wereda for the add form.
func NewWereda() *Wereda {
	return &Wereda{Status: "active"}
}

// Zone groups weredas; zone pages only read it.
type Zone struct {
	ID      ID       `json:"id"`
	Name    string   `json:"name"`
	Weredas []Wereda `json:"weredas,omitempty"`
}

// RegionTotals aggregates counters across units.
type RegionTotals struct {
	Units    int `json:"units"`
	Schools  int `json:"schools"`
	Students int `json:"students"`
	Teachers int `json:"teachers"`
}

// SumWeredas totals the manually entered wereda counters.
func SumWeredas(weredas []Wereda) RegionTotals {
	totals := RegionTotals{Units: len(weredas)}
	for _, w := range weredas {
		totals.Schools += w.NumberOfSchools.Int()
		totals.Students += w.NumberOfStudents.Int()
		totals.Teachers += w.NumberOfTeachers.Int()
	}
	return totals
}

// SumSchools totals school counters.
func SumSchools(schools []School) RegionTotals {
	totals := RegionTotals{Units: len(schools), Schools: len(schools)}
	for _, s := range schools {
		totals.Students += s.StudentCount.Int()
		totals.Teachers += s.TeacherCount.Int()
	}
	return totals
}
