package models

// Activity features whose data source is configurable.
const (
	FeatureDiscipline       = "discipline"
	FeatureCapacityBuilding = "capacity_building"
	FeatureInfrastructure   = "infrastructure"
)

// DisciplineClass aggregates incidents per class.
type DisciplineClass struct {
	Class     string `json:"class"`
	Incidents int    `json:"incidents"`
	Resolved  int    `json:"resolved"`
	Major     int    `json:"major"`
	Minor     int    `json:"minor"`
	Trend     string `json:"trend"`
}

// Incident is a single recorded discipline case.
type Incident struct {
	ID          ID     `json:"id"`
	Student     string `json:"student"`
	Class       string `json:"class"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Action      string `json:"action"`
}

// DisciplineStats are derived from the class breakdown.
type DisciplineStats struct {
	TotalIncidents  int `json:"total_incidents"`
	ResolvedCases   int `json:"resolved_cases"`
	PendingCases    int `json:"pending_cases"`
	RepeatOffenders int `json:"repeat_offenders"`
}

// DisciplineReport is the discipline activity page payload.
type DisciplineReport struct {
	Classes         []DisciplineClass `json:"classes"`
	RecentIncidents []Incident        `json:"recent_incidents"`
	RepeatOffenders int               `json:"repeat_offenders"`
	Stats           DisciplineStats   `json:"stats"`
}

// ComputeStats fills Stats from the class breakdown.
func (r *DisciplineReport) ComputeStats() {
	var stats DisciplineStats
	for _, c := range r.Classes {
		stats.TotalIncidents += c.Incidents
		stats.ResolvedCases += c.Resolved
	}
	stats.PendingCases = stats.TotalIncidents - stats.ResolvedCases
	stats.RepeatOffenders = r.RepeatOffenders
	r.Stats = stats
}

// Training is a capacity-building session.
type Training struct {
	ID                     ID       `json:"id"`
	Title                  string   `json:"title"`
	Category               string   `json:"category"`
	Level                  string   `json:"level"`
	Date                   string   `json:"date"`
	Duration               string   `json:"duration"`
	Venue                  string   `json:"venue"`
	Facilitator            string   `json:"facilitator"`
	Status                 string   `json:"status"`
	MaxParticipants        int      `json:"max_participants"`
	RegisteredParticipants int      `json:"registered_participants"`
	Objectives             []string `json:"objectives"`
}

// SeatsLeft reports remaining capacity.
func (t Training) SeatsLeft() int {
	left := t.MaxParticipants - t.RegisteredParticipants
	if left < 0 {
		return 0
	}
	return left
}

// CapacityBuildingReport is the capacity-building page payload.
type CapacityBuildingReport struct {
	Trainings []Training `json:"trainings"`
}

// InfrastructureSchool is a school's facility snapshot.
type InfrastructureSchool struct {
	ID         ID      `json:"id"`
	Name       string  `json:"name"`
	Students   int     `json:"students"`
	Classrooms int     `json:"classrooms"`
	Labs       int     `json:"labs"`
	Library    bool    `json:"library"`
	Status     string  `json:"status"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// InfrastructureWereda groups facility snapshots per wereda.
type InfrastructureWereda struct {
	ID              ID                     `json:"id"`
	Name            string                 `json:"name"`
	TotalSchools    int                    `json:"total_schools"`
	TotalStudents   int                    `json:"total_students"`
	TotalClassrooms int                    `json:"total_classrooms"`
	Schools         []InfrastructureSchool `json:"schools"`
}

// InfrastructureReport is the school infrastructure page payload.
type InfrastructureReport struct {
	Zone    string                 `json:"zone"`
	Weredas []InfrastructureWereda `json:"weredas"`
}

// ActivityPage wraps a feature payload with the source it was read from.
type ActivityPage[T any] struct {
	Feature string `json:"feature"`
	Source  string `json:"source"`
	Data    T      `json:"data"`
}
