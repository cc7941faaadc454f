package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type teacherSelfRepository interface {
	Dashboard(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherDashboard, error)
	Classes(ctx context.Context, tokens apiclient.TokenSource) ([]models.TeacherClass, error)
	Students(ctx context.Context, tokens apiclient.TokenSource) ([]models.TeacherStudent, error)
	Attendance(ctx context.Context, tokens apiclient.TokenSource, filter models.AttendanceFilter) (*models.AttendanceSheet, error)
	MarkAttendance(ctx context.Context, tokens apiclient.TokenSource, entries []models.AttendanceEntry) (*models.AttendanceMarkResult, error)
	Grades(ctx context.Context, tokens apiclient.TokenSource, filter models.GradeFilter) (*models.GradeBook, error)
	AddGrade(ctx context.Context, tokens apiclient.TokenSource, grade models.TeacherGrade) (*models.TeacherGrade, error)
	UpdateGrade(ctx context.Context, tokens apiclient.TokenSource, grade models.TeacherGrade) (*models.TeacherGrade, error)
	AddGrades(ctx context.Context, tokens apiclient.TokenSource, grades []models.TeacherGrade) (*models.BulkGradeResult, error)
	Schedule(ctx context.Context, tokens apiclient.TokenSource) (map[string][]models.TeacherLesson, error)
	Profile(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherProfile, error)
}

// MarkAttendanceRequest is a bulk attendance submission for one section and day.
type MarkAttendanceRequest struct {
	Section        models.ID                `json:"section" form:"section"`
	Subject        models.ID                `json:"subject,omitempty" form:"subject"`
	Date           string                   `json:"date" form:"date"`
	IdempotencyKey string                   `json:"idempotency_key,omitempty" form:"idempotency_key"`
	Entries        []models.AttendanceEntry `json:"entries" form:"-"`
}

// SaveGradeRequest adds a grade, or replaces the grade with ID when it is set. Filter is the
// grade list view to return after the write.
type SaveGradeRequest struct {
	Grade          models.TeacherGrade `json:"grade"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
	Filter         models.GradeFilter  `json:"filter"`
}

// GradeMutation is a saved grade together with the refreshed grade list.
type GradeMutation struct {
	Grade *models.TeacherGrade `json:"grade"`
	Book  *models.GradeBook    `json:"grade_book,omitempty"`
}

// BulkGradeRequest is one assessment recorded for many students. Fields set on the request fill
// grades that leave them blank.
type BulkGradeRequest struct {
	Subject        models.ID             `json:"subject" form:"subject"`
	Section        models.ID             `json:"section" form:"section"`
	Semester       models.ID             `json:"semester,omitempty" form:"semester"`
	GradeType      string                `json:"grade_type" form:"grade_type"`
	FullMark       models.Decimal        `json:"full_mark" form:"full_mark"`
	AcademicYear   string                `json:"academic_year,omitempty" form:"academic_year"`
	IdempotencyKey string                `json:"idempotency_key,omitempty" form:"idempotency_key"`
	Grades         []models.TeacherGrade `json:"grades" form:"-"`
}

// TeacherPortalService serves the logged-in teacher's classes, students and attendance.
type TeacherPortalService struct {
	repo      teacherSelfRepository
	validator *validator.Validate
	guard     *submitGuard
	logger    *zap.Logger
	now       func() time.Time
}

// NewTeacherPortalService constructs the service.
func NewTeacherPortalService(repo teacherSelfRepository, validate *validator.Validate, idempotencyTTL time.Duration, logger *zap.Logger) *TeacherPortalService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherPortalService{
		repo:      repo,
		validator: validate,
		guard:     newSubmitGuard(idempotencyTTL),
		logger:    logger,
		now:       time.Now,
	}
}

// Dashboard returns the teacher's summary counters and today's schedule.
func (s *TeacherPortalService) Dashboard(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherDashboard, error) {
	dash, err := s.repo.Dashboard(ctx, tokens)
	if err != nil {
		return nil, err
	}
	if dash.TodaySchedule == nil {
		dash.TodaySchedule = []models.ScheduleSlot{}
	}
	return dash, nil
}

// Classes returns the sections the teacher advises or teaches.
func (s *TeacherPortalService) Classes(ctx context.Context, tokens apiclient.TokenSource) ([]models.TeacherClass, error) {
	return s.repo.Classes(ctx, tokens)
}

// Students returns the students taught by the teacher, optionally narrowed to one class section.
func (s *TeacherPortalService) Students(ctx context.Context, tokens apiclient.TokenSource, classSection string) ([]models.TeacherStudent, error) {
	students, err := s.repo.Students(ctx, tokens)
	if err != nil {
		return nil, err
	}
	if classSection == "" {
		return students, nil
	}
	filtered := students[:0:0]
	for _, st := range students {
		if strings.EqualFold(st.ClassSection, classSection) {
			filtered = append(filtered, st)
		}
	}
	return filtered, nil
}

// Attendance lists recorded attendance matching filter.
func (s *TeacherPortalService) Attendance(ctx context.Context, tokens apiclient.TokenSource, filter models.AttendanceFilter) (*models.AttendanceSheet, error) {
	sheet, err := s.repo.Attendance(ctx, tokens, filter)
	if err != nil {
		return nil, err
	}
	if sheet.Records == nil {
		sheet.Records = []models.AttendanceEntry{}
	}
	return sheet, nil
}

// Roster seeds an attendance sheet for a section, marking every student present.
func (s *TeacherPortalService) Roster(ctx context.Context, tokens apiclient.TokenSource, section models.TeacherClass) ([]models.AttendanceEntry, error) {
	students, err := s.Students(ctx, tokens, section.Name)
	if err != nil {
		return nil, err
	}
	date := s.now().Format("2006-01-02")
	entries := make([]models.AttendanceEntry, 0, len(students))
	for _, st := range students {
		entries = append(entries, models.AttendanceEntry{
			Student:     st.StudentID,
			StudentName: st.StudentName,
			Section:     section.ID,
			SectionName: section.Name,
			Date:        date,
			Status:      models.AttendancePresent,
		})
	}
	return entries, nil
}

// MarkAttendance validates and posts a bulk attendance sheet. Section, subject and date on the
// request fill entries that leave them blank. Nothing is sent when any entry is invalid.
func (s *TeacherPortalService) MarkAttendance(ctx context.Context, tokens apiclient.TokenSource, req MarkAttendanceRequest) (*models.AttendanceMarkResult, bool, error) {
	if len(req.Entries) == 0 {
		return nil, false, appErrors.Validation(map[string]string{"entries": "At least one student is required"})
	}
	entries := make([]models.AttendanceEntry, len(req.Entries))
	fields := map[string]string{}
	for i, entry := range req.Entries {
		if entry.Section == "" {
			entry.Section = req.Section
		}
		if entry.Subject == "" {
			entry.Subject = req.Subject
		}
		if entry.Date == "" {
			entry.Date = req.Date
		}
		entry.Status = strings.ToLower(strings.TrimSpace(entry.Status))
		if verr := validateFields(s.validator, &entry); verr != nil {
			for field, msg := range verr.Fields {
				fields[fmt.Sprintf("entries[%d].%s", i, field)] = msg
			}
		}
		entries[i] = entry
	}
	if len(fields) > 0 {
		return nil, false, appErrors.Validation(fields)
	}

	value, replayed, err := s.guard.Do(req.IdempotencyKey, func() (interface{}, error) {
		return s.repo.MarkAttendance(ctx, tokens, entries)
	})
	if err != nil {
		return nil, false, err
	}
	result := value.(*models.AttendanceMarkResult)
	if result.Errors > 0 {
		s.logger.Warn("attendance partially saved", zap.Int("created", result.Created), zap.Int("errors", result.Errors))
	}
	return result, replayed, nil
}

// Grades lists the grades the teacher entered, with the backend's statistics.
func (s *TeacherPortalService) Grades(ctx context.Context, tokens apiclient.TokenSource, filter models.GradeFilter) (*models.GradeBook, error) {
	book, err := s.repo.Grades(ctx, tokens, filter)
	if err != nil {
		return nil, err
	}
	if book.Grades == nil {
		book.Grades = []models.TeacherGrade{}
	}
	return book, nil
}

// checkGrade normalises grade and reports its field errors, or nil.
func (s *TeacherPortalService) checkGrade(grade *models.TeacherGrade) map[string]string {
	grade.GradeType = strings.ToLower(strings.TrimSpace(grade.GradeType))
	fields := map[string]string{}
	if verr := validateFields(s.validator, grade); verr != nil {
		for field, msg := range verr.Fields {
			fields[field] = msg
		}
	}
	if _, bad := fields["score"]; !bad && grade.FullMark > 0 && grade.Score > grade.FullMark {
		fields["score"] = "Score cannot exceed the full mark"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// SaveGrade validates and writes one grade, then re-reads the grade list so the caller shows
// what the backend now holds. A failed re-read is logged and leaves Book nil.
func (s *TeacherPortalService) SaveGrade(ctx context.Context, tokens apiclient.TokenSource, req SaveGradeRequest) (*GradeMutation, bool, error) {
	grade := req.Grade
	if fields := s.checkGrade(&grade); fields != nil {
		return nil, false, appErrors.Validation(fields)
	}

	value, replayed, err := s.guard.Do(req.IdempotencyKey, func() (interface{}, error) {
		if grade.ID == "" {
			return s.repo.AddGrade(ctx, tokens, grade)
		}
		return s.repo.UpdateGrade(ctx, tokens, grade)
	})
	if err != nil {
		return nil, false, err
	}
	mutation := &GradeMutation{Grade: value.(*models.TeacherGrade)}
	book, err := s.Grades(ctx, tokens, req.Filter)
	if err != nil {
		s.logger.Warn("failed to reload grades after save", zap.Error(err))
		return mutation, replayed, nil
	}
	mutation.Book = book
	return mutation, replayed, nil
}

// SaveGrades validates and posts one assessment for many students. Nothing is sent when any
// grade is invalid.
func (s *TeacherPortalService) SaveGrades(ctx context.Context, tokens apiclient.TokenSource, req BulkGradeRequest) (*models.BulkGradeResult, bool, error) {
	if len(req.Grades) == 0 {
		return nil, false, appErrors.Validation(map[string]string{"grades": "At least one student is required"})
	}
	grades := make([]models.TeacherGrade, len(req.Grades))
	fields := map[string]string{}
	for i, grade := range req.Grades {
		grade.ID = ""
		if grade.Subject == "" {
			grade.Subject = req.Subject
		}
		if grade.Section == "" {
			grade.Section = req.Section
		}
		if grade.Semester == "" {
			grade.Semester = req.Semester
		}
		if grade.GradeType == "" {
			grade.GradeType = req.GradeType
		}
		if grade.FullMark == 0 {
			grade.FullMark = req.FullMark
		}
		if grade.AcademicYear == "" {
			grade.AcademicYear = req.AcademicYear
		}
		for field, msg := range s.checkGrade(&grade) {
			fields[fmt.Sprintf("grades[%d].%s", i, field)] = msg
		}
		grades[i] = grade
	}
	if len(fields) > 0 {
		return nil, false, appErrors.Validation(fields)
	}

	value, replayed, err := s.guard.Do(req.IdempotencyKey, func() (interface{}, error) {
		return s.repo.AddGrades(ctx, tokens, grades)
	})
	if err != nil {
		return nil, false, err
	}
	result := value.(*models.BulkGradeResult)
	if result.Errors > 0 {
		s.logger.Warn("grades partially saved", zap.Int("created", result.Created), zap.Int("errors", result.Errors))
	}
	return result, replayed, nil
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Schedule returns the weekly timetable from Monday to Sunday. Days without lessons are left
// out; any day name the backend sends that is not a weekday comes last.
func (s *TeacherPortalService) Schedule(ctx context.Context, tokens apiclient.TokenSource) ([]models.ScheduleDay, error) {
	byDay, err := s.repo.Schedule(ctx, tokens)
	if err != nil {
		return nil, err
	}
	days := make([]models.ScheduleDay, 0, len(byDay))
	appendDay := func(day string) {
		lessons := byDay[day]
		if len(lessons) == 0 {
			return
		}
		sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].StartTime < lessons[j].StartTime })
		days = append(days, models.ScheduleDay{Day: day, Lessons: lessons})
		delete(byDay, day)
	}
	for _, day := range weekdays {
		appendDay(day)
	}
	rest := make([]string, 0, len(byDay))
	for day := range byDay {
		rest = append(rest, day)
	}
	sort.Strings(rest)
	for _, day := range rest {
		appendDay(day)
	}
	return days, nil
}

// Profile returns the teacher record of the logged-in user.
func (s *TeacherPortalService) Profile(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherProfile, error) {
	profile, err := s.repo.Profile(ctx, tokens)
	if err != nil {
		return nil, err
	}
	if profile.SubjectNames == nil {
		profile.SubjectNames = []string{}
	}
	return profile, nil
}
