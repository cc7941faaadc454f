package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/academics"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/export"
)

type studentSelfRepository interface {
	Profile(ctx context.Context, tokens apiclient.TokenSource) (*models.Student, error)
	UpdateProfile(ctx context.Context, tokens apiclient.TokenSource, patch map[string]interface{}) (*models.Student, error)
	Grades(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) ([]models.GradeRecord, error)
	Attendance(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) (*models.AttendanceResponse, error)
	Subjects(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) ([]models.Subject, error)
	Library(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) (*models.LibraryResponse, error)
	Summary(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) (*models.AcademicSummary, error)
}

// GradesView is the grades page: raw records plus the derived report.
type GradesView struct {
	Records []models.GradeRecord  `json:"records"`
	Report  academics.GradeReport `json:"report"`
	Query   models.StudentQuery   `json:"query"`
	Cached  bool                  `json:"cached"`
}

// AttendanceView is the attendance page.
type AttendanceView struct {
	Records    []models.AttendanceRecord    `json:"records"`
	Summary    academics.AttendanceSummary  `json:"summary"`
	Statistics *models.AttendanceStatistics `json:"statistics,omitempty"`
	Query      models.StudentQuery          `json:"query"`
	Cached     bool                         `json:"cached"`
}

// StudentPortalService serves the logged-in student's own records. Reads are cached per user
// and dropped when the user's session is cleared.
type StudentPortalService struct {
	repo   studentSelfRepository
	cache  *CacheService
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewStudentPortalService constructs the service. cache may be nil.
func NewStudentPortalService(repo studentSelfRepository, cache *CacheService, logger *zap.Logger) *StudentPortalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentPortalService{repo: repo, cache: cache, pdf: export.NewPDFExporter(), logger: logger}
}

// OnSessionEvent is a session.Observer dropping the cached reads of a user who logged out.
func (s *StudentPortalService) OnSessionEvent(ev session.Event) {
	if ev.Kind != session.EventCleared || ev.UserID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.InvalidateUser(ctx, ev.UserID.String()); err != nil {
		s.logger.Warn("failed to drop cached student reads", zap.String("user_id", ev.UserID.String()), zap.Error(err))
	}
}

func queryKey(q models.StudentQuery) string {
	values := url.Values{}
	for k, v := range q.Params() {
		values.Set(k, v)
	}
	return values.Encode()
}

// Profile returns the student's record.
func (s *StudentPortalService) Profile(ctx context.Context, tokens apiclient.TokenSource, userID models.ID) (*models.Student, error) {
	student, _, err := Remember(ctx, s.cache, UserKey(userID.String(), "profile"), func(ctx context.Context) (*models.Student, error) {
		return s.repo.Profile(ctx, tokens)
	})
	return student, err
}

// UpdateProfile patches the editable contact fields and drops the cached profile.
func (s *StudentPortalService) UpdateProfile(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, patch map[string]interface{}) (*models.Student, error) {
	if len(patch) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}
	student, err := s.repo.UpdateProfile(ctx, tokens, patch)
	if err != nil {
		return nil, err
	}
	_ = s.cache.InvalidateUser(ctx, userID.String())
	return student, nil
}

func (s *StudentPortalService) subjects(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) ([]models.Subject, bool, error) {
	return Remember(ctx, s.cache, UserKey(userID.String(), "subjects", queryKey(q)), func(ctx context.Context) ([]models.Subject, error) {
		return s.repo.Subjects(ctx, tokens, q)
	})
}

// Subjects returns the enrolled subjects.
func (s *StudentPortalService) Subjects(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) ([]models.Subject, error) {
	subjects, _, err := s.subjects(ctx, tokens, userID, q)
	return subjects, err
}

// Credits maps subject names to credit hours. Subjects without hours are left out so the
// default applies.
func Credits(subjects []models.Subject) map[string]float64 {
	credits := make(map[string]float64, len(subjects))
	for _, subj := range subjects {
		if subj.CreditHours > 0 {
			credits[subj.Name] = float64(subj.CreditHours)
		}
	}
	return credits
}

// Grades returns the grade records and the derived GPA report. Credit hours come from the
// subjects endpoint; when it fails every subject counts DefaultCredits.
func (s *StudentPortalService) Grades(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*GradesView, error) {
	records, cached, err := Remember(ctx, s.cache, UserKey(userID.String(), "grades", queryKey(q)), func(ctx context.Context) ([]models.GradeRecord, error) {
		return s.repo.Grades(ctx, tokens, q)
	})
	if err != nil {
		return nil, err
	}
	subjects, _, err := s.subjects(ctx, tokens, userID, models.StudentQuery{})
	if err != nil {
		s.logger.Warn("credit hours unavailable, using defaults", zap.Error(err))
	}
	if records == nil {
		records = []models.GradeRecord{}
	}
	return &GradesView{
		Records: records,
		Report:  academics.BuildGradeReport(records, Credits(subjects)),
		Query:   q,
		Cached:  cached,
	}, nil
}

// Attendance returns attendance records with the derived summary.
func (s *StudentPortalService) Attendance(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*AttendanceView, error) {
	resp, cached, err := Remember(ctx, s.cache, UserKey(userID.String(), "attendance", queryKey(q)), func(ctx context.Context) (*models.AttendanceResponse, error) {
		return s.repo.Attendance(ctx, tokens, q)
	})
	if err != nil {
		return nil, err
	}
	records := resp.Attendance
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return &AttendanceView{
		Records:    records,
		Summary:    academics.SummarizeAttendance(records),
		Statistics: resp.Statistics,
		Query:      q,
		Cached:     cached,
	}, nil
}

// Library returns the borrowing history.
func (s *StudentPortalService) Library(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*models.LibraryResponse, error) {
	lib, _, err := Remember(ctx, s.cache, UserKey(userID.String(), "library", queryKey(q)), func(ctx context.Context) (*models.LibraryResponse, error) {
		return s.repo.Library(ctx, tokens, q)
	})
	return lib, err
}

// Summary returns the server-computed academic summary.
func (s *StudentPortalService) Summary(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*models.AcademicSummary, error) {
	summary, _, err := Remember(ctx, s.cache, UserKey(userID.String(), "summary", queryKey(q)), func(ctx context.Context) (*models.AcademicSummary, error) {
		return s.repo.Summary(ctx, tokens, q)
	})
	return summary, err
}

// Transcript renders the grades report as a PDF.
func (s *StudentPortalService) Transcript(ctx context.Context, tokens apiclient.TokenSource, user *models.UserProfile, q models.StudentQuery) (*export.File, error) {
	view, err := s.Grades(ctx, tokens, user.ID, q)
	if err != nil {
		return nil, err
	}
	report := view.Report

	identity := [][2]string{{"Name", models.OrNA(user.FullName())}, {"Username", models.OrNA(user.Username)}}
	if profile, err := s.Profile(ctx, tokens, user.ID); err == nil && profile != nil {
		identity = append(identity,
			[2]string{"Admission No", models.OrNA(profile.AdmissionNo)},
			[2]string{"Class Section", models.OrNA(profile.ClassSection)})
	}
	summary := [][2]string{
		{"GPA", fmt.Sprintf("%.2f (%s)", report.GPA, report.Status.Label)},
		{"CGPA", fmt.Sprintf("%.2f", report.CGPA)},
		{"Total Credits", strconv.FormatFloat(report.TotalCredits, 'f', -1, 64)},
	}
	if q.Semester != "" {
		summary = append(summary, [2]string{"Semester", q.Semester})
	}
	if q.AcademicYear != "" {
		summary = append(summary, [2]string{"Academic Year", q.AcademicYear})
	}

	semesters := export.Table([]export.Column[academics.SemesterGPA]{
		{Header: "Semester", Value: func(g academics.SemesterGPA) string { return g.Semester }},
		{Header: "GPA", Value: func(g academics.SemesterGPA) string { return fmt.Sprintf("%.2f", g.GPA) }},
		{Header: "Subjects", Value: func(g academics.SemesterGPA) string { return strconv.Itoa(g.SubjectCount) }},
		{Header: "Assessments", Value: func(g academics.SemesterGPA) string { return strconv.Itoa(g.RecordCount) }},
	}, report.Semesters)
	subjects := export.Table([]export.Column[academics.SubjectAverage]{
		{Header: "Subject", Value: func(a academics.SubjectAverage) string { return a.Subject }},
		{Header: "Average %", Value: func(a academics.SubjectAverage) string { return fmt.Sprintf("%.2f", a.Average) }},
		{Header: "Grade", Value: func(a academics.SubjectAverage) string { return a.Letter }},
		{Header: "Points", Value: func(a academics.SubjectAverage) string { return fmt.Sprintf("%.1f", a.Points) }},
	}, report.Subjects)

	body, err := s.pdf.RenderTranscript(export.Transcript{
		Student:   identity,
		Summary:   summary,
		Semesters: semesters,
		Subjects:  subjects,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	name := "transcript.pdf"
	if user.Username != "" {
		name = "transcript_" + user.Username + ".pdf"
	}
	return &export.File{Filename: name, ContentType: export.ContentTypePDF, Data: body}, nil
}
