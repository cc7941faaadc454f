package service

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/eschool-portal/internal/academics"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type collectionLister[T any] interface {
	List(ctx context.Context, tokens apiclient.TokenSource, query url.Values) ([]T, error)
}

type studentOverviewSource interface {
	Grades(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*GradesView, error)
	Attendance(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*AttendanceView, error)
	Subjects(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) ([]models.Subject, error)
	Library(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*models.LibraryResponse, error)
	Summary(ctx context.Context, tokens apiclient.TokenSource, userID models.ID, q models.StudentQuery) (*models.AcademicSummary, error)
}

type teacherDashboardSource interface {
	Dashboard(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherDashboard, error)
}

// DashboardSources are the collections and portals a dashboard is composed from. Any may be nil.
type DashboardSources struct {
	Weredas   collectionLister[models.Wereda]
	Schools   collectionLister[models.School]
	Students  collectionLister[models.Student]
	Employees collectionLister[models.Employee]
	Student   studentOverviewSource
	Teacher   teacherDashboardSource
}

// DashboardService composes the role landing page.
type DashboardService struct {
	src    DashboardSources
	logger *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(src DashboardSources, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{src: src, logger: logger}
}

// Build returns the dashboard of user. Office and school roles get live totals, students their
// academic overview and teachers their dashboard summary.
func (s *DashboardService) Build(ctx context.Context, tokens apiclient.TokenSource, user *models.UserProfile) (*models.Dashboard, error) {
	if user == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	dash := &models.Dashboard{User: user, Config: models.DashboardFor(user.Role)}

	var err error
	switch {
	case user.Role.IsOffice() || user.Role == models.RoleSchool:
		dash.Office, err = s.OfficeTotals(ctx, tokens)
	case user.Role == models.RoleStudent:
		dash.Student, err = s.StudentOverview(ctx, tokens, user.ID)
	case user.Role == models.RoleTeacher && s.src.Teacher != nil:
		dash.Teacher, err = s.src.Teacher.Dashboard(ctx, tokens)
		if err != nil && !fatal(err) {
			s.logger.Warn("teacher dashboard unavailable", zap.Error(err))
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}
	return dash, nil
}

// fatal reports errors that must surface instead of degrading a dashboard tile.
func fatal(err error) bool {
	return errors.Is(err, appErrors.ErrUnauthenticated) ||
		errors.Is(err, appErrors.ErrAuthenticationFailed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func countOf[T any](ctx context.Context, tokens apiclient.TokenSource, lister collectionLister[T]) ([]T, error) {
	if lister == nil {
		return nil, nil
	}
	return lister.List(ctx, tokens, nil)
}

// OfficeTotals fetches the four collections concurrently. A collection the user may not read
// counts as zero; authentication failures abort the whole dashboard.
func (s *DashboardService) OfficeTotals(ctx context.Context, tokens apiclient.TokenSource) (*models.OfficeTotals, error) {
	var (
		mu     sync.Mutex
		totals models.OfficeTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	tile := func(name string, fetch func() (int, error)) {
		g.Go(func() error {
			n, err := fetch()
			if err != nil {
				if fatal(err) {
					return err
				}
				s.logger.Warn("dashboard total unavailable", zap.String("collection", name), zap.Error(err))
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			switch name {
			case "weredas":
				totals.Weredas = n
			case "schools":
				totals.Schools = n
			case "students":
				totals.Students = n
			case "teachers":
				totals.Teachers = n
			}
			return nil
		})
	}

	tile("weredas", func() (int, error) {
		items, err := countOf(gctx, tokens, s.src.Weredas)
		return len(items), err
	})
	tile("schools", func() (int, error) {
		items, err := countOf(gctx, tokens, s.src.Schools)
		return len(items), err
	})
	tile("students", func() (int, error) {
		items, err := countOf(gctx, tokens, s.src.Students)
		return len(items), err
	})
	tile("teachers", func() (int, error) {
		items, err := countOf(gctx, tokens, s.src.Employees)
		return models.ComputeEmployeeStats(items).Teachers, err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &totals, nil
}

// StudentOverview derives the student's headline figures from the self-service endpoints.
func (s *DashboardService) StudentOverview(ctx context.Context, tokens apiclient.TokenSource, userID models.ID) (*models.StudentOverview, error) {
	src := s.src.Student
	if src == nil {
		return &models.StudentOverview{}, nil
	}
	var (
		grades     *GradesView
		attendance *AttendanceView
		subjects   []models.Subject
		library    *models.LibraryResponse
		summary    *models.AcademicSummary
	)
	q := models.StudentQuery{}
	g, gctx := errgroup.WithContext(ctx)
	soft := func(name string, err error) error {
		if err == nil || fatal(err) {
			return err
		}
		s.logger.Warn("student overview tile unavailable", zap.String("tile", name), zap.Error(err))
		return nil
	}
	g.Go(func() (err error) {
		grades, err = src.Grades(gctx, tokens, userID, q)
		return soft("grades", err)
	})
	g.Go(func() (err error) {
		attendance, err = src.Attendance(gctx, tokens, userID, q)
		return soft("attendance", err)
	})
	g.Go(func() (err error) {
		subjects, err = src.Subjects(gctx, tokens, userID, q)
		return soft("subjects", err)
	})
	g.Go(func() (err error) {
		library, err = src.Library(gctx, tokens, userID, q)
		return soft("library", err)
	})
	g.Go(func() (err error) {
		summary, err = src.Summary(gctx, tokens, userID, q)
		return soft("summary", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &models.StudentOverview{GPAStatus: academics.GPAStatus(0)}
	if summary != nil {
		overview.StudentInfo = summary.StudentInfo
	}
	if grades != nil {
		overview.GPA = grades.Report.GPA
		overview.GPAStatus = grades.Report.Status
	}
	if attendance != nil {
		overview.AttendancePercentage = attendance.Summary.Percentage
		overview.AttendanceStatus = attendance.Summary.Status
		overview.LowAttendance = attendance.Summary.LowAttendance
	} else {
		overview.AttendanceStatus = academics.AttendanceBucket(0)
	}
	overview.SubjectCount = distinctSubjects(subjects, grades)
	if library != nil {
		overview.BorrowedBooks, overview.OverdueBooks = library.Borrowed()
	}
	return overview, nil
}

// distinctSubjects counts enrolled subjects, falling back to subjects seen in grades.
func distinctSubjects(subjects []models.Subject, grades *GradesView) int {
	seen := make(map[string]struct{})
	for _, subj := range subjects {
		seen[subj.Name] = struct{}{}
	}
	if len(seen) == 0 && grades != nil {
		for _, avg := range grades.Report.Subjects {
			seen[avg.Subject] = struct{}{}
		}
	}
	return len(seen)
}
