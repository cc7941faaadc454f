package service

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	"github.com/noah-isme/eschool-portal/pkg/config"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

//go:embed fixtures/*.json
var fixtures embed.FS

type activityFetcher interface {
	Fetch(ctx context.Context, tokens apiclient.TokenSource, feature string, dest interface{}) error
}

// SourceResolver reports the data source of a feature.
type SourceResolver func(feature string) string

// ActivityService serves the discipline, capacity building and infrastructure pages, each read
// either from embedded fixtures or from the live backend.
type ActivityService struct {
	fetcher activityFetcher
	source  SourceResolver
	logger  *zap.Logger
}

// NewActivityService constructs the service. A nil resolver reads every feature from fixtures.
func NewActivityService(fetcher activityFetcher, source SourceResolver, logger *zap.Logger) *ActivityService {
	if source == nil {
		source = func(string) string { return config.DataSourceMock }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{fetcher: fetcher, source: source, logger: logger}
}

func loadActivity[T any](ctx context.Context, s *ActivityService, tokens apiclient.TokenSource, feature string) (*models.ActivityPage[T], error) {
	page := &models.ActivityPage[T]{Feature: feature, Source: s.source(feature)}
	if page.Source == config.DataSourceLive && s.fetcher != nil {
		if err := s.fetcher.Fetch(ctx, tokens, feature, &page.Data); err != nil {
			return nil, err
		}
		return page, nil
	}
	page.Source = config.DataSourceMock
	raw, err := fixtures.ReadFile("fixtures/" + feature + ".json")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, fmt.Sprintf("no fixture for %s", feature))
	}
	if err := json.Unmarshal(raw, &page.Data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt fixture")
	}
	return page, nil
}

// Discipline returns the discipline report with stats derived from the class breakdown.
func (s *ActivityService) Discipline(ctx context.Context, tokens apiclient.TokenSource) (*models.ActivityPage[models.DisciplineReport], error) {
	page, err := loadActivity[models.DisciplineReport](ctx, s, tokens, models.FeatureDiscipline)
	if err != nil {
		return nil, err
	}
	page.Data.ComputeStats()
	return page, nil
}

var trainingListing = listing.Spec[models.Training]{
	SearchFields: []func(models.Training) string{
		func(t models.Training) string { return t.Title },
		func(t models.Training) string { return t.Category },
		func(t models.Training) string { return t.Facilitator },
	},
	Dropdowns: map[string]listing.Dropdown[models.Training]{
		"status":   {Value: func(t models.Training) string { return t.Status }, FoldCase: true},
		"category": {Value: func(t models.Training) string { return t.Category }},
	},
}

// CapacityBuilding returns the trainings matching criteria.
func (s *ActivityService) CapacityBuilding(ctx context.Context, tokens apiclient.TokenSource, criteria listing.Criteria) (*models.ActivityPage[models.CapacityBuildingReport], error) {
	page, err := loadActivity[models.CapacityBuildingReport](ctx, s, tokens, models.FeatureCapacityBuilding)
	if err != nil {
		return nil, err
	}
	page.Data.Trainings = trainingListing.Apply(page.Data.Trainings, criteria)
	return page, nil
}

var infrastructureListing = listing.Spec[models.InfrastructureSchool]{
	SearchFields: []func(models.InfrastructureSchool) string{
		func(s models.InfrastructureSchool) string { return s.Name },
	},
	Dropdowns: map[string]listing.Dropdown[models.InfrastructureSchool]{
		"status": {Value: func(s models.InfrastructureSchool) string { return s.Status }, FoldCase: true},
	},
	Columns: map[string]func(models.InfrastructureSchool) string{
		"name":       func(s models.InfrastructureSchool) string { return s.Name },
		"students":   func(s models.InfrastructureSchool) string { return strconv.Itoa(s.Students) },
		"classrooms": func(s models.InfrastructureSchool) string { return strconv.Itoa(s.Classrooms) },
		"labs":       func(s models.InfrastructureSchool) string { return strconv.Itoa(s.Labs) },
		"status":     func(s models.InfrastructureSchool) string { return s.Status },
	},
}

// InfrastructureQuery narrows the infrastructure page to one wereda and sorts its schools.
type InfrastructureQuery struct {
	Wereda   models.ID
	Criteria listing.Criteria
	Sort     string
	Desc     bool
}

// Infrastructure returns the zone's facility snapshot. Schools of every wereda are filtered and
// sorted; a selected wereda drops the others.
func (s *ActivityService) Infrastructure(ctx context.Context, tokens apiclient.TokenSource, q InfrastructureQuery) (*models.ActivityPage[models.InfrastructureReport], error) {
	page, err := loadActivity[models.InfrastructureReport](ctx, s, tokens, models.FeatureInfrastructure)
	if err != nil {
		return nil, err
	}
	weredas := page.Data.Weredas[:0:0]
	for _, w := range page.Data.Weredas {
		if q.Wereda != "" && w.ID != q.Wereda {
			continue
		}
		w.Schools = infrastructureListing.Apply(w.Schools, q.Criteria)
		if q.Sort != "" {
			infrastructureListing.SortBy(w.Schools, q.Sort, q.Desc)
		}
		weredas = append(weredas, w)
	}
	page.Data.Weredas = weredas
	return page, nil
}
