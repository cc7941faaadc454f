package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	"github.com/noah-isme/eschool-portal/pkg/config"
)

type fakeActivityFetcher struct {
	payloads map[string]string
	features []string
}

func (f *fakeActivityFetcher) Fetch(_ context.Context, _ apiclient.TokenSource, feature string, dest interface{}) error {
	f.features = append(f.features, feature)
	return json.Unmarshal([]byte(f.payloads[feature]), dest)
}

func TestDisciplineFromFixtures(t *testing.T) {
	fetcher := &fakeActivityFetcher{}
	svc := NewActivityService(fetcher, nil, nil)

	page, err := svc.Discipline(context.Background(), noTokens{})
	require.NoError(t, err)
	assert.Equal(t, config.DataSourceMock, page.Source)
	assert.Equal(t, models.FeatureDiscipline, page.Feature)
	assert.Len(t, page.Data.Classes, 6)
	assert.Equal(t, models.DisciplineStats{TotalIncidents: 38, ResolvedCases: 24, PendingCases: 14, RepeatOffenders: 3}, page.Data.Stats)
	assert.Empty(t, fetcher.features)
}

func TestDisciplineLive(t *testing.T) {
	fetcher := &fakeActivityFetcher{payloads: map[string]string{
		models.FeatureDiscipline: `{"classes":[{"class":"Grade 9A","incidents":3,"resolved":1}],"repeat_offenders":1}`,
	}}
	svc := NewActivityService(fetcher, func(feature string) string {
		if feature == models.FeatureDiscipline {
			return config.DataSourceLive
		}
		return config.DataSourceMock
	}, nil)

	page, err := svc.Discipline(context.Background(), noTokens{})
	require.NoError(t, err)
	assert.Equal(t, config.DataSourceLive, page.Source)
	assert.Equal(t, 2, page.Data.Stats.PendingCases)
	assert.Equal(t, []string{models.FeatureDiscipline}, fetcher.features)

	training, err := svc.CapacityBuilding(context.Background(), noTokens{}, listing.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, config.DataSourceMock, training.Source)
}

func TestCapacityBuildingFilters(t *testing.T) {
	svc := NewActivityService(nil, nil, nil)

	page, err := svc.CapacityBuilding(context.Background(), noTokens{}, listing.Criteria{Selected: map[string]string{"status": "UPCOMING"}})
	require.NoError(t, err)
	require.Len(t, page.Data.Trainings, 2)
	assert.Equal(t, 12, page.Data.Trainings[0].SeatsLeft())

	page, err = svc.CapacityBuilding(context.Background(), noTokens{}, listing.Criteria{Search: "counsel"})
	require.NoError(t, err)
	require.Len(t, page.Data.Trainings, 1)
	assert.Zero(t, page.Data.Trainings[0].SeatsLeft())
}

func TestInfrastructureSelectAndSort(t *testing.T) {
	svc := NewActivityService(nil, nil, nil)

	page, err := svc.Infrastructure(context.Background(), noTokens{}, InfrastructureQuery{})
	require.NoError(t, err)
	assert.Equal(t, "North Wollo", page.Data.Zone)
	assert.Len(t, page.Data.Weredas, 4)

	page, err = svc.Infrastructure(context.Background(), noTokens{}, InfrastructureQuery{Wereda: "2", Sort: "students", Desc: true})
	require.NoError(t, err)
	require.Len(t, page.Data.Weredas, 1)
	schools := page.Data.Weredas[0].Schools
	require.Len(t, schools, 6)
	assert.Equal(t, "Kobo Preparatory", schools[0].Name)
	assert.Equal(t, "Raya Primary School", schools[5].Name)

	page, err = svc.Infrastructure(context.Background(), noTokens{}, InfrastructureQuery{
		Criteria: listing.Criteria{Selected: map[string]string{"status": "needs improvement"}},
	})
	require.NoError(t, err)
	total := 0
	for _, w := range page.Data.Weredas {
		total += len(w.Schools)
	}
	assert.Equal(t, 1, total)
}
