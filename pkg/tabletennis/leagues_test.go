package tabletennis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinshot/tabletennis-client/internal/testutil"
	"github.com/spinshot/tabletennis-client/pkg/client"
)

func TestLeaguesList(t *testing.T) {
	api, mock := newTestAPI(t)

	mock.SetResponse("/v1/league", testutil.NewSuccessResponse(testutil.EnvelopeBody(
		[]string{
			testutil.LeagueRecord("29097", "TT Elite Series", "pl", 1, 1),
			testutil.LeagueRecord("22806", "TT Cup", "cz", 0, 0),
		}, 1, 100, 2)))

	page, err := api.Leagues.List(context.Background(), LeagueListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "TT Elite Series", page.Results[0].Name)
	assert.True(t, page.Results[0].SupportsStandings())
	assert.False(t, page.Results[1].SupportsRankings())
	require.NotNil(t, page.Pager)
	assert.Equal(t, 2, page.Pager.Total.Int())
}

func TestLeaguesListLowercasesCountryCode(t *testing.T) {
	api, mock := newTestAPI(t)

	_, err := api.Leagues.List(context.Background(), LeagueListOptions{CC: "CZ"})
	require.NoError(t, err)
	assert.Equal(t, "cz", mock.GetLastQuery().Get("cc"))
}

func TestLeaguesListAll(t *testing.T) {
	api, mock := newTestAPI(t)

	records := make([]string, 150)
	for i := range records {
		records[i] = testutil.LeagueRecord(fmt.Sprintf("%d", i), fmt.Sprintf("League %d", i), "cz", 0, 0)
	}
	mock.SetPaginated("/v1/league", records, nil)

	leagues, err := api.Leagues.ListAll(context.Background(), LeagueAggregateOptions{PerPage: 100})
	require.NoError(t, err)
	assert.Len(t, leagues, 150)
	assert.Equal(t, 2, mock.GetRequestCount())
}

func TestLeaguesTable(t *testing.T) {
	api, mock := newTestAPI(t)

	mock.SetResponse("/v1/league/table", testutil.NewSuccessResponse(
		`{"success":1,"results":[{"pos":"1","team":"Kubik M","points":"42"}]}`))

	rows, err := api.Leagues.Table(context.Background(), "29097")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/v1/league/table", mock.GetLastPath())
	assert.Equal(t, "29097", mock.GetLastQuery().Get("league_id"))
}

func TestLeaguesTopList(t *testing.T) {
	api, mock := newTestAPI(t)

	mock.SetResponse("/v1/league/toplist", testutil.NewSuccessResponse(
		`{"success":1,"results":[{"rank":"1","name":"Vaclav Hruska Snr"}]}`))

	rows, err := api.Leagues.TopList(context.Background(), "29097")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "/v1/league/toplist", mock.GetLastPath())
}

func TestLeaguesLookupRequiresID(t *testing.T) {
	api, mock := newTestAPI(t)

	_, err := api.Leagues.Table(context.Background(), "")
	assert.Equal(t, client.KindInvalidArgument, client.KindOf(err))

	_, err = api.Leagues.TopList(context.Background(), "")
	assert.Equal(t, client.KindInvalidArgument, client.KindOf(err))

	assert.Zero(t, mock.GetRequestCount())
}
