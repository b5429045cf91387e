package apiv1

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"talentflow-backend/lib/apiclient"
	"talentflow-backend/lib/pipeline"
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"

	"github.com/stretchr/testify/require"
)

func TestBoardAgainstApi(t *testing.T) {
	initHandlers(t)
	app := newTestApp()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	var moved, removed candidateapimodels.CandidateView
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/candidates", candidateapimodels.CandidateData{
		Name: "Ann Lee", Email: "ann@example.com", JobID: 9, Stage: models.CandidateStageApplied,
	}, &moved))
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/candidates", candidateapimodels.CandidateData{
		Name: "Bob Stone", Email: "bob@example.com", JobID: 9, Stage: models.CandidateStageScreen,
	}, &removed))

	ctx := context.Background()
	client := apiclient.NewProvider("http://"+ln.Addr().String()+"/api/v1", 2*time.Second)
	board := pipeline.NewBoard(9, client, pipeline.WithPolicy(pipeline.PolicyRollback))
	defer board.Close()

	require.Eventually(t, func() bool {
		return board.Load(ctx) == nil && len(board.Columns()[0].Candidates) == 1
	}, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, board.DragStart(moved.ID))
	ok, err := board.Drop(ctx, models.CandidateStageTech)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, board.Remove(ctx, removed.ID))
	board.Wait()

	var server candidateapimodels.BoardView
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs/9/board", nil, &server))
	for _, column := range server.Columns {
		if column.Stage == models.CandidateStageTech {
			require.Len(t, column.Candidates, 1)
			require.Equal(t, moved.ID, column.Candidates[0].ID)
			continue
		}
		require.Empty(t, column.Candidates)
	}
	for idx, column := range board.Columns() {
		require.Equal(t, server.Columns[idx].Stage, column.Stage)
		require.Len(t, column.Candidates, len(server.Columns[idx].Candidates))
	}
}
