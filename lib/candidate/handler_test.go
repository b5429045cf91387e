package candidatehandler

import (
	"sync"
	"testing"

	"talentflow-backend/db/dbtest"
	"talentflow-backend/lib/query"
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"
	wsmodels "talentflow-backend/models/ws"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []wsmodels.ServerMessage
}

func (r *recordingNotifier) SendMessage(msg wsmodels.ServerMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func TestCandidateHandler(t *testing.T) {
	notifier := &recordingNotifier{}
	handler := NewInstance(dbtest.New(t), notifier)

	created := []candidateapimodels.CandidateView{}
	t.Run(`create assigns id`, func(t *testing.T) {
		data := []candidateapimodels.CandidateData{
			{Name: " Anna Ivanova ", Email: "anna@example.com", JobID: 1, Stage: models.CandidateStageApplied},
			{Name: "Boris Petrov", Email: "boris@example.com", JobID: 1, Stage: models.CandidateStageScreen},
			{Name: "Vera Sidorova", Email: "vera@example.com", JobID: 2, Stage: models.CandidateStageApplied},
		}
		for _, item := range data {
			view, err := handler.Create(item)
			require.NoError(t, err)
			require.NotEmpty(t, view.ID)
			created = append(created, view)
		}
		require.Equal(t, "Anna Ivanova", created[0].Name)
		require.NotEqual(t, created[0].ID, created[1].ID)
		require.Len(t, notifier.messages, 3)
		require.Equal(t, wsmodels.CodeCandidateCreated, notifier.messages[0].Code)
	})

	t.Run(`list with stage filter and search`, func(t *testing.T) {
		page, err := handler.List(query.Request{Page: 1, Limit: DefaultLimit, Status: "applied"}, 0)
		require.NoError(t, err)
		require.Len(t, page.Data, 2)

		page, err = handler.List(query.Request{Page: 1, Limit: DefaultLimit, Search: "BORIS@"}, 0)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, created[1].ID, page.Data[0].ID)

		page, err = handler.List(query.Request{Page: 1, Limit: DefaultLimit}, 2)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
	})

	t.Run(`board partitions by stage`, func(t *testing.T) {
		board, err := handler.Board(1)
		require.NoError(t, err)
		require.Equal(t, 1, board.JobID)
		require.Len(t, board.Columns, len(models.CandidateStages))
		require.Len(t, board.Columns[0].Candidates, 1)
		require.Len(t, board.Columns[1].Candidates, 1)
	})

	t.Run(`patch stage`, func(t *testing.T) {
		stage := models.CandidateStageHired
		view, err := handler.PatchStage(created[0].ID, candidateapimodels.StagePatch{Stage: &stage})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStageHired, view.Stage)
		last := notifier.messages[len(notifier.messages)-1]
		require.Equal(t, wsmodels.CodeCandidateStageChanged, last.Code)
		require.Equal(t, 1, last.JobID)
		require.Equal(t, "hired", last.Stage)

		view, err = handler.PatchStage(created[0].ID, candidateapimodels.StagePatch{})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStageHired, view.Stage)

		_, err = handler.PatchStage("missing", candidateapimodels.StagePatch{Stage: &stage})
		require.True(t, errors.Is(err, models.ErrNotFound))
	})

	t.Run(`any to any transition`, func(t *testing.T) {
		stage := models.CandidateStageApplied
		view, err := handler.PatchStage(created[0].ID, candidateapimodels.StagePatch{Stage: &stage})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStageApplied, view.Stage)
	})

	t.Run(`delete twice yields not found`, func(t *testing.T) {
		require.NoError(t, handler.Delete(created[2].ID))
		require.True(t, errors.Is(handler.Delete(created[2].ID), models.ErrNotFound))
		require.True(t, errors.Is(handler.Delete(created[2].ID), models.ErrNotFound))
		last := notifier.messages[len(notifier.messages)-1]
		require.Equal(t, wsmodels.CodeCandidateDeleted, last.Code)
	})
}
