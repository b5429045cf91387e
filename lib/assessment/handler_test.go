package assessmenthandler

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"talentflow-backend/db/dbtest"
	"talentflow-backend/models"
	assessmentapimodels "talentflow-backend/models/api/assessment"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memoryStorage) UploadFile(ctx context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[key] = body
	return nil
}

func (m *memoryStorage) GetFile(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.files[key]
	if !ok {
		return nil, models.NotFound("файл не найден")
	}
	return body, nil
}

func (m *memoryStorage) MakeBucket(ctx context.Context) error {
	return nil
}

const testDocument = `{"jobId":"5","title":"Frontend","sections":[{"id":"s1","title":"General Questions","questions":[{"id":"q1","type":"short","label":"What is your name?","required":true}]}]}`

func TestAssessmentHandler(t *testing.T) {
	storage := &memoryStorage{}
	handler := NewInstance(dbtest.New(t), "/published/", storage)

	var id string
	t.Run(`create stores document verbatim`, func(t *testing.T) {
		var err error
		id, err = handler.Create(assessmentapimodels.AssessmentData{JobID: 5, Data: json.RawMessage(testDocument)})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, 5, view.JobID)
		require.False(t, view.Published)
		require.JSONEq(t, testDocument, string(view.Data))

		list, err := handler.ListByJob(5)
		require.NoError(t, err)
		require.Len(t, list, 1)
		list, err = handler.ListByJob(6)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run(`document is parsed`, func(t *testing.T) {
		doc, err := handler.GetDocument(id)
		require.NoError(t, err)
		require.Equal(t, "Frontend", doc.Title)
		require.Equal(t, 1, doc.QuestionCount())
	})

	t.Run(`publish toggles link`, func(t *testing.T) {
		_, err := handler.PublicGet(id)
		require.True(t, errors.Is(err, models.ErrNotFound))

		view, err := handler.TogglePublish(id)
		require.NoError(t, err)
		require.True(t, view.Published)
		require.NotNil(t, view.Link)
		require.Equal(t, "/published/"+id, *view.Link)

		public, err := handler.PublicGet(id)
		require.NoError(t, err)
		require.Equal(t, id, public.ID)

		view, err = handler.TogglePublish(id)
		require.NoError(t, err)
		require.False(t, view.Published)
		require.Nil(t, view.Link)
	})

	t.Run(`update replaces document`, func(t *testing.T) {
		updated := strings.Replace(testDocument, "Frontend", "Backend", 1)
		view, err := handler.Update(id, assessmentapimodels.AssessmentUpdate{Data: json.RawMessage(updated)})
		require.NoError(t, err)
		require.JSONEq(t, updated, string(view.Data))

		view, err = handler.Get(id)
		require.NoError(t, err)
		require.JSONEq(t, updated, string(view.Data))
	})

	t.Run(`pdf export and archive`, func(t *testing.T) {
		body, name, err := handler.ExportPDF(id)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
		require.Equal(t, "assessment_"+id+".pdf", name)

		archive, err := handler.ArchivePDF(context.Background(), id)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(archive.Key, "assessments/"+id+"/"))
		stored, err := storage.GetFile(context.Background(), archive.Key)
		require.NoError(t, err)
		require.Equal(t, body[:5], stored[:5])
	})

	t.Run(`archive without storage`, func(t *testing.T) {
		_, err := NewInstance(dbtest.New(t), "/published/", nil).ArchivePDF(context.Background(), id)
		require.True(t, errors.Is(err, models.ErrNotConfigured))
	})

	t.Run(`delete`, func(t *testing.T) {
		require.NoError(t, handler.Delete(id))
		_, err := handler.Get(id)
		require.True(t, errors.Is(err, models.ErrNotFound))
		require.True(t, errors.Is(handler.Delete(id), models.ErrNotFound))
		_, err = handler.TogglePublish(id)
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}
