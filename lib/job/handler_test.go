package jobhandler

import (
	"context"
	"sync"
	"testing"

	"talentflow-backend/db/dbtest"
	"talentflow-backend/lib/query"
	"talentflow-backend/models"
	jobapimodels "talentflow-backend/models/api/job"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestJobHandler(t *testing.T) {
	ctx := context.Background()
	handler := NewInstance(dbtest.New(t))

	var first jobapimodels.JobView

	t.Run(`create derives slug and order`, func(t *testing.T) {
		item, hMsg, err := handler.Create(ctx, jobapimodels.JobData{Title: "Senior Backend Engineer", Tags: []string{"backend"}})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "senior-backend-engineer", item.Slug)
		require.Equal(t, models.JobStatusActive, item.Status)
		require.Equal(t, 1, item.Order)
		require.False(t, item.CreatedAt.IsZero())
		first = item

		second, hMsg, err := handler.Create(ctx, jobapimodels.JobData{Title: "Product Designer", Status: models.JobStatusArchived})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 2, second.Order)
		require.Equal(t, []string{}, second.Tags)
	})

	t.Run(`duplicate slug rejected`, func(t *testing.T) {
		_, hMsg, err := handler.Create(ctx, jobapimodels.JobData{Title: "Senior Backend Engineer"})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		_, hMsg, err = handler.Create(ctx, jobapimodels.JobData{Title: "Other", Slug: "product-designer"})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`update partial`, func(t *testing.T) {
		title := "Staff Backend Engineer"
		tags := []string{"backend", "fullstack"}
		item, hMsg, err := handler.Update(ctx, first.ID, jobapimodels.JobUpdate{Title: &title, Tags: &tags})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, title, item.Title)
		require.Equal(t, "senior-backend-engineer", item.Slug)
		require.Equal(t, tags, item.Tags)
		require.False(t, item.UpdatedAt.Before(first.UpdatedAt))

		slug := "product-designer"
		_, hMsg, err = handler.Update(ctx, first.ID, jobapimodels.JobUpdate{Slug: &slug})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		_, _, err = handler.Update(ctx, 999, jobapimodels.JobUpdate{Title: &title})
		require.True(t, errors.Is(err, models.ErrNotFound))
	})

	t.Run(`toggle status twice`, func(t *testing.T) {
		item, err := handler.ToggleStatus(first.ID)
		require.NoError(t, err)
		require.Equal(t, models.JobStatusArchived, item.Status)
		item, err = handler.ToggleStatus(first.ID)
		require.NoError(t, err)
		require.Equal(t, models.JobStatusActive, item.Status)
	})

	t.Run(`list with filters`, func(t *testing.T) {
		page, err := handler.List(query.Request{Page: 1, Limit: 10, Status: "archived"})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, "product-designer", page.Data[0].Slug)

		page, err = handler.List(query.Request{Page: 1, Limit: 10, Tags: []string{"fullstack", "react"}})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, first.ID, page.Data[0].ID)

		count, err := handler.Count()
		require.NoError(t, err)
		require.Equal(t, int64(2), count)
	})

	t.Run(`reorder`, func(t *testing.T) {
		page, err := handler.List(query.Request{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		items := []jobapimodels.ReorderItem{
			{ID: page.Data[0].ID, Order: 2},
			{ID: page.Data[1].ID, Order: 1},
		}
		require.NoError(t, handler.Reorder(items))
		reordered, err := handler.List(query.Request{Page: 1, Limit: 10, SortBy: "order"})
		require.NoError(t, err)
		require.Equal(t, page.Data[1].ID, reordered.Data[0].ID)

		err = handler.Reorder([]jobapimodels.ReorderItem{{ID: 999, Order: 1}})
		require.True(t, errors.Is(err, models.ErrNotFound))
	})

	t.Run(`delete twice yields not found`, func(t *testing.T) {
		require.NoError(t, handler.Delete(first.ID))
		err := handler.Delete(first.ID)
		require.True(t, errors.Is(err, models.ErrNotFound))
		err = handler.Delete(first.ID)
		require.True(t, errors.Is(err, models.ErrNotFound))
		_, err = handler.GetByID(first.ID)
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}

func TestJobToggleStatusConcurrent(t *testing.T) {
	conn := dbtest.New(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	handler := NewInstance(conn)

	item, _, err := handler.Create(context.Background(), jobapimodels.JobData{Title: "Data Engineer"})
	require.NoError(t, err)

	const toggles = 8
	errs := make(chan error, toggles)
	var wg sync.WaitGroup
	for n := 0; n < toggles; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.ToggleStatus(item.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	t.Run(`even number of toggles keeps status`, func(t *testing.T) {
		got, err := handler.GetByID(item.ID)
		require.NoError(t, err)
		require.Equal(t, models.JobStatusActive, got.Status)
	})
}
