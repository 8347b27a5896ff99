package designer_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailforge/designer/pkg/designer"
)

func newService(t *testing.T) (*designer.Service, *designer.MemoryVersionStore) {
	t.Helper()
	versions := designer.NewMemoryVersionStore()
	return designer.NewService(designer.NewMemoryTemplateStore(), versions), versions
}

func intPtr(v int) *int { return &v }

func TestService_SaveCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	created, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
		ReferenceID: intPtr(1),
		Name:        "welcome",
		Subject:     "Welcome!",
		BodyHTML:    "<p>hi</p>",
	}, "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "welcome", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	// Creation snapshots the initial state as version 1.
	history, err := svc.Versioning().History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].VersionNumber)
	assert.Equal(t, "alice", history[0].ChangedBy)
	assert.Contains(t, history[0].ChangesSummary.Changed, "name")
}

func TestService_SaveUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	created, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
		Name: "welcome", Subject: "Welcome!",
	}, "alice")
	require.NoError(t, err)

	updated, err := svc.Save(ctx, created.ID, designer.SaveTemplateInput{
		Name: "welcome", Subject: "Welcome aboard!",
	}, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard!", updated.Subject)
	assert.Equal(t, created.ID, updated.ID)

	history, err := svc.Versioning().History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"subject"}, history[0].ChangesSummary.Changed)
	assert.Equal(t, "bob", history[0].ChangedBy)
}

func TestService_Save_ReferenceIDValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	tests := []struct {
		name  string
		refID *int
		want  error
	}{
		{name: "zero rejected", refID: intPtr(0), want: designer.ErrInvalidReferenceID},
		{name: "negative rejected", refID: intPtr(-3), want: designer.ErrInvalidReferenceID},
		{name: "nil accepted", refID: nil, want: nil},
		{name: "positive accepted", refID: intPtr(10), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
				ReferenceID: tt.refID,
				Name:        "t-" + tt.name,
			}, "alice")
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_Save_ReferenceIDConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	first, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
		ReferenceID: intPtr(5), Name: "first",
	}, "alice")
	require.NoError(t, err)

	// A second create with the same reference id is rejected.
	_, err = svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
		ReferenceID: intPtr(5), Name: "second",
	}, "alice")
	assert.ErrorIs(t, err, designer.ErrReferenceIDTaken)

	// So is stealing it through an update of another template.
	other, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{Name: "other"}, "alice")
	require.NoError(t, err)
	_, err = svc.Save(ctx, other.ID, designer.SaveTemplateInput{
		ReferenceID: intPtr(5), Name: "other",
	}, "alice")
	assert.ErrorIs(t, err, designer.ErrReferenceIDTaken)

	// Re-saving the holder with its own reference id stays fine.
	_, err = svc.Save(ctx, first.ID, designer.SaveTemplateInput{
		ReferenceID: intPtr(5), Name: "first renamed",
	}, "alice")
	assert.NoError(t, err)
}

func TestService_Save_Import(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown reference id creates", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t)

		created, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
			ReferenceID: intPtr(9), Name: "imported", Import: true,
		}, "alice")
		require.NoError(t, err)
		assert.Equal(t, "imported", created.Name)
	})

	t.Run("existing reference id overwrites the holder", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t)

		holder, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
			ReferenceID: intPtr(9), Name: "holder",
		}, "alice")
		require.NoError(t, err)

		imported, err := svc.Save(ctx, holder.ID, designer.SaveTemplateInput{
			ReferenceID: intPtr(9), Name: "imported over", Import: true,
		}, "alice")
		require.NoError(t, err)
		assert.Equal(t, holder.ID, imported.ID)
		assert.Equal(t, "imported over", imported.Name)
	})

	t.Run("explicit create against taken reference id conflicts", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t)

		_, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
			ReferenceID: intPtr(9), Name: "holder",
		}, "alice")
		require.NoError(t, err)

		_, err = svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
			ReferenceID: intPtr(9), Name: "imported", Import: true,
		}, "alice")
		assert.ErrorIs(t, err, designer.ErrReferenceIDTaken)
	})
}

func TestService_Duplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	source, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
		ReferenceID: intPtr(3),
		Name:        "newsletter",
		Subject:     "News",
		BodyHTML:    "<p>news</p>",
		Tags:        []string{"marketing"},
	}, "alice")
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, source.ID, "alice")
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, "newsletter copy", dup.Name)
	assert.Nil(t, dup.ReferenceID)
	assert.Equal(t, source.Subject, dup.Subject)
	assert.Equal(t, source.BodyHTML, dup.BodyHTML)
	assert.Equal(t, source.Tags, dup.Tags)

	// The copy starts its own history at version 1.
	history, err := svc.Versioning().History(ctx, dup.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].VersionNumber)
}

func TestService_Duplicate_MissingSource(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	_, err := svc.Duplicate(context.Background(), "missing", "alice")
	assert.ErrorIs(t, err, designer.ErrTemplateNotFound)
}

func TestService_Delete_CascadesVersions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, versions := newService(t)

	created, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{Name: "doomed"}, "alice")
	require.NoError(t, err)
	_, err = svc.Save(ctx, created.ID, designer.SaveTemplateInput{Name: "doomed v2"}, "alice")
	require.NoError(t, err)

	count, err := versions.CountByTemplate(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, designer.ErrTemplateNotFound)

	count, err = versions.CountByTemplate(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_GetByReferenceID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	created, err := svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
		ReferenceID: intPtr(42), Name: "by-ref",
	}, "alice")
	require.NoError(t, err)

	found, err := svc.GetByReferenceID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByReferenceID(ctx, 0)
	assert.ErrorIs(t, err, designer.ErrInvalidReferenceID)

	_, err = svc.GetByReferenceID(ctx, 41)
	assert.ErrorIs(t, err, designer.ErrTemplateNotFound)
}

func TestService_ConcurrentCreatesWithSameReferenceID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Save(ctx, designer.NewTemplateID, designer.SaveTemplateInput{
				ReferenceID: intPtr(77),
				Name:        "racer",
			}, "alice")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, designer.ErrReferenceIDTaken)
	}
	assert.Equal(t, 1, succeeded)
}
