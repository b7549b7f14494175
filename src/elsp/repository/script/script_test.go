package script

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/internal/errors"
	textsnapshot "github.com/uber/embedded-lsp/src/elsp/internal/text-snapshot"
	"go.lsp.dev/uri"
	"go.uber.org/goleak"
)

func sessionContext() (context.Context, uuid.UUID) {
	id := uuid.Must(uuid.NewV4())
	return context.WithValue(context.Background(), entity.SessionContextKey, id), id
}

func TestSetAndGet(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	ctx, _ := sessionContext()
	repository := New(testScope)

	first := &entity.SourceScript{URI: "file:///a.vue", Snapshot: textsnapshot.New("a")}
	previous, err := repository.Set(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, previous)
	firstGeneration := first.Generation
	assert.NotZero(t, firstGeneration)

	second := &entity.SourceScript{URI: "file:///a.vue", Snapshot: textsnapshot.New("ab")}
	previous, err = repository.Set(ctx, second)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, firstGeneration, previous.Generation)
	assert.Greater(t, second.Generation, firstGeneration)

	got, err := repository.Get(ctx, "file:///a.vue")
	require.NoError(t, err)
	assert.Equal(t, second.Generation, got.Generation)
	assert.Equal(t, "ab", got.Snapshot.GetText(0, got.Snapshot.GetLength()))

	gauge, ok := testScope.Snapshot().Gauges()["testing.open_scripts+"]
	require.True(t, ok)
	assert.Equal(t, float64(1), gauge.Value())
}

func TestGenerationsAreUniqueAcrossSessions(t *testing.T) {
	repository := New(tally.NewTestScope("testing", nil))
	ctxA, _ := sessionContext()
	ctxB, _ := sessionContext()

	a := &entity.SourceScript{URI: "file:///a.vue"}
	b := &entity.SourceScript{URI: "file:///a.vue"}
	_, err := repository.Set(ctxA, a)
	require.NoError(t, err)
	_, err = repository.Set(ctxB, b)
	require.NoError(t, err)
	assert.NotEqual(t, a.Generation, b.Generation)
}

func TestGetMissing(t *testing.T) {
	repository := New(tally.NewTestScope("testing", nil))
	ctx, _ := sessionContext()

	_, err := repository.Get(ctx, "file:///missing.vue")
	require.Error(t, err)
	var nf *errors.ScriptNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uri.URI("file:///missing.vue"), nf.URI)
}

func TestNoSession(t *testing.T) {
	repository := New(tally.NewTestScope("testing", nil))

	_, err := repository.Get(context.Background(), "file:///a.vue")
	assert.Error(t, err)
	_, err = repository.Set(context.Background(), &entity.SourceScript{})
	assert.Error(t, err)
	_, err = repository.Delete(context.Background(), "file:///a.vue")
	assert.Error(t, err)
	_, err = repository.List(context.Background())
	assert.Error(t, err)
}

func TestSetNil(t *testing.T) {
	repository := New(tally.NewTestScope("testing", nil))
	ctx, _ := sessionContext()
	_, err := repository.Set(ctx, nil)
	assert.Error(t, err)
}

func TestDeleteAndList(t *testing.T) {
	repository := New(tally.NewTestScope("testing", nil))
	ctx, id := sessionContext()
	otherCtx, _ := sessionContext()

	for _, u := range []uri.URI{"file:///a.vue", "file:///b.vue"} {
		_, err := repository.Set(ctx, &entity.SourceScript{URI: u})
		require.NoError(t, err)
	}
	_, err := repository.Set(otherCtx, &entity.SourceScript{URI: "file:///c.vue"})
	require.NoError(t, err)

	scripts, err := repository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, scripts, 2)

	deleted, err := repository.Delete(ctx, "file:///a.vue")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, uri.URI("file:///a.vue"), deleted.URI)

	deleted, err = repository.Delete(ctx, "file:///a.vue")
	assert.NoError(t, err)
	assert.Nil(t, deleted)

	require.NoError(t, repository.DeleteSession(ctx, id))
	scripts, err = repository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, scripts)

	scripts, err = repository.List(otherCtx)
	require.NoError(t, err)
	assert.Len(t, scripts, 1)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
