package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookworm-search/internal/catalog"
	"bookworm-search/internal/models"
	"bookworm-search/internal/ol"
	"bookworm-search/internal/query"
	"bookworm-search/mocks"
)

func titleCriteria(title string) query.SearchCriteria {
	c := query.NewCriteria()
	c.Title = title
	return c
}

func mustBuild(t *testing.T, c query.SearchCriteria) query.Descriptor {
	t.Helper()
	d, err := query.Build(c)
	require.NoError(t, err)
	return d
}

func hobbitResponse() models.SearchResponse {
	return models.SearchResponse{NumFound: 1, Docs: []models.SearchDoc{{Title: "The Hobbit"}}}
}

func TestSearchMemoizesEquivalentCriteria(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	client := catalog.New(remote)

	remote.EXPECT().
		Fetch(gomock.Any(), mustBuild(t, titleCriteria("The Hobbit"))).
		Return(hobbitResponse(), nil).
		Times(1)

	first, err := client.Search(context.Background(), titleCriteria("The Hobbit"))
	require.NoError(t, err)
	second, err := client.Search(context.Background(), titleCriteria("  The   Hobbit "))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.Len())
}

func TestSearchValidationFailsBeforeIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	client := catalog.New(remote, catalog.WithPublisher(publisher))

	_, err := client.Search(context.Background(), query.NewCriteria())
	var verr *query.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, client.Len())
}

func TestSearchEvictsLeastRecentlyUsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	client := catalog.New(remote, catalog.WithCapacity(2))

	q1 := mustBuild(t, titleCriteria("one"))
	q2 := mustBuild(t, titleCriteria("two"))
	q3 := mustBuild(t, titleCriteria("three"))

	remote.EXPECT().Fetch(gomock.Any(), q1).Return(models.SearchResponse{NumFound: 1}, nil).Times(2)
	remote.EXPECT().Fetch(gomock.Any(), q2).Return(models.SearchResponse{NumFound: 2}, nil).Times(1)
	remote.EXPECT().Fetch(gomock.Any(), q3).Return(models.SearchResponse{NumFound: 3}, nil).Times(1)

	ctx := context.Background()
	for _, d := range []query.Descriptor{q1, q2, q3} {
		_, err := client.SearchDescriptor(ctx, d)
		require.NoError(t, err)
	}
	assert.False(t, client.Contains(q1))
	assert.True(t, client.Contains(q2))
	assert.True(t, client.Contains(q3))

	// q1 was evicted, so this is the second remote call for it.
	got, err := client.SearchDescriptor(ctx, q1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumFound)
	assert.Equal(t, 2, client.Len())
}

func TestSearchHitRefreshesRecency(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	client := catalog.New(remote, catalog.WithCapacity(2))

	q1 := mustBuild(t, titleCriteria("one"))
	q2 := mustBuild(t, titleCriteria("two"))
	q3 := mustBuild(t, titleCriteria("three"))
	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(models.SearchResponse{}, nil).Times(3)

	ctx := context.Background()
	for _, d := range []query.Descriptor{q1, q2, q1, q3} {
		_, err := client.SearchDescriptor(ctx, d)
		require.NoError(t, err)
	}
	assert.True(t, client.Contains(q1))
	assert.False(t, client.Contains(q2))
}

func TestSearchFailureIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	client := catalog.New(remote)
	d := mustBuild(t, titleCriteria("Dune"))

	gomock.InOrder(
		remote.EXPECT().Fetch(gomock.Any(), d).Return(models.SearchResponse{}, &ol.RemoteError{StatusCode: 503, Err: errors.New("unavailable")}),
		remote.EXPECT().Fetch(gomock.Any(), d).Return(hobbitResponse(), nil),
	)

	_, err := client.Search(context.Background(), titleCriteria("Dune"))
	var rerr *ol.RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 503, rerr.StatusCode)
	assert.False(t, client.Contains(d))

	resp, err := client.Search(context.Background(), titleCriteria("Dune"))
	require.NoError(t, err)
	assert.Len(t, resp.Docs, 1)
	assert.True(t, client.Contains(d))
}

func TestSearchWrapsUntypedRemoteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	client := catalog.New(remote)

	cause := errors.New("connection reset")
	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(models.SearchResponse{}, cause)

	_, err := client.Search(context.Background(), titleCriteria("Dune"))
	var rerr *ol.RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, cause)
}

func TestSearchZeroResultsIsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	client := catalog.New(remote)

	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(models.SearchResponse{Docs: []models.SearchDoc{}}, nil).Times(1)

	for i := 0; i < 2; i++ {
		resp, err := client.Search(context.Background(), titleCriteria("zzzz"))
		require.NoError(t, err)
		assert.Empty(t, resp.Docs)
	}
}

func TestSearchUsesSharedStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	shared := mocks.NewMockResultStore(ctrl)
	client := catalog.New(remote, catalog.WithStore(shared))

	d := mustBuild(t, titleCriteria("The Hobbit"))
	shared.EXPECT().GetResult(gomock.Any(), d.Key()).Return(hobbitResponse(), true, nil).Times(1)

	for i := 0; i < 2; i++ {
		resp, err := client.Search(context.Background(), titleCriteria("The Hobbit"))
		require.NoError(t, err)
		assert.Equal(t, "The Hobbit", resp.Docs[0].Title)
	}
	assert.True(t, client.Contains(d))
}

func TestSearchStoreMissFetchesAndWritesBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	shared := mocks.NewMockResultStore(ctrl)
	client := catalog.New(remote, catalog.WithStore(shared))

	d := mustBuild(t, titleCriteria("Dune"))
	gomock.InOrder(
		shared.EXPECT().GetResult(gomock.Any(), d.Key()).Return(models.SearchResponse{}, false, nil),
		remote.EXPECT().Fetch(gomock.Any(), d).Return(hobbitResponse(), nil),
		shared.EXPECT().SetResult(gomock.Any(), d.Key(), hobbitResponse()).Return(nil),
	)

	_, err := client.SearchDescriptor(context.Background(), d)
	require.NoError(t, err)
}

func TestSearchStoreErrorsDoNotFailSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	shared := mocks.NewMockResultStore(ctrl)
	client := catalog.New(remote, catalog.WithStore(shared))

	shared.EXPECT().GetResult(gomock.Any(), gomock.Any()).Return(models.SearchResponse{}, false, errors.New("redis down"))
	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(hobbitResponse(), nil)
	shared.EXPECT().SetResult(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	resp, err := client.Search(context.Background(), titleCriteria("Dune"))
	require.NoError(t, err)
	assert.Len(t, resp.Docs, 1)
}

func TestSearchFailureIsNotStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	shared := mocks.NewMockResultStore(ctrl)
	client := catalog.New(remote, catalog.WithStore(shared))

	shared.EXPECT().GetResult(gomock.Any(), gomock.Any()).Return(models.SearchResponse{}, false, nil)
	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(models.SearchResponse{}, &ol.RemoteError{Err: errors.New("timeout")})
	shared.EXPECT().SetResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := client.Search(context.Background(), titleCriteria("Dune"))
	require.Error(t, err)
}

func TestSearchPublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	client := catalog.New(remote, catalog.WithPublisher(publisher))

	d := mustBuild(t, titleCriteria("The Hobbit"))
	remote.EXPECT().Fetch(gomock.Any(), d).Return(hobbitResponse(), nil)

	var events []models.SearchEvent
	publisher.EXPECT().
		PublishSearch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.SearchEvent) error {
			events = append(events, e)
			return nil
		}).
		Times(2)

	ctx := context.Background()
	_, err := client.SearchDescriptor(ctx, d)
	require.NoError(t, err)
	_, err = client.SearchDescriptor(ctx, d)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, models.SourceRemote, events[0].Source)
	assert.Equal(t, models.SourceMemo, events[1].Source)
	assert.Equal(t, d.Key(), events[0].Query)
	assert.Equal(t, 1, events[0].NumResults)
}

func TestSearchPublishFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockCatalog(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	client := catalog.New(remote, catalog.WithPublisher(publisher))

	remote.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(models.SearchResponse{}, errors.New("boom"))
	publisher.EXPECT().
		PublishSearch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.SearchEvent) error {
			assert.Contains(t, e.Error, "boom")
			return errors.New("broker unavailable")
		})

	_, err := client.Search(context.Background(), titleCriteria("Dune"))
	var rerr *ol.RemoteError
	assert.True(t, errors.As(err, &rerr))
}

// countingCatalog blocks every fetch until release is closed.
type countingCatalog struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (c *countingCatalog) Fetch(ctx context.Context, d query.Descriptor) (models.SearchResponse, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	<-c.release
	return models.SearchResponse{NumFound: 1, Docs: []models.SearchDoc{{Title: d.Title}}}, nil
}

func TestSearchConcurrentMissesShareOneCall(t *testing.T) {
	remote := &countingCatalog{release: make(chan struct{})}
	client := catalog.New(remote)

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Search(context.Background(), titleCriteria("The Hobbit"))
			if err == nil && len(resp.Docs) != 1 {
				err = fmt.Errorf("unexpected docs: %+v", resp.Docs)
			}
			errs <- err
		}()
	}
	close(remote.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, remote.calls)
}

// gatedCatalog signals started on each fetch and then waits for release or
// for the fetch context to end.
type gatedCatalog struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (g *gatedCatalog) Fetch(ctx context.Context, d query.Descriptor) (models.SearchResponse, error) {
	g.calls.Add(1)
	g.started <- struct{}{}
	select {
	case <-g.release:
		return models.SearchResponse{NumFound: 1, Docs: []models.SearchDoc{{Title: d.Title}}}, nil
	case <-ctx.Done():
		return models.SearchResponse{}, ctx.Err()
	}
}

func TestSearchCancelledCallerDoesNotFailOthers(t *testing.T) {
	remote := &gatedCatalog{started: make(chan struct{}, 1), release: make(chan struct{})}
	client := catalog.New(remote)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := client.Search(ctxA, titleCriteria("Dune"))
		errA <- err
	}()
	<-remote.started

	type outcome struct {
		resp models.SearchResponse
		err  error
	}
	resB := make(chan outcome, 1)
	go func() {
		resp, err := client.Search(context.Background(), titleCriteria("Dune"))
		resB <- outcome{resp, err}
	}()

	cancelA()
	err := <-errA
	var rerr *ol.RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, context.Canceled)

	close(remote.release)
	b := <-resB
	require.NoError(t, b.err)
	require.Len(t, b.resp.Docs, 1)
	assert.Equal(t, "Dune", b.resp.Docs[0].Title)
	assert.Equal(t, int32(1), remote.calls.Load())
	assert.True(t, client.Contains(mustBuild(t, titleCriteria("Dune"))))
}

// eventRecorder collects published events from concurrent searches.
type eventRecorder struct {
	mu     sync.Mutex
	events []models.SearchEvent
}

func (r *eventRecorder) PublishSearch(_ context.Context, e models.SearchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func TestSearchSharedLoadReportsOneRemoteSource(t *testing.T) {
	remote := &countingCatalog{release: make(chan struct{})}
	recorder := &eventRecorder{}
	client := catalog.New(remote, catalog.WithPublisher(recorder))

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.Search(context.Background(), titleCriteria("The Hobbit"))
		}()
	}
	close(remote.release)
	wg.Wait()

	counts := map[models.SearchSource]int{}
	for _, e := range recorder.events {
		counts[e.Source]++
	}
	require.Len(t, recorder.events, callers)
	assert.Equal(t, 1, counts[models.SourceRemote])
	assert.Equal(t, callers-1, counts[models.SourceShared]+counts[models.SourceMemo])
}

func TestSearchConcurrentDistinctQueriesRespectCapacity(t *testing.T) {
	remote := &countingCatalog{release: make(chan struct{})}
	close(remote.release)
	client := catalog.New(remote, catalog.WithCapacity(8))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = client.Search(context.Background(), titleCriteria(fmt.Sprintf("book %d", i)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, client.Len())
	assert.Equal(t, 50, remote.calls)
}
