package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"game-importer/core/catalog"
	"game-importer/core/content"
	"game-importer/core/database"
	"game-importer/core/media"
	"game-importer/core/settings"
	"game-importer/core/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, id, language string) (*catalog.App, error) {
	args := m.Called(ctx, id, language)
	app, _ := args.Get(0).(*catalog.App)
	return app, args.Error(1)
}

// fakeMedia hands out attachment ids per dedup key and fails URLs listed in failing.
type fakeMedia struct {
	mu      sync.Mutex
	ids     map[string]uint
	failing map[string]bool
	calls   int
}

func newFakeMedia(failing ...string) *fakeMedia {
	f := &fakeMedia{ids: map[string]uint{}, failing: map[string]bool{}}
	for _, u := range failing {
		f.failing[u] = true
	}
	return f
}

func (f *fakeMedia) ResolveImage(_ context.Context, url, owner, role string) (*media.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing[url] {
		return nil, errors.New("download failed")
	}
	key := media.DedupKey(owner, role)
	id, ok := f.ids[key]
	if !ok {
		id = uint(len(f.ids) + 1)
		f.ids[key] = id
	}
	return &media.Attachment{ID: id, URL: "https://cdn.local/uploads/" + key + ".jpg"}, nil
}

func (f *fakeMedia) ResolveGallery(ctx context.Context, urls []string, owner string) []media.Ref {
	refs := []media.Ref{}
	for i, u := range urls {
		att, err := f.ResolveImage(ctx, u, owner, fmt.Sprintf("galleryimg%d", i))
		if err != nil {
			continue
		}
		refs = append(refs, att.Ref())
	}
	return refs
}

type fixture struct {
	db      *gorm.DB
	repo    *content.Repository
	terms   *taxonomy.Resolver
	fetcher *mockFetcher
	media   *fakeMedia
	engine  *Engine
}

func newFixture(t *testing.T, m *fakeMedia) *fixture {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	models := append(content.Models(), taxonomy.Models()...)
	require.NoError(t, database.Migrate(db, models...))

	if m == nil {
		m = newFakeMedia()
	}
	f := &fixture{
		db:      db,
		repo:    content.NewRepository(db),
		terms:   taxonomy.NewResolver(db, zap.NewNop()),
		fetcher: new(mockFetcher),
		media:   m,
	}
	f.engine = NewEngine(f.repo, content.Config{BodylessTypes: []string{"card"}}, f.fetcher, f.media, f.terms, zap.NewNop())
	return f
}

func (f *fixture) meta(t *testing.T, id uint, key string) (string, bool) {
	v, ok, err := f.repo.GetMeta(context.Background(), id, key)
	require.NoError(t, err)
	return v, ok
}

func boolPtr(b bool) *bool { return &b }

func portal() *catalog.App {
	return &catalog.App{
		Name:                "Portal 2",
		DetailedDescription: "&lt;p&gt;Long story&lt;/p&gt;",
		ShortDescription:    "Short pitch",
		HeaderImage:         "http://cdn.example.com/header.jpg",
		CapsuleImage:        "http://cdn.example.com/capsule.jpg",
		Screenshots: []catalog.Screenshot{
			{PathFull: "https://cdn.example.com/ss0.jpg"},
			{PathFull: "https://cdn.example.com/ss1.jpg"},
			{PathFull: "https://cdn.example.com/ss2.jpg"},
			{PathFull: "https://cdn.example.com/ss3.jpg"},
		},
		Movies: []catalog.Movie{
			{Name: "teaser", MP4: map[string]string{"480": "http://cdn.example.com/t480.mp4"}},
			{Name: "trailer", MP4: map[string]string{"max": "http://cdn.example.com/max.mp4"}},
		},
		Genres:     []catalog.Descriptor{{ID: "1", Description: "Action"}, {ID: "25", Description: "Adventure"}},
		Categories: []catalog.Descriptor{{ID: 2, Description: "Single-player"}},
		Developers: []string{"Valve", " "},
		Publishers: []string{"Valve"},
		Platforms:  catalog.Platforms{Windows: true, Linux: true},
		IsFree:     boolPtr(false),
		PriceOverview: catalog.PriceOverview{
			FinalFormatted: "$19.99",
		},
		ReleaseDate: catalog.ReleaseDate{Date: "21 Mar, 2019"},
	}
}

func fullMapping() settings.Mapping {
	m := settings.DefaultMapping()
	m.RecordType = "game"
	m.GenreTaxonomy = "genre"
	m.CategoryTaxonomy = "category"
	m.DeveloperTaxonomy = "developer"
	m.PublisherTaxonomy = "publisher"
	m.PlatformTaxonomy = "platform"
	m.SaveFeaturedImage = true
	m.CapsuleMeta = "capsule"
	m.GalleryMeta = "gallery"
	m.MovieMeta = "trailer"
	m.SaveDescription = true
	m.ReleaseDateMeta = "release_date"
	m.IsFreeMeta = "is_free"
	m.PriceMeta = "price"
	return m
}

func TestReconcile_RequiresRecordType(t *testing.T) {
	f := newFixture(t, nil)

	out := f.engine.Reconcile(context.Background(), settings.DefaultMapping(), "620", "en")
	assert.False(t, out.Success)
	assert.Equal(t, "no record type selected", out.Error)

	var count int64
	require.NoError(t, f.db.Model(&content.Record{}).Count(&count).Error)
	assert.Zero(t, count)
	f.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_IdempotentAndPreservesStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	m := fullMapping()
	m.RecordStatus = content.StatusDraft
	first := f.engine.Reconcile(ctx, m, "620", "en")
	require.True(t, first.Success, first.Error)
	assert.True(t, first.Created)

	m.RecordStatus = content.StatusPublish
	second := f.engine.Reconcile(ctx, m, "620", "en")
	require.True(t, second.Success, second.Error)
	assert.False(t, second.Created)
	assert.Equal(t, first.RecordID, second.RecordID)

	rec, err := f.repo.Get(ctx, first.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Portal 2", rec.Title)
	assert.Equal(t, content.StatusDraft, rec.Status)

	var count int64
	require.NoError(t, f.db.Model(&content.Record{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReconcile_FetchFailureKeepsStub(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "999", "de").
		Return(nil, &catalog.FetchError{Message: "Invalid App ID or data not found.", Err: catalog.ErrNotFound})

	out := f.engine.Reconcile(ctx, fullMapping(), "999", "de")
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid App ID or data not found.", out.Error)
	require.NotZero(t, out.RecordID)

	stub, err := f.repo.FindByExternalID(ctx, "game", "999")
	require.NoError(t, err)
	require.NotNil(t, stub)
	assert.Equal(t, out.RecordID, stub.ID)
	assert.Equal(t, "Placeholder Title", stub.Title)
	assert.Equal(t, content.StatusPublish, stub.Status)
	assert.Zero(t, f.media.calls)
}

func TestReconcile_ShortDescriptionRouting(t *testing.T) {
	tests := []struct {
		route       string
		wantBody    string
		wantExcerpt string
	}{
		{settings.ShortToContent, "Short pitch\n\n<p>Long story</p>", ""},
		{settings.ShortToExcerpt, "<p>Long story</p>", "Short pitch"},
		{settings.ShortToNone, "<p>Long story</p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, nil)
			f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

			m := fullMapping()
			m.SaveShortDescription = tt.route
			out := f.engine.Reconcile(ctx, m, "620", "en")
			require.True(t, out.Success, out.Error)

			rec, err := f.repo.Get(ctx, out.RecordID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, rec.Body)
			assert.Equal(t, tt.wantExcerpt, rec.Excerpt)
		})
	}
}

func TestReconcile_ShortDescriptionNoneWithoutLongBody(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	m := fullMapping()
	m.SaveDescription = false
	m.SaveShortDescription = settings.ShortToNone
	out := f.engine.Reconcile(ctx, m, "620", "en")
	require.True(t, out.Success, out.Error)

	rec, err := f.repo.Get(ctx, out.RecordID)
	require.NoError(t, err)
	assert.Empty(t, rec.Body)
	assert.Empty(t, rec.Excerpt)
}

func TestReconcile_DescriptionToMetaForBodylessType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	m := fullMapping()
	m.RecordType = "card"
	m.DetailedDescriptionMeta = "description"
	out := f.engine.Reconcile(ctx, m, "620", "en")
	require.True(t, out.Success, out.Error)

	rec, err := f.repo.Get(ctx, out.RecordID)
	require.NoError(t, err)
	assert.Empty(t, rec.Body)

	desc, ok := f.meta(t, out.RecordID, "description")
	assert.True(t, ok)
	assert.Equal(t, "<p>Long story</p>", desc)
}

func TestReconcile_MapsTaxonomies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	out := f.engine.Reconcile(ctx, fullMapping(), "620", "en")
	require.True(t, out.Success, out.Error)

	terms, err := f.terms.TermsOf(ctx, out.RecordID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Adventure"}, terms["genre"])
	assert.Equal(t, []string{"Single-player"}, terms["category"])
	assert.Equal(t, []string{"Valve"}, terms["developer"])
	assert.Equal(t, []string{"Valve"}, terms["publisher"])
	assert.Equal(t, []string{"Linux", "Windows"}, terms["platform"])
}

func TestReconcile_MapsImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newFakeMedia("https://cdn.example.com/ss2.jpg"))
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	out := f.engine.Reconcile(ctx, fullMapping(), "620", "en")
	require.True(t, out.Success, out.Error)

	rec, err := f.repo.Get(ctx, out.RecordID)
	require.NoError(t, err)
	require.NotNil(t, rec.ThumbnailID)
	assert.Equal(t, f.media.ids["portal-2-header"], *rec.ThumbnailID)

	capsule, ok := f.meta(t, out.RecordID, "capsule")
	require.True(t, ok)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"url":"https://cdn.local/uploads/portal-2-logo.jpg"}`, f.media.ids["portal-2-logo"]), capsule)

	gallery, ok := f.meta(t, out.RecordID, "gallery")
	require.True(t, ok)
	assert.Contains(t, gallery, "portal-2-galleryimg0")
	assert.Contains(t, gallery, "portal-2-galleryimg1")
	assert.NotContains(t, gallery, "portal-2-galleryimg2")
	assert.Contains(t, gallery, "portal-2-galleryimg3")

	trailer, ok := f.meta(t, out.RecordID, "trailer")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/max.mp4", trailer)
}

func TestReconcile_ReusesMediaAcrossRuns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	first := f.engine.Reconcile(ctx, fullMapping(), "620", "en")
	require.True(t, first.Success)
	keys := len(f.media.ids)

	second := f.engine.Reconcile(ctx, fullMapping(), "620", "en")
	require.True(t, second.Success)
	assert.Equal(t, keys, len(f.media.ids))
}

func TestReconcile_MapsScalarMetadata(t *testing.T) {
	tests := []struct {
		format   string
		wantDate string
	}{
		{settings.DateString, "21 Mar, 2019"},
		{settings.DateUnix, "2019-03-21"},
		{settings.DateTimestamp, "1553126400"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, nil)
			f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

			m := fullMapping()
			m.ReleaseDateFormat = tt.format
			m.RemoveCurrency = true
			out := f.engine.Reconcile(ctx, m, "620", "en")
			require.True(t, out.Success, out.Error)

			date, _ := f.meta(t, out.RecordID, "release_date")
			assert.Equal(t, tt.wantDate, date)
			free, _ := f.meta(t, out.RecordID, "is_free")
			assert.Equal(t, "no", free)
			price, _ := f.meta(t, out.RecordID, "price")
			assert.Equal(t, "19.99", price)
		})
	}
}

func TestReconcile_SkipsUnparseableDateAndMissingFlags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	app := portal()
	app.ReleaseDate.Date = "Coming soon"
	app.IsFree = nil
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(app, nil)

	out := f.engine.Reconcile(ctx, fullMapping(), "620", "en")
	require.True(t, out.Success, out.Error)

	_, ok := f.meta(t, out.RecordID, "release_date")
	assert.False(t, ok)
	_, ok = f.meta(t, out.RecordID, "is_free")
	assert.False(t, ok)
	price, _ := f.meta(t, out.RecordID, "price")
	assert.Equal(t, "$19.99", price)
}

func TestReconcile_NotifiesObserversInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	var kinds []EventKind
	f.engine.Subscribe(ObserverFunc(func(_ context.Context, ev Event) {
		assert.Equal(t, "620", ev.ExternalID)
		assert.NotZero(t, ev.RecordID)
		kinds = append(kinds, ev.Kind)
	}))

	f.engine.Reconcile(ctx, fullMapping(), "620", "en")
	f.engine.Reconcile(ctx, fullMapping(), "620", "en")

	mapped := []EventKind{EventCoreContentMapped, EventTaxonomiesMapped, EventImagesMapped, EventMetadataMapped, EventFinished}
	want := append([]EventKind{EventRecordCreated}, mapped...)
	want = append(want, EventRecordLocated)
	want = append(want, mapped...)
	assert.Equal(t, want, kinds)
}

func TestReconcile_ConcurrentRunsCreateOneRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fetcher.On("Fetch", mock.Anything, "620", "en").Return(portal(), nil)

	var wg sync.WaitGroup
	outcomes := make([]Outcome, 4)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = f.engine.Reconcile(ctx, fullMapping(), "620", "en")
		}(i)
	}
	wg.Wait()

	created := 0
	for _, out := range outcomes {
		require.True(t, out.Success, out.Error)
		assert.Equal(t, outcomes[0].RecordID, out.RecordID)
		if out.Created {
			created++
		}
	}
	assert.Equal(t, 1, created)
}
