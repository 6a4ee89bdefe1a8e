package media

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"game-importer/core/database"
	"game-importer/core/storage"
	"game-importer/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var pngBody = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))
	return db
}

type imageServer struct {
	*httptest.Server
	hits atomic.Int32
}

// newImageServer serves a PNG on /ok*, a tiny body on /small and 404 elsewhere.
func newImageServer(t *testing.T) *imageServer {
	s := &imageServer{}
	s.Server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		switch {
		case strings.HasPrefix(r.URL.Path, "/ok"):
			_, _ = w.Write(pngBody)
		case r.URL.Path == "/small":
			_, _ = w.Write([]byte("tiny"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

// plainURL returns the server URL with an http scheme, which the resolver upgrades.
func (s *imageServer) plainURL(path string) string {
	return "http://" + strings.TrimPrefix(s.URL, "https://") + path
}

func newTestResolver(t *testing.T, srv *imageServer) (*Resolver, *mocks.Client) {
	store := new(mocks.Client)
	cfg := storage.Config{Endpoint: "cdn.local", Bucket: "media"}
	return NewResolver(newTestDB(t), store, cfg, srv.Client(), "test-agent", zap.NewNop()), store
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "half-life-2-capsule", DedupKey("Half-Life 2", "capsule"))
	assert.Equal(t, "portal-galleryimg0", DedupKey("Portal", "galleryimg0"))
}

func TestResolveImage_ImportsOnce(t *testing.T) {
	ctx := context.Background()
	srv := newImageServer(t)
	r, store := newTestResolver(t, srv)

	store.On("PutObject", mock.Anything, "media", "uploads/portal-capsule.png", int64(len(pngBody)), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	first, err := r.ResolveImage(ctx, srv.plainURL("/ok.jpg"), "Portal", "capsule")
	require.NoError(t, err)
	assert.Equal(t, "uploads/portal-capsule.png", first.FilePath)
	assert.Equal(t, "http://cdn.local/media/uploads/portal-capsule.png", first.URL)
	assert.Equal(t, "image/png", first.MimeType)
	assert.Equal(t, "Portal capsule", first.Title)
	assert.True(t, strings.HasPrefix(first.SourceURL, "https://"))

	second, err := r.ResolveImage(ctx, srv.plainURL("/ok-other.jpg"), "Portal", "capsule")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int32(1), srv.hits.Load())
	store.AssertExpectations(t)
}

func TestResolveImage_KeysDoNotCollideOnPrefix(t *testing.T) {
	ctx := context.Background()
	srv := newImageServer(t)
	r, store := newTestResolver(t, srv)

	store.On("PutObject", mock.Anything, "media", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	ten, err := r.ResolveImage(ctx, srv.plainURL("/ok10"), "Portal", "galleryimg10")
	require.NoError(t, err)

	one, err := r.ResolveImage(ctx, srv.plainURL("/ok1"), "Portal", "galleryimg1")
	require.NoError(t, err)
	assert.NotEqual(t, ten.ID, one.ID)
	assert.Equal(t, "uploads/portal-galleryimg1.png", one.FilePath)
}

func TestResolveImage_Errors(t *testing.T) {
	ctx := context.Background()
	srv := newImageServer(t)
	r, store := newTestResolver(t, srv)

	_, err := r.ResolveImage(ctx, srv.plainURL("/small"), "Portal", "header")
	assert.ErrorIs(t, err, ErrSmallFile)

	_, err = r.ResolveImage(ctx, srv.plainURL("/missing"), "Portal", "header")
	assert.Error(t, err)

	var count int64
	require.NoError(t, r.db.Model(&Attachment{}).Count(&count).Error)
	assert.Zero(t, count)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveGallery_SkipsFailures(t *testing.T) {
	ctx := context.Background()
	srv := newImageServer(t)
	r, store := newTestResolver(t, srv)

	store.On("PutObject", mock.Anything, "media", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	refs := r.ResolveGallery(ctx, []string{
		srv.plainURL("/ok/a.jpg"),
		srv.plainURL("/missing.jpg"),
		srv.plainURL("/ok/c.jpg"),
	}, "Portal")

	require.Len(t, refs, 2)
	first, err := r.Get(ctx, refs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/portal-galleryimg0.png", first.FilePath)
	last, err := r.Get(ctx, refs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/portal-galleryimg2.png", last.FilePath)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	srv := newImageServer(t)
	r, store := newTestResolver(t, srv)

	store.On("PutObject", mock.Anything, "media", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	store.On("RemoveObject", mock.Anything, "media", "uploads/portal-header.png", mock.Anything).
		Return(nil).Once()

	att, err := r.ResolveImage(ctx, srv.plainURL("/ok"), "Portal", "header")
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, att.ID))
	_, err = r.Get(ctx, att.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, att.ID), ErrNotFound)
	store.AssertExpectations(t)
}

func TestResolveImage_RejectsOversizedDownload(t *testing.T) {
	srv := newImageServer(t)
	store := new(mocks.Client)
	cfg := storage.Config{Endpoint: "cdn.local", Bucket: "media", MaxUploadBytes: int64(len(pngBody)) - 8}
	r := NewResolver(newTestDB(t), store, cfg, srv.Client(), "test-agent", zap.NewNop())

	_, err := r.ResolveImage(context.Background(), srv.plainURL("/ok.png"), "Portal", "header")
	assert.ErrorIs(t, err, ErrLargeFile)

	var count int64
	require.NoError(t, r.db.Model(&Attachment{}).Count(&count).Error)
	assert.Zero(t, count)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
