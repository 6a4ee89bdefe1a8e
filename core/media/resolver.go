package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"game-importer/core/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// MinFileSize is the smallest download accepted as an image, in bytes.
// Smaller bodies are placeholders or error pages.
const MinFileSize = 500

// DefaultMaxFileSize applies when the storage config sets no upload cap.
const DefaultMaxFileSize int64 = 20 << 20

// uploadPrefix is the object key prefix of imported media.
const uploadPrefix = "uploads/"

var (
	// ErrSmallFile is returned when the downloaded file is below MinFileSize.
	ErrSmallFile = errors.New("small_file: file is too small or empty")
	// ErrLargeFile is returned when the download exceeds the upload cap.
	ErrLargeFile = errors.New("large_file: file exceeds the upload limit")
	// ErrNotFound is returned when an attachment does not exist.
	ErrNotFound = errors.New("attachment not found")
)

// Resolver imports remote images as attachments, at most once per owner and role.
type Resolver struct {
	db         *gorm.DB
	store      storage.Client
	storageCfg storage.Config
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
	group      singleflight.Group
}

// NewResolver creates a new media resolver.
func NewResolver(db *gorm.DB, store storage.Client, storageCfg storage.Config, httpClient *http.Client, userAgent string, logger *zap.Logger) *Resolver {
	return &Resolver{
		db:         db,
		store:      store,
		storageCfg: storageCfg,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// DedupKey derives the deterministic file name for an owner and image role.
func DedupKey(ownerName, role string) string {
	return slug.Make(ownerName) + "-" + role
}

// ResolveImage returns the attachment for (ownerName, role), downloading and
// storing the image only when no attachment with the same dedup key exists.
func (r *Resolver) ResolveImage(ctx context.Context, url, ownerName, role string) (*Attachment, error) {
	key := DedupKey(ownerName, role)

	v, err, _ := r.group.Do(key, func() (any, error) {
		existing, err := r.findByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		return r.importImage(ctx, url, key, fmt.Sprintf("%s %s", ownerName, role))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Attachment), nil
}

// ResolveGallery resolves every URL with role galleryimg{index}. Items that
// fail are logged and left out of the result.
func (r *Resolver) ResolveGallery(ctx context.Context, urls []string, ownerName string) []Ref {
	refs := make([]Ref, 0, len(urls))
	for i, u := range urls {
		att, err := r.ResolveImage(ctx, u, ownerName, fmt.Sprintf("galleryimg%d", i))
		if err != nil {
			r.logger.Warn("Skipping gallery image", zap.Int("index", i), zap.String("url", u), zap.Error(err))
			continue
		}
		refs = append(refs, att.Ref())
	}
	return refs
}

// Get loads an attachment by id.
func (r *Resolver) Get(ctx context.Context, id uint) (*Attachment, error) {
	var att Attachment
	err := r.db.WithContext(ctx).First(&att, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment %d: %w", id, err)
	}
	return &att, nil
}

// Delete removes the attachment's object from storage and its row.
func (r *Resolver) Delete(ctx context.Context, id uint) error {
	att, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.store.RemoveObject(ctx, r.storageCfg.Bucket, att.FilePath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", att.FilePath, err)
	}
	if err := r.db.WithContext(ctx).Delete(&Attachment{}, id).Error; err != nil {
		return fmt.Errorf("delete attachment %d: %w", id, err)
	}
	return nil
}

// findByKey returns the attachment whose file name is exactly the dedup key,
// whatever its extension.
func (r *Resolver) findByKey(ctx context.Context, key string) (*Attachment, error) {
	pattern := "%/" + escapeLike(key) + ".%"

	var att Attachment
	err := r.db.WithContext(ctx).
		Where("file_path LIKE ? ESCAPE '!'", pattern).
		Order("id").
		First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup attachment %s: %w", key, err)
	}
	return &att, nil
}

func (r *Resolver) importImage(ctx context.Context, url, key, title string) (*Attachment, error) {
	url = secureURL(url)

	tmpPath, size, err := r.download(ctx, url)
	if tmpPath != "" {
		defer os.Remove(tmpPath)
	}
	if err != nil {
		return nil, err
	}
	if size < MinFileSize {
		return nil, ErrSmallFile
	}

	mt, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("detect mime type: %w", err)
	}

	ext := mt.Extension()
	if ext == "" {
		ext = ".jpg"
	}
	objectName := uploadPrefix + key + ext

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open temp file: %w", err)
	}
	defer f.Close()

	if _, err := r.store.PutObject(ctx, r.storageCfg.Bucket, objectName, f, size, minio.PutObjectOptions{
		ContentType: mt.String(),
	}); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectName, err)
	}

	att := &Attachment{
		FilePath:  objectName,
		URL:       r.storageCfg.ObjectURL(objectName),
		MimeType:  mt.String(),
		Title:     title,
		Size:      size,
		SourceURL: url,
	}
	if err := r.db.WithContext(ctx).Create(att).Error; err != nil {
		return nil, fmt.Errorf("save attachment %s: %w", objectName, err)
	}

	r.logger.Info("Imported image", zap.String("key", key), zap.Uint("attachment_id", att.ID), zap.Int64("size", size))
	return att, nil
}

// download writes the response body to a temp file. The returned path must be
// removed by the caller whenever it is non-empty.
func (r *Resolver) download(ctx context.Context, url string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "media-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	defer tmp.Close()

	limit := r.maxFileSize()
	size, err := io.Copy(tmp, io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return tmp.Name(), 0, fmt.Errorf("download %s: %w", url, err)
	}
	if size > limit {
		return tmp.Name(), 0, fmt.Errorf("download %s: %w", url, ErrLargeFile)
	}
	return tmp.Name(), size, nil
}

func (r *Resolver) maxFileSize() int64 {
	if r.storageCfg.MaxUploadBytes > 0 {
		return r.storageCfg.MaxUploadBytes
	}
	return DefaultMaxFileSize
}

func secureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
