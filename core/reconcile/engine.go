package reconcile

import (
	"context"
	"errors"
	"fmt"

	"game-importer/core/catalog"
	"game-importer/core/content"
	"game-importer/core/settings"
	"game-importer/core/utils"

	"go.uber.org/zap"
)

const (
	placeholderTitle = "Placeholder Title"
	untitled         = "Untitled"
)

// Engine maps catalog items onto local records.
type Engine struct {
	records   RecordStore
	types     content.Config
	fetcher   catalog.Fetcher
	media     MediaResolver
	terms     TermResolver
	logger    *zap.Logger
	observers []Observer
	locks     *keyedLocks
}

// NewEngine creates a new reconciliation engine.
func NewEngine(records RecordStore, types content.Config, fetcher catalog.Fetcher, media MediaResolver, terms TermResolver, logger *zap.Logger) *Engine {
	return &Engine{
		records: records,
		types:   types,
		fetcher: fetcher,
		media:   media,
		terms:   terms,
		logger:  logger,
		locks:   newKeyedLocks(),
	}
}

// Subscribe registers observers. It must not be called concurrently with Reconcile.
func (e *Engine) Subscribe(observers ...Observer) {
	e.observers = append(e.observers, observers...)
}

// run carries the state of one reconciliation.
type run struct {
	mapping    settings.Mapping
	externalID string
	record     *content.Record
	status     string
	created    bool
	app        *catalog.App
	log        *zap.Logger
}

// Reconcile locates or creates the record for externalID, fetches the catalog
// item and applies the mapping to it. Writes are cumulative: a failure after
// the fetch is logged and leaves earlier writes in place.
func (e *Engine) Reconcile(ctx context.Context, mapping settings.Mapping, externalID, language string) Outcome {
	if mapping.RecordType == "" {
		return Outcome{Error: ErrNoRecordType.Error()}
	}

	r := &run{
		mapping:    mapping,
		externalID: externalID,
		log:        e.logger.With(zap.String("external_id", externalID), zap.String("record_type", mapping.RecordType)),
	}

	if err := e.locateOrCreate(ctx, r); err != nil {
		r.log.Error("Failed to locate record", zap.Error(err))
		return Outcome{Error: err.Error()}
	}
	if r.created {
		e.emit(ctx, EventRecordCreated, r)
	} else {
		e.emit(ctx, EventRecordLocated, r)
	}

	app, err := e.fetcher.Fetch(ctx, externalID, language)
	if err != nil {
		r.log.Warn("Catalog fetch failed", zap.Uint("record_id", r.record.ID), zap.Error(err))
		return Outcome{RecordID: r.record.ID, Created: r.created, Error: fetchMessage(err)}
	}
	r.app = app

	e.mapCoreContent(ctx, r)
	e.emit(ctx, EventCoreContentMapped, r)

	e.mapTaxonomies(ctx, r)
	e.emit(ctx, EventTaxonomiesMapped, r)

	e.mapImages(ctx, r)
	e.emit(ctx, EventImagesMapped, r)

	e.mapMetadata(ctx, r)
	e.emit(ctx, EventMetadataMapped, r)

	title := utils.SanitizeText(app.Name)
	if title == "" {
		title = untitled
	}
	if err := e.records.Update(ctx, r.record.ID, map[string]any{"title": title, "status": r.status}); err != nil {
		r.log.Error("Failed to save title", zap.Error(err))
	}
	e.emit(ctx, EventFinished, r)

	r.log.Info("Reconciled record", zap.Uint("record_id", r.record.ID), zap.Bool("created", r.created))
	return Outcome{Success: true, RecordID: r.record.ID, Created: r.created}
}

// locateOrCreate finds the record tagged with the external id or creates a
// stub carrying it. Runs for the same (type, id) are serialized.
func (e *Engine) locateOrCreate(ctx context.Context, r *run) error {
	unlock := e.locks.Lock(r.mapping.RecordType + "|" + r.externalID)
	defer unlock()

	rec, err := e.records.FindByExternalID(ctx, r.mapping.RecordType, r.externalID)
	if err != nil {
		return err
	}
	if rec != nil {
		r.record = rec
		r.status = rec.Status
		return nil
	}

	rec = &content.Record{
		Type:   r.mapping.RecordType,
		Title:  placeholderTitle,
		Status: r.mapping.DefaultStatus(),
	}
	if err := e.records.Create(ctx, rec); err != nil {
		return err
	}
	if err := e.records.SetMeta(ctx, rec.ID, content.ExternalIDKey, r.externalID); err != nil {
		return err
	}
	r.record = rec
	r.status = rec.Status
	r.created = true
	return nil
}

func (e *Engine) mapCoreContent(ctx context.Context, r *run) {
	m := r.mapping
	fields := map[string]any{}

	body := ""
	long := DecodeDescription(r.app.DetailedDescription, m.DisableInlineImages)
	if m.SaveDescription && e.types.SupportsBody(m.RecordType) {
		if long != "" {
			body = utils.SanitizeHTML(long)
			fields["body"] = body
		}
	} else if m.DetailedDescriptionMeta != "" {
		e.setMeta(ctx, r, m.DetailedDescriptionMeta, utils.SanitizeHTML(long))
	}

	short := utils.SanitizeHTML(r.app.ShortDescription)
	if short != "" {
		switch m.SaveShortDescription {
		case settings.ShortToContent:
			fields["body"] = short + "\n\n" + body
		case settings.ShortToExcerpt:
			fields["excerpt"] = short
		}
	}

	if err := e.records.Update(ctx, r.record.ID, fields); err != nil {
		r.log.Error("Failed to save content", zap.Error(err))
	}
}

func (e *Engine) mapTaxonomies(ctx context.Context, r *run) {
	m := r.mapping
	e.ensureTerms(ctx, r, m.GenreTaxonomy, catalog.DescriptorNames(r.app.Genres))
	e.ensureTerms(ctx, r, m.CategoryTaxonomy, catalog.DescriptorNames(r.app.Categories))
	e.ensureTerms(ctx, r, m.DeveloperTaxonomy, r.app.Developers)
	e.ensureTerms(ctx, r, m.PublisherTaxonomy, r.app.Publishers)
	e.ensureTerms(ctx, r, m.PlatformTaxonomy, r.app.Platforms.Names())
}

func (e *Engine) ensureTerms(ctx context.Context, r *run, taxonomy string, names []string) {
	if taxonomy == "" || len(names) == 0 {
		return
	}
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = utils.SanitizeText(n); n != "" {
			clean = append(clean, n)
		}
	}
	if err := e.terms.EnsureTerms(ctx, r.record.ID, taxonomy, clean); err != nil {
		r.log.Warn("Failed to assign terms", zap.String("taxonomy", taxonomy), zap.Error(err))
	}
}

func (e *Engine) mapImages(ctx context.Context, r *run) {
	m := r.mapping
	app := r.app

	if m.SaveFeaturedImage && app.HeaderImage != "" {
		att, err := e.media.ResolveImage(ctx, app.HeaderImage, app.Name, "header")
		if err != nil {
			r.log.Warn("Failed to import header image", zap.Error(err))
		} else if err := e.records.Update(ctx, r.record.ID, map[string]any{"thumbnail_id": att.ID}); err != nil {
			r.log.Error("Failed to set featured image", zap.Error(err))
		}
	}

	if m.CapsuleMeta != "" && app.CapsuleImage != "" {
		att, err := e.media.ResolveImage(ctx, app.CapsuleImage, app.Name, "logo")
		if err != nil {
			r.log.Warn("Failed to import capsule image", zap.Error(err))
		} else {
			e.setMetaJSON(ctx, r, m.CapsuleMeta, att.Ref())
		}
	}

	if m.GalleryMeta != "" && len(app.Screenshots) > 0 {
		if refs := e.media.ResolveGallery(ctx, app.ScreenshotURLs(), app.Name); len(refs) > 0 {
			e.setMetaJSON(ctx, r, m.GalleryMeta, refs)
		}
	}

	if m.MovieMeta != "" {
		for _, movie := range app.Movies {
			if u := utils.SanitizeText(movie.MaxQuality()); u != "" {
				e.setMeta(ctx, r, m.MovieMeta, SecureURL(u))
				break
			}
		}
	}
}

func (e *Engine) mapMetadata(ctx context.Context, r *run) {
	m := r.mapping
	app := r.app

	if m.ReleaseDateMeta != "" && app.ReleaseDate.Date != "" {
		if v, ok := FormatReleaseDate(app.ReleaseDate.Date, m.ReleaseDateFormat); ok {
			e.setMeta(ctx, r, m.ReleaseDateMeta, v)
		} else {
			r.log.Debug("Skipping unparseable release date", zap.String("date", app.ReleaseDate.Date))
		}
	}

	if m.IsFreeMeta != "" && app.IsFree != nil {
		v := m.IsFreeFalseValue
		if *app.IsFree {
			v = m.IsFreeTrueValue
		}
		e.setMeta(ctx, r, m.IsFreeMeta, utils.SanitizeText(v))
	}

	if m.PriceMeta != "" && app.PriceOverview.FinalFormatted != "" {
		price := app.PriceOverview.FinalFormatted
		if m.RemoveCurrency {
			price = StripCurrency(price)
		}
		e.setMeta(ctx, r, m.PriceMeta, utils.SanitizeText(price))
	}
}

func (e *Engine) setMeta(ctx context.Context, r *run, key, value string) {
	if err := e.records.SetMeta(ctx, r.record.ID, key, value); err != nil {
		r.log.Error("Failed to save metadata", zap.String("key", key), zap.Error(err))
	}
}

func (e *Engine) setMetaJSON(ctx context.Context, r *run, key string, v any) {
	if err := e.records.SetMetaJSON(ctx, r.record.ID, key, v); err != nil {
		r.log.Error("Failed to save metadata", zap.String("key", key), zap.Error(err))
	}
}

func (e *Engine) emit(ctx context.Context, kind EventKind, r *run) {
	ev := Event{Kind: kind, RecordID: r.record.ID, ExternalID: r.externalID}
	for _, o := range e.observers {
		o.OnEvent(ctx, ev)
	}
}

// fetchMessage returns the client's message for catalog errors.
func fetchMessage(err error) string {
	var fe *catalog.FetchError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return fmt.Sprintf("catalog fetch failed: %v", err)
}
