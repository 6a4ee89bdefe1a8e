package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"game-importer/core/content"
	"game-importer/core/utils"

	"github.com/go-viper/mapstructure/v2"
)

// Short description destinations.
const (
	ShortToContent = "content"
	ShortToExcerpt = "excerpt"
	ShortToNone    = "none"
)

// Release date output formats.
const (
	DateString    = "string"
	DateUnix      = "unix"
	DateTimestamp = "timestamp"
)

// Mapping tells the engine where each catalog field goes.
type Mapping struct {
	RecordType   string `mapstructure:"record_type" json:"record_type" default:""`
	RecordStatus string `mapstructure:"record_status" json:"record_status" default:"publish"`

	GenreTaxonomy     string `mapstructure:"genre_taxonomy" json:"genre_taxonomy" default:""`
	CategoryTaxonomy  string `mapstructure:"category_taxonomy" json:"category_taxonomy" default:""`
	DeveloperTaxonomy string `mapstructure:"developer_taxonomy" json:"developer_taxonomy" default:""`
	PublisherTaxonomy string `mapstructure:"publisher_taxonomy" json:"publisher_taxonomy" default:""`
	PlatformTaxonomy  string `mapstructure:"platform_taxonomy" json:"platform_taxonomy" default:""`

	SaveFeaturedImage bool   `mapstructure:"save_featured_image" json:"save_featured_image" default:"false"`
	CapsuleMeta       string `mapstructure:"capsule_meta" json:"capsule_meta" default:""`
	GalleryMeta       string `mapstructure:"gallery_meta" json:"gallery_meta" default:""`
	MovieMeta         string `mapstructure:"movie_meta" json:"movie_meta" default:""`

	SaveDescription         bool   `mapstructure:"save_description" json:"save_description" default:"false"`
	DetailedDescriptionMeta string `mapstructure:"detailed_description_meta" json:"detailed_description_meta" default:""`
	SaveShortDescription    string `mapstructure:"save_short_description" json:"save_short_description" default:"excerpt"`
	DisableInlineImages     bool   `mapstructure:"disable_inline_images" json:"disable_inline_images" default:"false"`

	ReleaseDateMeta   string `mapstructure:"release_date_meta" json:"release_date_meta" default:""`
	ReleaseDateFormat string `mapstructure:"release_date_format" json:"release_date_format" default:"string"`

	IsFreeMeta       string `mapstructure:"is_free_meta" json:"is_free_meta" default:""`
	IsFreeTrueValue  string `mapstructure:"is_free_true_value" json:"is_free_true_value" default:"yes"`
	IsFreeFalseValue string `mapstructure:"is_free_false_value" json:"is_free_false_value" default:"no"`

	PriceMeta      string `mapstructure:"price_meta" json:"price_meta" default:""`
	RemoveCurrency bool   `mapstructure:"remove_currency" json:"remove_currency" default:"false"`
}

// General holds settings outside of the field mapping.
type General struct {
	DeleteImportedImages bool `mapstructure:"delete_imported_images" json:"delete_imported_images" default:"false"`
}

// DefaultMapping returns a Mapping filled with its defaults.
func DefaultMapping() Mapping {
	var m Mapping
	applyDefaults(&m)
	return m
}

// DecodeMapping decodes loosely typed option values on top of the defaults.
func DecodeMapping(raw map[string]any) (Mapping, error) {
	m := DefaultMapping()
	if err := decode(raw, &m); err != nil {
		return Mapping{}, fmt.Errorf("decode mapping: %w", err)
	}
	m.RecordType = strings.TrimSpace(m.RecordType)
	return m, nil
}

// DecodeGeneral decodes the general namespace on top of its defaults.
func DecodeGeneral(raw map[string]any) (General, error) {
	var g General
	applyDefaults(&g)
	if err := decode(raw, &g); err != nil {
		return General{}, fmt.Errorf("decode general settings: %w", err)
	}
	return g, nil
}

// Validate checks the enumerated values of the mapping.
func (m Mapping) Validate() error {
	if m.RecordStatus != "" && !content.IsValidStatus(m.RecordStatus) {
		return fmt.Errorf("invalid record_status %q", m.RecordStatus)
	}
	switch m.SaveShortDescription {
	case ShortToContent, ShortToExcerpt, ShortToNone:
	default:
		return fmt.Errorf("invalid save_short_description %q", m.SaveShortDescription)
	}
	switch m.ReleaseDateFormat {
	case DateString, DateUnix, DateTimestamp:
	default:
		return fmt.Errorf("invalid release_date_format %q", m.ReleaseDateFormat)
	}
	return nil
}

// DefaultStatus returns the status new records are created with.
func (m Mapping) DefaultStatus() string {
	if m.RecordStatus == "" {
		return content.StatusPublish
	}
	return m.RecordStatus
}

func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(boolStringHook),
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// boolStringHook accepts checkbox spellings such as "yes", "on" and "" for bools.
func boolStringHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return utils.ToBool(reflect.ValueOf(data).String()), nil
}

// applyDefaults sets every field from its `default` tag.
func applyDefaults(ptr any) {
	v := reflect.ValueOf(ptr).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		def, ok := t.Field(i).Tag.Lookup("default")
		if !ok {
			continue
		}
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(def)
		case reflect.Bool:
			b, _ := strconv.ParseBool(def)
			f.SetBool(b)
		}
	}
}
