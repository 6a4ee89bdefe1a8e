package catalog

// App is one catalog item as returned by the item-detail endpoint.
type App struct {
	Name                string        `json:"name"`
	DetailedDescription string        `json:"detailed_description"`
	ShortDescription    string        `json:"short_description"`
	CapsuleImage        string        `json:"capsule_image"`
	HeaderImage         string        `json:"header_image"`
	Screenshots         []Screenshot  `json:"screenshots"`
	Movies              []Movie       `json:"movies"`
	Genres              []Descriptor  `json:"genres"`
	Categories          []Descriptor  `json:"categories"`
	Developers          []string      `json:"developers"`
	Publishers          []string      `json:"publishers"`
	Platforms           Platforms     `json:"platforms"`
	IsFree              *bool         `json:"is_free"`
	PriceOverview       PriceOverview `json:"price_overview"`
	ReleaseDate         ReleaseDate   `json:"release_date"`
}

// Descriptor is a genre or category entry; Description carries the display name.
type Descriptor struct {
	ID          any    `json:"id"`
	Description string `json:"description"`
}

// Screenshot holds the full-size image of one screenshot.
type Screenshot struct {
	PathFull string `json:"path_full"`
}

// Movie holds the video renditions of one trailer.
type Movie struct {
	Name string            `json:"name"`
	MP4  map[string]string `json:"mp4"`
}

// MaxQuality returns the maximum-quality MP4 URL, if any.
func (m Movie) MaxQuality() string {
	return m.MP4["max"]
}

// Platforms is the availability flag set of an item.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Names returns the platform term names in Windows, Mac, Linux order.
func (p Platforms) Names() []string {
	var names []string
	if p.Windows {
		names = append(names, "Windows")
	}
	if p.Mac {
		names = append(names, "Mac")
	}
	if p.Linux {
		names = append(names, "Linux")
	}
	return names
}

// PriceOverview carries the store-formatted price.
type PriceOverview struct {
	FinalFormatted string `json:"final_formatted"`
}

// ReleaseDate carries the release date text, e.g. "21 Mar, 2019".
type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// ScreenshotURLs returns the full-size screenshot URLs in catalog order.
func (a *App) ScreenshotURLs() []string {
	urls := make([]string, 0, len(a.Screenshots))
	for _, s := range a.Screenshots {
		urls = append(urls, s.PathFull)
	}
	return urls
}

// DescriptorNames returns the Description of every entry.
func DescriptorNames(items []Descriptor) []string {
	names := make([]string, 0, len(items))
	for _, d := range items {
		names = append(names, d.Description)
	}
	return names
}
