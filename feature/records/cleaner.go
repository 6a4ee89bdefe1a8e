package records

import (
	"encoding/json"
	"strings"

	"game-importer/core/content"
	"game-importer/core/utils"
)

// CollectMediaIDs returns the attachment ids a record owns: its featured
// image plus every id referenced by the given metadata keys. Values may be
// {id, url} objects, lists of them (nested once more at most) or bare ids.
func CollectMediaIDs(rec *content.Record, meta map[string]string, keys ...string) []uint {
	seen := map[uint]bool{}
	var ids []uint
	add := func(id uint) {
		if id != 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if rec.ThumbnailID != nil {
		add(*rec.ThumbnailID)
	}

	for _, key := range keys {
		if key == "" {
			continue
		}
		raw, ok := meta[key]
		if !ok {
			continue
		}
		for _, id := range idsFromValue(raw) {
			add(id)
		}
	}
	return ids
}

func idsFromValue(raw string) []uint {
	raw = strings.TrimSpace(raw)
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}

	switch val := v.(type) {
	case float64:
		return []uint{utils.ToID(val)}
	case map[string]any:
		return idFromObject(val)
	case []any:
		var ids []uint
		for _, item := range val {
			switch it := item.(type) {
			case map[string]any:
				ids = append(ids, idFromObject(it)...)
			case []any:
				for _, sub := range it {
					if obj, ok := sub.(map[string]any); ok {
						ids = append(ids, idFromObject(obj)...)
					}
				}
			}
		}
		return ids
	}
	return nil
}

func idFromObject(obj map[string]any) []uint {
	if id, ok := obj["id"]; ok {
		return []uint{utils.ToID(id)}
	}
	return nil
}
