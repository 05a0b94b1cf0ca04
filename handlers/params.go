package handlers

import "strconv"

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

func parseIntQuery(values map[string][]string, key string) *int {
	if raw, ok := values[key]; ok && len(raw) > 0 {
		if v, err := strconv.Atoi(raw[0]); err == nil {
			return &v
		}
	}
	return nil
}

func parseBoolQuery(values map[string][]string, key string) *bool {
	if raw, ok := values[key]; ok && len(raw) > 0 {
		if v, err := strconv.ParseBool(raw[0]); err == nil {
			return &v
		}
	}
	return nil
}

func firstQuery(values map[string][]string, key string) string {
	if raw, ok := values[key]; ok && len(raw) > 0 {
		return raw[0]
	}
	return ""
}

func pageParams(values map[string][]string) (int, int) {
	page, pageSize := 0, 0
	if v := parseIntQuery(values, "page"); v != nil {
		page = *v
	}
	if v := parseIntQuery(values, "page_size"); v != nil {
		pageSize = *v
	}
	return page, pageSize
}
