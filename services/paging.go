package services

// pageBounds computes the [start, end) slice bounds for a 1-based page
// over total items. Out-of-range pages yield an empty range.
func pageBounds(total, page, limit int) (int, int) {
	if limit <= 0 {
		return 0, 0
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return 0, 0
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}
