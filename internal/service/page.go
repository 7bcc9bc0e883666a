package service

import "math"

// pageOffset is the number of rows before page. Pages too far out to address
// saturate at math.MaxInt, which the store answers with an empty page.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
