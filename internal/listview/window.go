package listview

// Ellipsis is the marker inserted by PageWindowEllipsis where page
// numbers were collapsed.
const Ellipsis = -1

// PageWindow computes the bounded run of page numbers shown by the
// pager: at most maxVisible numbers centred on current, clamped to
// [1, totalPages].
func PageWindow(current, totalPages, maxVisible int) []int {
	if totalPages < 1 || maxVisible < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := current - maxVisible/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}

// PageWindowEllipsis is the variant used on large collections: the
// centred window plus pinned first and last pages, with Ellipsis
// markers where the run is not contiguous.
func PageWindowEllipsis(current, totalPages, maxVisible int) []int {
	window := PageWindow(current, totalPages, maxVisible)
	if len(window) == 0 {
		return nil
	}

	result := make([]int, 0, len(window)+4)

	if window[0] > 1 {
		result = append(result, 1)
		if window[0] > 2 {
			result = append(result, Ellipsis)
		}
	}

	result = append(result, window...)

	last := window[len(window)-1]
	if last < totalPages {
		if last < totalPages-1 {
			result = append(result, Ellipsis)
		}
		result = append(result, totalPages)
	}

	return result
}
