package pagespec

import "strconv"

// SpreadFix returns the rotation and page tokens that restore reading order
// for a booklet scanned one printer spread at a time. The result is meant to
// be passed to ParseSection as if the user had typed it.
//
// Odd pages come first, from the back of the document towards the front,
// followed by the even pages from the front. Rotation starts at 90 degrees
// and changes sign after every page.
func SpreadFix(pageCount int) ([]string, error) {
	if pageCount <= 0 || pageCount%4 != 0 {
		return nil, &Error{Kind: ErrInvalidSpreadPageCount, PageCount: pageCount}
	}

	tokens := make([]string, 0, 2*pageCount)
	rot := 90
	emit := func(page int) {
		tokens = append(tokens, "R"+strconv.Itoa(rot), strconv.Itoa(page))
		rot = -rot
	}

	for page := pageCount - 1; page >= 1; page -= 2 {
		emit(page)
	}
	for page := 2; page <= pageCount; page += 2 {
		emit(page)
	}
	return tokens, nil
}
