package pagespec

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedToken        = errors.New("unexpected token")
	ErrInvalidRotation        = errors.New("invalid rotation")
	ErrPageOutOfRange         = errors.New("page out of range")
	ErrInvalidSpreadPageCount = errors.New("spread page count is not a multiple of 4")
)

// Error describes a page-spec failure. Kind is one of the Err* sentinels.
type Error struct {
	Kind      error
	Token     string
	Page      int
	PageCount int
	Msg       string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	case errors.Is(e.Kind, ErrPageOutOfRange):
		return fmt.Sprintf("invalid page number %d in %q: document has %d pages", e.Page, e.Token, e.PageCount)
	case errors.Is(e.Kind, ErrInvalidSpreadPageCount):
		return fmt.Sprintf("%s: document has %d pages", e.Kind.Error(), e.PageCount)
	case e.Token != "":
		return fmt.Sprintf("%s %q", e.Kind.Error(), e.Token)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func unexpected(token string) error {
	return &Error{Kind: ErrUnexpectedToken, Token: token}
}

func invalidRotation(token, format string, args ...any) error {
	return &Error{Kind: ErrInvalidRotation, Token: token, Msg: fmt.Sprintf(format, args...)}
}

func outOfRange(token string, page, pageCount int) error {
	return &Error{Kind: ErrPageOutOfRange, Token: token, Page: page, PageCount: pageCount}
}
