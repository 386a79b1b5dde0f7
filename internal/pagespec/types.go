package pagespec

import "fmt"

// Mode controls how a section's pages are merged into the output.
type Mode int

const (
	// Append places pages after everything already in the output.
	Append Mode = iota
	// Interleave threads pages between the existing output pages, starting
	// after the first one.
	Interleave
)

func (m Mode) String() string {
	switch m {
	case Append:
		return "append"
	case Interleave:
		return "interleave"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Rotation is a clockwise page rotation in degrees: 0, 90, 180 or 270.
type Rotation int

// NormalizeRotation maps any multiple of 90 onto 0, 90, 180 or 270
// (-90 becomes 270, 450 becomes 90).
func NormalizeRotation(deg int) (Rotation, error) {
	n := ((deg % 360) + 360) % 360
	if n%90 != 0 {
		return 0, &Error{Kind: ErrInvalidRotation, Msg: fmt.Sprintf("%d is not a multiple of 90 degrees", deg)}
	}
	return Rotation(n), nil
}

// PageRequest is one resolved output page.
type PageRequest struct {
	SourceID int
	Index    int // 0-based
	Rotation Rotation
}

func (r PageRequest) String() string {
	return fmt.Sprintf("src%d:%d@%d", r.SourceID, r.Index+1, r.Rotation)
}

// Section holds the pages requested from one source, in command-line order.
type Section struct {
	SourceID int
	Mode     Mode
	Requests []PageRequest
}
