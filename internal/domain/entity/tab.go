package entity

import "strconv"

// TabID is the host-assigned identifier of a live browser tab.
// It is only meaningful for the lifetime of the browser process: the host
// reassigns ids on restart and never resurrects a closed id.
type TabID int64

// NoTab is the zero TabID, used when an entry has no live tab.
const NoTab TabID = 0

// String implements fmt.Stringer.
func (id TabID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// TabInfo is the host's view of a live tab.
type TabInfo struct {
	ID     TabID  `json:"id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// ScrollPosition is a page scroll offset in CSS pixels.
type ScrollPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsZero reports whether there is nothing to restore.
func (p ScrollPosition) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Direction selects the neighbour slot for cycling.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// ParseDirection maps user input onto a Direction, defaulting to next.
func ParseDirection(s string) Direction {
	switch s {
	case "prev", "previous", "back":
		return DirectionPrev
	default:
		return DirectionNext
	}
}
