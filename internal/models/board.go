package models

import "time"

// Board is the JSON import/export document.
//
// The shape matches files exported by the browser version of the board, so
// those files import unchanged.
type Board struct {
	Categories []string    `json:"categories"`
	Items      []BoardItem `json:"items"`
}

// BoardItem is one exported item.
type BoardItem struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Provider string `json:"provider"`
	MediaID  string `json:"mediaId,omitempty"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Category string `json:"category"`
	AddedAt  int64  `json:"addedAt"`
}

// AddedTime converts the unix-millisecond timestamp, returning the zero time when unset.
func (b BoardItem) AddedTime() time.Time {
	if b.AddedAt <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(b.AddedAt)
}
