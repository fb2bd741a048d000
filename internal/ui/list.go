package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = categoryItem{}
)

// categoryItem wraps a category filter to implement [list.Item].
type categoryItem struct {
	name  string
	count int
}

func (i categoryItem) FilterValue() string { return i.name }
func (i categoryItem) Title() string       { return i.name }
func (i categoryItem) Description() string {
	if i.count == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", i.count)
}
