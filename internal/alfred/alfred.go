// Package alfred emits Script Filter JSON.
// See https://www.alfredapp.com/help/workflows/inputs/script-filter/json/
package alfred

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Item is one row in Alfred's result list.
type Item struct {
	// Title is the large text displayed as the main item title.
	Title string `json:"title"`
	// Subtitle is the smaller text displayed below the title.
	Subtitle string `json:"subtitle"`
	// Arg is passed to connected output actions when the item is actioned.
	Arg string `json:"arg"`
	// Valid dims the item and disables Enter when false.
	Valid bool `json:"valid"`
	// Autocomplete is inserted into the search field on Tab.
	Autocomplete string `json:"autocomplete,omitempty"`
	// Icon points at an image file; Alfred falls back to the workflow icon.
	Icon *Icon `json:"icon,omitempty"`
	// Mods override arg/subtitle per modifier key (cmd/alt/ctrl/shift/fn).
	Mods map[string]Mod `json:"mods,omitempty"`
	// Text supplies copy (Cmd+C) and Large Type (Cmd+L) values.
	Text map[string]string `json:"text,omitempty"`
	// QuicklookURL enables Shift/Cmd+Y preview.
	QuicklookURL string `json:"quicklookurl,omitempty"`
}

// Icon wraps an icon path.
type Icon struct {
	Path string `json:"path"`
}

// Mod describes one modifier-key override.
type Mod struct {
	Valid    bool   `json:"valid"`
	Arg      string `json:"arg"`
	Subtitle string `json:"subtitle"`
}

// NewItem builds a valid item with the given title/subtitle/arg.
func NewItem(title, subtitle, arg string) Item {
	return Item{Title: title, Subtitle: subtitle, Arg: arg, Valid: true}
}

// WithIcon sets the item icon path when non-empty.
func (i Item) WithIcon(path string) Item {
	if path != "" {
		i.Icon = &Icon{Path: path}
	}
	return i
}

// Output writes the item list as Script Filter JSON.
func Output(w io.Writer, items []Item) error {
	doc := struct {
		Items []Item `json:"items"`
	}{Items: items}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing items: %w", err)
	}
	return nil
}

// OutputError writes a single invalid item describing a failure.
func OutputError(w io.Writer, title, subtitle string) error {
	item := Item{Title: title, Subtitle: subtitle, Valid: false}
	return Output(w, []Item{item})
}

// Print writes items to stdout, logging instead of failing on encode errors.
func Print(items []Item) {
	if err := Output(os.Stdout, items); err != nil {
		fmt.Fprintf(os.Stderr, "alfred output: %v\n", err)
	}
}
