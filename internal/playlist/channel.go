package playlist

import "strings"

// DefaultCountry is the country tag seeded into new channel drafts.
const DefaultCountry = "bra"

// Channel is a single playlist entry. URL holds ranked alternative stream
// sources tried in order by the playback client, so slice order matters.
// Category is a soft reference to a Category.ID: it is not enforced at
// save time and dangling references only surface as export warnings.
type Channel struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Logo     string   `json:"logo"`
	URL      []string `json:"url"`
	Guide    string   `json:"guide"`
	Category string   `json:"category"`
	Country  string   `json:"country"`
}

// NewDraftChannel seeds an empty channel draft for the editor: one blank
// URL slot, the default country tag and the given category preselected.
func NewDraftChannel(category string) Channel {
	return Channel{
		URL:      []string{""},
		Category: category,
		Country:  DefaultCountry,
	}
}

// Clone returns a deep copy so in-progress edits cannot mutate the stored
// entity until submit.
func (c Channel) Clone() Channel {
	out := c
	out.URL = make([]string, len(c.URL))
	copy(out.URL, c.URL)
	return out
}

// Duplicate seeds a new draft from an existing channel. The copy is a
// creation, not an update: the operator still has to resolve the ID if the
// suffixed one collides.
func (c Channel) Duplicate() Channel {
	out := c.Clone()
	out.ID = c.ID + "-copy"
	out.Name = c.Name + " (Copy)"
	return out
}

// NewChannel validates a channel draft as submitted by an editor and
// returns the value to persist. Blank and whitespace-only URL slots are
// filtered out here, at save time, not while the list is being edited.
func NewChannel(draft Channel) (Channel, error) {
	if draft.ID == "" {
		return Channel{}, ErrEmptyID
	}
	if draft.Name == "" {
		return Channel{}, ErrEmptyName
	}

	urls := make([]string, 0, len(draft.URL))
	for _, u := range draft.URL {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return Channel{}, ErrNoStreamURL
	}

	out := draft.Clone()
	out.URL = urls
	return out, nil
}
