package linkwarden

// Link is a bookmark as returned by Linkwarden. Missing string fields decode to "".
type Link struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
	TextContent string      `json:"textContent"`
	Tags        []Tag       `json:"tags"`
	Collection  *Collection `json:"collection,omitempty"`
}

type Tag struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type Collection struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	OwnerID int    `json:"ownerId,omitempty"`
}

// TagNames returns the names of the link's current tags.
func (l Link) TagNames() []string {
	names := make([]string, 0, len(l.Tags))
	for _, t := range l.Tags {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return names
}

// listResponse is the envelope Linkwarden wraps list results in.
type listResponse struct {
	Response []Link `json:"response"`
}

// updateRequest is the PUT /links/{id} body. Tags replace the link's tag set.
type updateRequest struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Tags        []Tag      `json:"tags"`
	Collection  Collection `json:"collection"`
}
