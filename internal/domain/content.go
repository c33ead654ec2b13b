package domain

// Notice is a shop announcement shown in the app. Pure configuration-like
// content; the admin view replaces matching fields by id.
type Notice struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Banner is a rotating main-screen banner. Rotation timing is a client
// concern; the core only stores the records.
type Banner struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Text    string `json:"text"`
	SubText string `json:"sub_text"`
}

// NoticePatch carries the fields an admin may replace on a notice. Nil
// fields are left untouched.
type NoticePatch struct {
	Type    *string `json:"type,omitempty"`
	Title   *string `json:"title,omitempty"`
	Date    *string `json:"date,omitempty"`
	Content *string `json:"content,omitempty"`
}

type BannerPatch struct {
	URL     *string `json:"url,omitempty"`
	Text    *string `json:"text,omitempty"`
	SubText *string `json:"sub_text,omitempty"`
}
