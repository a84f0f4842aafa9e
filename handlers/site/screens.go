package site

import "encoding/json"

// Field is one input of a console form
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"` // text, textarea, select, date, checkbox, image, url, number
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
	// Source names another screen whose records fill a select
	Source string `json:"source,omitempty"`
	// Path reads the edit value from the record when it differs from Name
	Path string `json:"path,omitempty"`
}

// Column is one table column; Path is a dotted JSON path into the record
type Column struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Screen describes one console CRUD page
type Screen struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Singular string   `json:"singular"`
	Endpoint string   `json:"endpoint"`
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Fields   []Field  `json:"fields"`
	Columns  []Column `json:"columns"`
	// Toggle is the PATCH suffix after /:id that flips isActive, when the entity supports it
	Toggle *string `json:"toggle,omitempty"`
}

func suffix(s string) *string { return &s }

// Screens lists every console entity page in navigation order
var Screens = []Screen{
	{
		Slug: "assets", Title: "Assets", Singular: "asset", Endpoint: "/admin/assets", Key: "assets", Label: "title",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: "text", Required: true},
			{Name: "type", Label: "Type", Kind: "select", Required: true, Options: []string{"GALLERY", "RESULT", "BANNER", "POSTER", "IMAGE"}},
			{Name: "url", Label: "File", Kind: "image", Required: true, Path: "fileUrl"},
			{Name: "categoryGroup", Label: "Category group", Kind: "text"},
			{Name: "subCategory", Label: "Sub category", Kind: "text"},
			{Name: "rank", Label: "Rank", Kind: "text"},
		},
		Columns: []Column{{"Preview", "fileUrl"}, {"Title", "title"}, {"Type", "type"}, {"Added", "createdAt"}},
	},
	{
		Slug: "courses", Title: "Courses", Singular: "course", Endpoint: "/admin/courses", Key: "courses", Label: "title",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: "text", Required: true},
			{Name: "description", Label: "Description", Kind: "textarea", Required: true},
		},
		Columns: []Column{{"Title", "title"}, {"Batches", "_count.batches"}, {"Active", "isActive"}, {"Added", "createdAt"}},
		Toggle:  suffix("/status"),
	},
	{
		Slug: "batches", Title: "Batches", Singular: "batch", Endpoint: "/admin/batches", Key: "batches", Label: "name",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: "text", Required: true},
			{Name: "courseId", Label: "Course", Kind: "select", Required: true, Source: "courses"},
			{Name: "startDate", Label: "Start date", Kind: "date", Required: true},
			{Name: "endDate", Label: "End date", Kind: "date"},
		},
		Columns: []Column{{"Name", "name"}, {"Course", "course.title"}, {"Starts", "startDate"}, {"Active", "isActive"}},
	},
	{
		Slug: "faculty", Title: "Faculty", Singular: "faculty member", Endpoint: "/admin/faculty", Key: "faculty", Label: "name",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: "text", Required: true},
			{Name: "designation", Label: "Designation", Kind: "text", Required: true},
			{Name: "category", Label: "Category", Kind: "select", Required: true, Options: []string{"TEACHING", "LEADERSHIP"}},
			{Name: "bio", Label: "Bio", Kind: "textarea"},
			{Name: "photoUrl", Label: "Photo", Kind: "image", Required: true, Path: "photo.fileUrl"},
		},
		Columns: []Column{{"Photo", "photo.fileUrl"}, {"Name", "name"}, {"Designation", "designation"}, {"Category", "category"}},
	},
	{
		Slug: "notifications", Title: "Notifications", Singular: "notification", Endpoint: "/admin/notifications", Key: "notifications", Label: "message",
		Fields: []Field{
			{Name: "message", Label: "Message", Kind: "textarea", Required: true},
			{Name: "link", Label: "Link", Kind: "url"},
			{Name: "type", Label: "Type", Kind: "select", Options: []string{"ANNOUNCEMENT", "POPUP"}},
		},
		Columns: []Column{{"Message", "message"}, {"Type", "type"}, {"Active", "isActive"}, {"Added", "createdAt"}},
		Toggle:  suffix(""),
	},
	{
		Slug: "videos", Title: "Videos", Singular: "video", Endpoint: "/admin/videos", Key: "videos", Label: "title",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: "text", Required: true},
			{Name: "videoUrl", Label: "Video URL", Kind: "url", Required: true},
			{Name: "type", Label: "Format", Kind: "select", Options: []string{"LONG_FORM", "SHORT"}},
			{Name: "category", Label: "Category", Kind: "select", Options: []string{"INSTITUTE", "STUDENT_STORY", "ACHIEVEMENT", "ALUMNI", "FACULTY"}},
			{Name: "description", Label: "Description", Kind: "textarea"},
		},
		Columns: []Column{{"Title", "title"}, {"Format", "type"}, {"Category", "category"}, {"Platform", "platform"}},
	},
}

// FindScreen looks a screen up by slug
func FindScreen(slug string) (Screen, bool) {
	for _, s := range Screens {
		if s.Slug == slug {
			return s, true
		}
	}
	return Screen{}, false
}

// JSON is the descriptor handed to the console script
func (s Screen) JSON() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}
