package schema

// CoreCommentTable represents the 'core.comment' table
type CoreCommentTable struct {
	Table     string
	ID        string
	TodoID    string
	AuthorID  string
	Contents  string
	CreatedAt string
	UpdatedAt string
}

// CoreComment is the schema definition for core.comment
var CoreComment = CoreCommentTable{
	Table:     "core.comment",
	ID:        "id",
	TodoID:    "todoid",
	AuthorID:  "authorid",
	Contents:  "contents",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreCommentTable) Columns() []string {
	return []string{t.ID, t.TodoID, t.AuthorID, t.Contents, t.CreatedAt, t.UpdatedAt}
}
