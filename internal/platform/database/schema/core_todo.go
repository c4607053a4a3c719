package schema

// CoreTodoTable represents the 'core.todo' table
type CoreTodoTable struct {
	Table     string
	ID        string
	AuthorID  string
	Title     string
	Contents  string
	Weather   string
	CreatedAt string
	UpdatedAt string
}

// CoreTodo is the schema definition for core.todo
var CoreTodo = CoreTodoTable{
	Table:     "core.todo",
	ID:        "id",
	AuthorID:  "authorid",
	Title:     "title",
	Contents:  "contents",
	Weather:   "weather",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreTodoTable) Columns() []string {
	return []string{t.ID, t.AuthorID, t.Title, t.Contents, t.Weather, t.CreatedAt, t.UpdatedAt}
}
