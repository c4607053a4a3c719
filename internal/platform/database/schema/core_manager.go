package schema

// CoreManagerTable represents the 'core.manager' table
type CoreManagerTable struct {
	Table     string
	ID        string
	TodoID    string
	UserID    string
	CreatedAt string
}

// CoreManager is the schema definition for core.manager
var CoreManager = CoreManagerTable{
	Table:     "core.manager",
	ID:        "id",
	TodoID:    "todoid",
	UserID:    "userid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t CoreManagerTable) Columns() []string {
	return []string{t.ID, t.TodoID, t.UserID, t.CreatedAt}
}
