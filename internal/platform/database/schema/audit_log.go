package schema

// AuditLogTable represents the 'audit.log' table
type AuditLogTable struct {
	Table        string
	ID           string
	Action       string
	Status       string
	Message      string
	ActorID      string
	TodoID       string
	TargetUserID string
	RequestID    string
	CreatedAt    string
}

// AuditLog is the schema definition for audit.log
var AuditLog = AuditLogTable{
	Table:        "audit.log",
	ID:           "id",
	Action:       "action",
	Status:       "status",
	Message:      "message",
	ActorID:      "actorid",
	TodoID:       "todoid",
	TargetUserID: "targetuserid",
	RequestID:    "requestid",
	CreatedAt:    "createdat",
}
