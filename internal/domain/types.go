package domain

import "time"

type SessionID string
type ProductID int64

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Timestamp = time.Time
