package service

import "github.com/google/uuid"

// isUUID guards lookups by path id: the id columns are UUID typed and
// Postgres rejects malformed text with 22P02 instead of matching nothing.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
