package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Response codes used by the envelope
const (
	CodeSuccess = "Success"
	CodeOverlap = "Overlap Request"
)

// Envelope is the { code, data } body returned by reads and creates
type Envelope struct {
	Code string `json:"code"`
	Data any    `json:"data"`
}

// MutationResult is the minimal body of idempotent mutations
type MutationResult struct {
	Code string              `json:"code"`
	ID   *primitive.ObjectID `json:"_id,omitempty"`
}

// Succeeded builds a Success result carrying the new id
func Succeeded(id primitive.ObjectID) MutationResult {
	return MutationResult{Code: CodeSuccess, ID: &id}
}

// Result reports Success when ok and Overlap otherwise
func Result(ok bool) MutationResult {
	if ok {
		return MutationResult{Code: CodeSuccess}
	}
	return MutationResult{Code: CodeOverlap}
}
