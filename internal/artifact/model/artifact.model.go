package model

import "encoding/json"

// Artifact is a schema-flexible document: whatever fields the client
// submitted, stored verbatim, plus the store id and the denormalized like
// counter. Fields holds the raw stored document.
type Artifact struct {
	ID        string
	LikeCount int64
	Fields    json.RawMessage
}

// MarshalJSON flattens the stored document and overlays the id and like
// counter, so responses look like the original collection documents.
func (a Artifact) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{})
	if len(a.Fields) > 0 {
		if err := json.Unmarshal(a.Fields, &doc); err != nil {
			return nil, err
		}
	}
	doc["_id"] = a.ID
	doc["likeCount"] = a.LikeCount
	return json.Marshal(doc)
}

type CreateResponse struct {
	Success    bool   `json:"success"`
	InsertedID string `json:"insertedId"`
}

type OwnedListResponse struct {
	Success   bool       `json:"success"`
	Artifacts []Artifact `json:"artifacts"`
}

type MutationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

type ToggleRequest struct {
	UserID string `json:"userId"`
}
