package models

// CVDocument is the assembled document: one heading followed by paragraphs
// in source order. It is built once and never mutated after serialization.
type CVDocument struct {
	Title      string   `json:"title"`
	Language   Language `json:"language,omitempty"`
	Paragraphs []string `json:"paragraphs"`
}
