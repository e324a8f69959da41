package models

type ErrorResponse struct {
	Error string     `json:"error"`
	Kind  ResultKind `json:"kind,omitempty"`
	Code  int        `json:"code"`
}

type LanguageOption struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type LanguageResponse struct {
	Languages []LanguageOption `json:"languages"`
	Default   string           `json:"default"`
}

type RewritePreviewResponse struct {
	Language   string   `json:"language"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	Text       string   `json:"text"`
}
