package models

type ScreenResponse struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Documents []DocumentInfo `json:"documents"`
}

type DocumentInfo struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Status       string `json:"status"`
}

type ResultResponse struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Results []ItemResult `json:"results"`
}

// ItemResult pairs a source document with its outcome, in upload order.
type ItemResult struct {
	DocumentID   string       `json:"document_id"`
	Filename     string       `json:"filename"`
	Status       string       `json:"status"`
	Result       *MatchResult `json:"result,omitempty"`
	ErrorKind    string       `json:"error_kind,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}
