package dto

// Suggestion 搜索建议项
type Suggestion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// SuggestionListResponse 搜索建议响应
type SuggestionListResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
