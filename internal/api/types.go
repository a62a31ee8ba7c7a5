package api

// CountResponse 是 GET /api/documents/count 的响应
type CountResponse struct {
	Count int `json:"count"`
}

// ChatRequest 是 POST /api/chat 的请求体
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse 是 POST /api/chat 的成功响应
type ChatResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse 是后端失败时可能返回的 JSON
type ErrorResponse struct {
	Error string `json:"error"`
}
