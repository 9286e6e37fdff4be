package models

// ChatRequest is the payload accepted by the JSON test endpoint.
type ChatRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

// ChatResponse is the reply returned by the JSON test endpoint.
type ChatResponse struct {
	Reply string `json:"reply"`
}
