package dto

// Every endpoint receives a POST body of the shape {"addition": {...}}.

// StatusRequest is the request body for /api/status.
type StatusRequest struct {
	Addition StatusAddition `json:"addition" binding:"required"`
}

// StatusAddition carries the account id for a status read.
type StatusAddition struct {
	UUID string `json:"uuid" binding:"required,uuid"`
}

// AmountRequest is the request body for /api/add and /api/subtract.
type AmountRequest struct {
	Addition AmountAddition `json:"addition" binding:"required"`
}

// AmountAddition carries the account id and a non-negative integer amount.
// Value is a pointer so that a missing field fails binding while an explicit
// zero passes.
type AmountAddition struct {
	UUID  string `json:"uuid" binding:"required,uuid"`
	Value *int64 `json:"value" binding:"required,gte=0"`
}

// StatusResponse is the success addition payload for /api/status.
type StatusResponse struct {
	Balance int64 `json:"balance"`
	Hold    int64 `json:"hold"`
	Status  bool  `json:"status"`
}
