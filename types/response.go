package types

type ApiResponse struct {
	Message  string      `json:"message"`
	Status   int         `json:"status"`
	Redirect string      `json:"redirect,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
