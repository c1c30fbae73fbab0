package apperror

type Response struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
