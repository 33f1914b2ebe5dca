package httperr

// Response is the error envelope the error-handling middleware emits for
// errors attached to the gin context and for recovered panics.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}
