package http

// Request payloads with their validation rules. Multipart endpoints fill
// these from form fields, JSON endpoints decode into them directly.

// createPlaceRequest is the multipart form of POST /api/places.
type createPlaceRequest struct {
	Title       string `validate:"required"`
	Description string `validate:"required,min=5"`
	Address     string `validate:"required"`
}

// updatePlaceRequest is the JSON body of PATCH /api/places/{pid}.
type updatePlaceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

// signupRequest is the multipart form of POST /api/users/signup.
type signupRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// loginRequest is the JSON body of POST /api/users/login. Credentials are
// judged by the service, not the validator; missing fields simply fail the
// password check.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
