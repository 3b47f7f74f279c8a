package request

// CreateGameRequest is the request body for starting a standard game
type CreateGameRequest struct {
	Domain string `json:"domain"`

	// Word optionally pins the answer; ignored unless it is in the
	// domain's pool.
	Word string `json:"word,omitempty"`
}

// GuessRequest is the request body for guessing a letter
type GuessRequest struct {
	Letter string `json:"letter"`
}

// ClaimHandleRequest is the request body for claiming a handle
type ClaimHandleRequest struct {
	Handle string `json:"handle"`
}

// CreateShareLinkRequest is the request body for creating a share link
type CreateShareLinkRequest struct {
	Target string `json:"target"`
}
