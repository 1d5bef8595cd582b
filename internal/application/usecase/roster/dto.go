package roster

// Input

type BuildInput struct {
	UserID string `json:"userId"`
}
