package likes

// ToggleResult reports the like state after a toggle.
type ToggleResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
