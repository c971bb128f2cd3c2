package models

// NavLink is one navigation entry with its highlight state
type NavLink struct {
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// NavState is the navigation highlighting for a page path
type NavState struct {
	CurrentPage string    `json:"currentPage"`
	Links       []NavLink `json:"links"`
}

// StatFramesQuery asks for the counter animation of a statistic
type StatFramesQuery struct {
	Target int `form:"target" binding:"min=0,max=1000000000"`
}

// StatFrames are the successive values a statistics counter displays
type StatFrames struct {
	Target     int   `json:"target"`
	IntervalMs int   `json:"intervalMs"`
	Frames     []int `json:"frames"`
}
