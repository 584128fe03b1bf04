package core

// Post represents the post type of the tutorial schema, it always links to its author.
type Post struct {
	Title     string
	Likes     int32
	Published bool
	Author    Account
}
