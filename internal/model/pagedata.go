package model

// Page is one page of a paginated post listing. NextPage and PrevPage are 0
// when there is no such page.
type Page struct {
	Posts       []*Post `json:"posts"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalPosts  int     `json:"totalPosts"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
	NextPage    int     `json:"nextPage,omitempty"`
	PrevPage    int     `json:"prevPage,omitempty"`
}
