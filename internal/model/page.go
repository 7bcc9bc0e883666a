package model

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for total items split by limit.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Pages: pages}
}

// TaskList is one page of tasks. Results is the number of tasks in Data;
// Total counts every match.
type TaskList struct {
	Total      int         `json:"total"`
	Results    int         `json:"results"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       []Task      `json:"data"`
}

type NotificationList struct {
	Total      int            `json:"total"`
	Pagination Pagination     `json:"pagination"`
	Data       []Notification `json:"data"`
}
