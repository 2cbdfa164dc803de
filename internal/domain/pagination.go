package domain

// PageQuery là tham số phân trang chung cho các API danh sách.
type PageQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}

// Normalize đưa page/limit về giá trị hợp lệ (mặc định page=1, limit=10).
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page là envelope trả về của các API danh sách: {total, page, totalPages, data}.
type Page struct {
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Data       interface{} `json:"data"`
}

func NewPage(total, page, limit int, data interface{}) Page {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page{Total: total, Page: page, TotalPages: totalPages, Data: data}
}
