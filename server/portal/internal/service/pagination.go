package service

// PaginationRequest is the common page/size query fragment.
type PaginationRequest struct {
	Page int `form:"page" json:"page" example:"1"`
	Size int `form:"size" json:"size" example:"10"`
}

// AdjustPagination clamps page/size to sane bounds.
func (p *PaginationRequest) AdjustPagination() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Size <= 0 || p.Size > MaxSize {
		p.Size = DefaultSize
	}
}

// GetOffset returns the row offset for the current page.
func (p *PaginationRequest) GetOffset() int {
	return (p.Page - 1) * p.Size
}
