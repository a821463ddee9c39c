package book

type CreateBookReq struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Year     int    `json:"year" validate:"required,gte=1000,lte=2100"`
	Category string `json:"category" validate:"required"`
	ISBN     string `json:"isbn"`
}
