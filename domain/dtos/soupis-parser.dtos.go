package dtos

type SoupisManualUploadRequest struct {
	JobId  uint64 `form:"job_id" json:"job_id"`
	Stavba string `form:"stavba" json:"stavba"`
	Objekt string `form:"objekt" json:"objekt"`
}

type OtskpSuggestRequest struct {
	Query string `query:"q" json:"q" validate:"required"`
	Limit int    `query:"limit" json:"limit"`
}
