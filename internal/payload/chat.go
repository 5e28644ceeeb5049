package payload

type SaveChatRequest struct {
	Question  string `json:"question" validate:"required"`
	Answer    string `json:"answer"   validate:"required"`
	ProductID string `json:"product_id"`
}
