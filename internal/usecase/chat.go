package usecase

import (
	"context"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
)

// ChatUsecase defines the business logic for the shopping assistant history.
type ChatUsecase interface {
	SaveExchange(ctx context.Context, user *model.User, question, answer, productID string) (*model.ChatMessage, error)
	History(ctx context.Context, user *model.User) ([]*model.ChatMessage, error)
}

type chatUsecase struct {
	chatRepo repository.ChatMessageRepository
}

// NewChatUsecase creates a new instance of ChatUsecase.
func NewChatUsecase(chatRepo repository.ChatMessageRepository) ChatUsecase {
	return &chatUsecase{chatRepo: chatRepo}
}

func (u *chatUsecase) SaveExchange(
	ctx context.Context,
	user *model.User,
	question, answer, productID string,
) (*model.ChatMessage, error) {
	return u.chatRepo.CreateChatMessage(ctx, &model.ChatMessage{
		UserID:    user.ID,
		Question:  question,
		Answer:    answer,
		ProductID: productID,
	})
}

func (u *chatUsecase) History(ctx context.Context, user *model.User) ([]*model.ChatMessage, error) {
	return u.chatRepo.ListChatMessagesByUserID(ctx, user.ID.Hex())
}
