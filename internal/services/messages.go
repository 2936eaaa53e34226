package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
)

type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessageService(m repository.Manager) *MessageService {
	return &MessageService{messages: m.Messages(), users: m.Users()}
}

func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrBadRequest)
	}
	if receiverID == 0 {
		return nil, fmt.Errorf("%w: receiverId is required", common.ErrBadRequest)
	}
	if receiverID == senderID {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", common.ErrBadRequest)
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Thread returns the messages between a and b in both directions, oldest first.
func (s *MessageService) Thread(ctx context.Context, a, b uint) ([]models.Message, error) {
	msgs, err := s.messages.Between(ctx, a, b)
	if err != nil {
		return nil, err
	}
	models.SortThread(msgs)
	return msgs, nil
}

// Inbox returns every message sent or received by userID, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messages.Involving(ctx, userID)
}

// Conversations returns one row per counterpart of userID with the latest
// message and, when the counterpart still exists, their name.
func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	msgs, err := s.messages.Involving(ctx, userID)
	if err != nil {
		return nil, err
	}
	convs := models.GroupConversations(userID, msgs)
	if len(convs) == 0 {
		return convs, nil
	}

	ids := make([]uint, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.CounterpartID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range convs {
		convs[i].CounterpartName = names[convs[i].CounterpartID]
	}
	return convs, nil
}
