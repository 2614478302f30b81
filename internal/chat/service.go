package chat

import (
	"context"
	"fmt"

	stream "github.com/GetStream/stream-chat-go/v5"
)

// Service syncs user identity and display data to Stream Chat so the chat
// feature always shows current names and avatars
type Service struct {
	client *stream.Client
}

func NewService(apiKey, apiSecret string) (*Service, error) {
	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %w", err)
	}
	return &Service{client: client}, nil
}

// UpsertUser creates or updates the chat-side user record
func (s *Service) UpsertUser(ctx context.Context, id, name, image string) error {
	_, err := s.client.UpsertUser(ctx, &stream.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert stream user: %w", err)
	}

	return nil
}
