package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

// ProgressService stores free-form progress payloads per user.
type ProgressService struct {
	Dep *dependency.Dependency
}

func NewProgressService(dep *dependency.Dependency) (*ProgressService, error) {
	if dep.DB == nil {
		return nil, errors.New("ProgressService: db is nil")
	}

	return &ProgressService{Dep: dep}, nil
}

func (s *ProgressService) Log(ctx context.Context, email string, payload map[string]any) error {
	if payload == nil {
		return apperror.Validation("payload must be a JSON object")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return apperror.Validation("payload must be a JSON object")
	}

	entry := model.ProgressEntry{
		Email:   email,
		Payload: datatypes.JSON(raw),
	}
	if err := gorm.G[model.ProgressEntry](s.Dep.DB).Create(ctx, &entry); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// List returns the entries of email, oldest first.
func (s *ProgressService) List(ctx context.Context, email string) ([]dto.ProgressEntryOut, error) {
	entries, err := gorm.G[model.ProgressEntry](s.Dep.DB).
		Where("email = ?", email).
		Order("created_at asc, id asc").
		Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	result := make([]dto.ProgressEntryOut, 0, len(entries))
	for i := range entries {
		out, err := progressToOut(&entries[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode progress %s: %w", entries[i].ID, err)
		}
		result = append(result, out)
	}
	return result, nil
}
