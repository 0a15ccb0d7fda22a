package service

import (
	"encoding/json"
	"sort"
	"time"

	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

func userToProfileOut(user *model.User) dto.ProfileOut {
	return dto.ProfileOut{
		Name:       user.Name,
		Email:      user.Email,
		SkillLevel: user.SkillLevel,
		Batch:      user.Batch,
		Gender:     user.Gender,
	}
}

func userToAuthResponse(user *model.User, token string) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        userToProfileOut(user),
	}
}

func userToProfileResponse(user *model.User) *dto.ProfileResponse {
	var createdAt *time.Time
	if !user.CreatedAt.IsZero() {
		t := user.CreatedAt
		createdAt = &t
	}

	return &dto.ProfileResponse{
		ProfileOut:      userToProfileOut(user),
		CreatedAt:       createdAt,
		Points:          user.Points,
		Streak:          user.Streak,
		TopicsCompleted: user.TopicsCompleted,
		ProblemsSolved:  user.ProblemsSolved,
	}
}

// AuthResponse renders a session for the wire.
func (r *AuthResult) AuthResponse() *dto.AuthResponse {
	return userToAuthResponse(r.User, r.Token)
}

func notificationToOut(n *model.Notification) dto.NotificationOut {
	return dto.NotificationOut{
		ID:        n.ID,
		From:      n.FromEmail,
		Type:      n.Type,
		CreatedAt: n.CreatedAt,
	}
}

func progressToOut(p *model.ProgressEntry) (dto.ProgressEntryOut, error) {
	payload := map[string]any{}
	if len(p.Payload) > 0 {
		if err := json.Unmarshal(p.Payload, &payload); err != nil {
			return dto.ProgressEntryOut{}, err
		}
	}

	return dto.ProgressEntryOut{
		ID:        p.ID,
		Email:     p.Email,
		Payload:   payload,
		CreatedAt: p.CreatedAt,
	}, nil
}

// sortedSet returns the distinct values of emails in ascending order.
func sortedSet(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	result := make([]string, 0, len(emails))

	for _, email := range emails {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		result = append(result, email)
	}

	sort.Strings(result)
	return result
}

type onlineStatusChecker struct {
	heartBeatSet map[string]struct{}
}

func newOnlineStatusChecker(heartBeats []model.HeartBeat) *onlineStatusChecker {
	hs := &onlineStatusChecker{
		heartBeatSet: make(map[string]struct{}, len(heartBeats)),
	}

	for _, hb := range heartBeats {
		hs.heartBeatSet[hb.Email] = struct{}{}
	}

	return hs
}

func (os *onlineStatusChecker) isOnline(email string) bool {
	_, ok := os.heartBeatSet[email]
	return ok
}
