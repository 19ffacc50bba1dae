package recipes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
)

// SubmitInput is the payload a shopper sends when submitting a recipe.
type SubmitInput struct {
	RecipeName  string   `json:"recipe_name" validate:"required,min=3,max=120"`
	Category    string   `json:"category" validate:"required,oneof=espresso filtrado frio coctel otro"`
	Difficulty  string   `json:"difficulty" validate:"required,oneof=facil media dificil"`
	TotalTime   string   `json:"total_time" validate:"required,max=60"`
	Yield       string   `json:"yield" validate:"required,max=60"`
	Description string   `json:"description" validate:"required,max=2000"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps       []string `json:"steps" validate:"required,min=1,dive,required"`
	AuthorName  string   `json:"author_name" validate:"required,max=120"`
	Instagram   string   `json:"instagram" validate:"omitempty,max=60"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Story       string   `json:"story" validate:"omitempty,max=2000"`
}

// Service accepts and lists community recipe submissions.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Submission, error)
	ListPending(ctx context.Context) ([]Submission, error)
}

type service struct {
	repo   Repository
	logger *logger.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires submission handling to the repository.
func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: logg,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Submit stores a new submission in pending state.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Submission, error) {
	submission := &Submission{
		ID:          s.newID(),
		RecipeName:  strings.TrimSpace(input.RecipeName),
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		TotalTime:   strings.TrimSpace(input.TotalTime),
		Yield:       strings.TrimSpace(input.Yield),
		Description: strings.TrimSpace(input.Description),
		Ingredients: input.Ingredients,
		Steps:       input.Steps,
		AuthorName:  strings.TrimSpace(input.AuthorName),
		Instagram:   strings.TrimSpace(input.Instagram),
		Email:       strings.TrimSpace(input.Email),
		Story:       strings.TrimSpace(input.Story),
		Status:      StatusPending,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving recipe submission")
	}

	ctx = s.logger.WithFields(ctx, map[string]any{
		"submission_id": submission.ID,
		"category":      submission.Category,
	})
	s.logger.Info(ctx, "recipe submission received")
	return submission, nil
}

// ListPending returns submissions awaiting review, newest first.
func (s *service) ListPending(ctx context.Context) ([]Submission, error) {
	out, err := s.repo.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing recipe submissions")
	}
	if out == nil {
		out = []Submission{}
	}
	return out, nil
}
