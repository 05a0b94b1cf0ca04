package services

import (
	"context"
	"errors"
	"time"

	"pollsnip/models"
	"pollsnip/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PollService struct {
	db *gorm.DB
}

func NewPollService(db *gorm.DB) *PollService {
	return &PollService{db: db}
}

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date"`
}

type UpdateQuestionRequest struct {
	QuestionText *string    `json:"question_text"`
	PubDate      *time.Time `json:"pub_date"`
}

type CreateChoiceRequest struct {
	QuestionID uint   `json:"question"`
	ChoiceText string `json:"choice_text"`
	Votes      *int   `json:"votes"`
}

type UpdateChoiceRequest struct {
	QuestionID *uint   `json:"question"`
	ChoiceText *string `json:"choice_text"`
	Votes      *int    `json:"votes"`
}

type CreateAnswerRequest struct {
	ChoiceID uint    `json:"choice"`
	Answer   *string `json:"answer"`
}

type UpdateAnswerRequest struct {
	ChoiceID *uint   `json:"choice"`
	Answer   *string `json:"answer"`
}

// ---------------------------------------------------------------- questions

func (s *PollService) CreateQuestion(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error) {
	errs := validation.FieldErrors{}
	errs.Required("question_text", req.QuestionText)
	errs.MaxLength("question_text", req.QuestionText, 200)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	question := models.Question{
		QuestionText: req.QuestionText,
		PubDate:      time.Now().UTC(),
	}
	if req.PubDate != nil {
		question.PubDate = *req.PubDate
	}

	if err := s.db.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *PollService) ListQuestions(ctx context.Context, page, pageSize int) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Scopes(Paginate(page, pageSize)).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		}).
		Find(&questions).Error
	return questions, err
}

func (s *PollService) GetQuestion(ctx context.Context, questionID uint) (*models.Question, error) {
	var question models.Question
	err := s.db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		}).
		First(&question, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (s *PollService) UpdateQuestion(ctx context.Context, questionID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	errs := validation.FieldErrors{}
	if req.QuestionText != nil {
		errs.Required("question_text", *req.QuestionText)
		errs.MaxLength("question_text", *req.QuestionText, 200)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.PubDate != nil {
		question.PubDate = *req.PubDate
	}

	// Omit associations so preloaded choices are not re-saved.
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion walks the children before the parent so the cascade
// holds on stores without FK enforcement.
func (s *PollService) DeleteQuestion(ctx context.Context, questionID uint) error {
	question, err := s.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var choiceIDs []uint
		if err := tx.Model(&models.Choice{}).Where("question_id = ?", questionID).Pluck("id", &choiceIDs).Error; err != nil {
			return err
		}
		if len(choiceIDs) > 0 {
			if err := tx.Where("choice_id IN ?", choiceIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", questionID).Delete(&models.Choice{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(question).Error
	})
}

// ----------------------------------------------------------------- choices

func (s *PollService) CreateChoice(ctx context.Context, req *CreateChoiceRequest) (*models.Choice, error) {
	errs := validation.FieldErrors{}
	errs.Required("choice_text", req.ChoiceText)
	errs.MaxLength("choice_text", req.ChoiceText, 200)
	if req.Votes != nil {
		errs.NonNegative("votes", *req.Votes)
	}
	if req.QuestionID == 0 {
		errs.Add("question", "This field is required.")
	} else if exists, err := s.questionExists(ctx, req.QuestionID); err != nil {
		return nil, err
	} else if !exists {
		errs.Add("question", "Invalid pk - object does not exist.")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	choice := models.Choice{
		QuestionID: req.QuestionID,
		ChoiceText: req.ChoiceText,
	}
	if req.Votes != nil {
		choice.Votes = *req.Votes
	}

	if err := s.db.WithContext(ctx).Create(&choice).Error; err != nil {
		return nil, err
	}
	return &choice, nil
}

func (s *PollService) ListChoices(ctx context.Context, page, pageSize int) ([]models.Choice, error) {
	var choices []models.Choice
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Scopes(Paginate(page, pageSize)).
		Find(&choices).Error
	return choices, err
}

func (s *PollService) GetChoice(ctx context.Context, choiceID uint) (*models.Choice, error) {
	var choice models.Choice
	err := s.db.WithContext(ctx).First(&choice, choiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &choice, nil
}

func (s *PollService) UpdateChoice(ctx context.Context, choiceID uint, req *UpdateChoiceRequest) (*models.Choice, error) {
	choice, err := s.GetChoice(ctx, choiceID)
	if err != nil {
		return nil, err
	}

	errs := validation.FieldErrors{}
	if req.ChoiceText != nil {
		errs.Required("choice_text", *req.ChoiceText)
		errs.MaxLength("choice_text", *req.ChoiceText, 200)
	}
	if req.Votes != nil {
		errs.NonNegative("votes", *req.Votes)
	}
	if req.QuestionID != nil {
		if exists, err := s.questionExists(ctx, *req.QuestionID); err != nil {
			return nil, err
		} else if !exists {
			errs.Add("question", "Invalid pk - object does not exist.")
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if req.QuestionID != nil {
		choice.QuestionID = *req.QuestionID
	}
	if req.ChoiceText != nil {
		choice.ChoiceText = *req.ChoiceText
	}
	if req.Votes != nil {
		choice.Votes = *req.Votes
	}

	if err := s.db.WithContext(ctx).Save(choice).Error; err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *PollService) DeleteChoice(ctx context.Context, choiceID uint) error {
	choice, err := s.GetChoice(ctx, choiceID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("choice_id = ?", choiceID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(choice).Error
	})
}

// Vote increments the counter with a single atomic statement so
// concurrent votes never lose an update.
func (s *PollService) Vote(ctx context.Context, choiceID uint) (*models.Choice, error) {
	choice, err := s.GetChoice(ctx, choiceID)
	if err != nil {
		return nil, err
	}

	actor := models.ActorFromContext(ctx)
	err = s.db.WithContext(ctx).Model(choice).
		UpdateColumns(map[string]interface{}{
			"votes":       gorm.Expr("votes + 1"),
			"version":     gorm.Expr("version + 1"),
			"modified_by": actor,
			"modified_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, err
	}

	return s.GetChoice(ctx, choiceID)
}

// Results returns the current vote totals for every choice of a
// question, keyed by choice id.
func (s *PollService) Results(ctx context.Context, questionID uint) (map[uint]int, error) {
	if exists, err := s.questionExists(ctx, questionID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrNotFound
	}

	var choices []models.Choice
	err := s.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id ASC").
		Find(&choices).Error
	if err != nil {
		return nil, err
	}

	results := make(map[uint]int, len(choices))
	for _, choice := range choices {
		results[choice.ID] = choice.Votes
	}
	return results, nil
}

func (s *PollService) questionExists(ctx context.Context, questionID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", questionID).Count(&count).Error
	return count > 0, err
}

// ----------------------------------------------------------------- answers

func (s *PollService) CreateAnswer(ctx context.Context, req *CreateAnswerRequest) (*models.Answer, error) {
	errs := validation.FieldErrors{}
	if req.ChoiceID == 0 {
		errs.Add("choice", "This field is required.")
	} else if exists, err := s.choiceExists(ctx, req.ChoiceID); err != nil {
		return nil, err
	} else if !exists {
		errs.Add("choice", "Invalid pk - object does not exist.")
	}
	if req.Answer != nil {
		errs.MinLength("answer", *req.Answer, 3)
		errs.MaxLength("answer", *req.Answer, 4096)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	answer := models.Answer{
		ChoiceID: req.ChoiceID,
		Answer:   req.Answer,
	}
	if err := s.db.WithContext(ctx).Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *PollService) ListAnswers(ctx context.Context, page, pageSize int) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Scopes(Paginate(page, pageSize)).
		Find(&answers).Error
	return answers, err
}

func (s *PollService) GetAnswer(ctx context.Context, answerID uint) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.WithContext(ctx).First(&answer, answerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (s *PollService) UpdateAnswer(ctx context.Context, answerID uint, req *UpdateAnswerRequest) (*models.Answer, error) {
	answer, err := s.GetAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}

	errs := validation.FieldErrors{}
	if req.Answer != nil {
		errs.MinLength("answer", *req.Answer, 3)
		errs.MaxLength("answer", *req.Answer, 4096)
	}
	if req.ChoiceID != nil {
		if exists, err := s.choiceExists(ctx, *req.ChoiceID); err != nil {
			return nil, err
		} else if !exists {
			errs.Add("choice", "Invalid pk - object does not exist.")
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if req.ChoiceID != nil {
		answer.ChoiceID = *req.ChoiceID
	}
	if req.Answer != nil {
		answer.Answer = req.Answer
	}

	if err := s.db.WithContext(ctx).Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *PollService) DeleteAnswer(ctx context.Context, answerID uint) error {
	answer, err := s.GetAnswer(ctx, answerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(answer).Error
}

func (s *PollService) choiceExists(ctx context.Context, choiceID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Choice{}).Where("id = ?", choiceID).Count(&count).Error
	return count > 0, err
}
