package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"pollsnip/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupChoice(t *testing.T, router *gin.Engine, token string) models.Choice {
	t.Helper()

	w := DoJSON(t, router, "POST", "/question", token, gin.H{"question_text": "any?"})
	assert.Equal(t, http.StatusCreated, w.Code)
	var question models.Question
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))

	w = DoJSON(t, router, "POST", "/choice", token, gin.H{"question": question.ID, "choice_text": "maybe"})
	assert.Equal(t, http.StatusCreated, w.Code)
	var choice models.Choice
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &choice))
	return choice
}

func TestCreateAnswerMinLength(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	_, token := CreateTestUser(t, db, "answerer")
	choice := setupChoice(t, router, token)

	// Shorter than 3 characters is rejected.
	w := DoJSON(t, router, "POST", "/answers", token, gin.H{"choice": choice.ID, "answer": "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Errors["answer"])

	var count int64
	db.Model(&models.Answer{}).Count(&count)
	assert.Zero(t, count)

	// Length 3 is accepted.
	w = DoJSON(t, router, "POST", "/answers", token, gin.H{"choice": choice.ID, "answer": "abc"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAnswerNullableBody(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	_, token := CreateTestUser(t, db, "answerer")
	choice := setupChoice(t, router, token)

	w := DoJSON(t, router, "POST", "/answers", token, gin.H{"choice": choice.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	var answer models.Answer
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))
	assert.Nil(t, answer.Answer)
}

func TestCreateAnswerMissingChoice(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	_, token := CreateTestUser(t, db, "answerer")

	w := DoJSON(t, router, "POST", "/answers", token, gin.H{"choice": 4242, "answer": "orphan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAnswerPartial(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	_, token := CreateTestUser(t, db, "answerer")
	choice := setupChoice(t, router, token)

	w := DoJSON(t, router, "POST", "/answers", token, gin.H{"choice": choice.ID, "answer": "original"})
	assert.Equal(t, http.StatusCreated, w.Code)
	var answer models.Answer
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))

	w = DoJSON(t, router, "PATCH", "/answers/"+itoa(answer.ID), token, gin.H{"answer": "revised"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Answer
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.NotNil(t, updated.Answer)
	assert.Equal(t, "revised", *updated.Answer)
	assert.Equal(t, choice.ID, updated.ChoiceID)
}
