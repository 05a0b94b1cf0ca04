package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"pollsnip/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _ := SetupTestEnvironment(t)

	w := DoJSON(t, router, "POST", "/auth/register", "", gin.H{
		"username": "newcomer",
		"email":    "newcomer@example.com",
		"password": "password1234",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "newcomer", registered.User.Username)

	// Duplicate usernames are rejected.
	w = DoJSON(t, router, "POST", "/auth/register", "", gin.H{
		"username": "newcomer",
		"email":    "other@example.com",
		"password": "password1234",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login with the right password succeeds.
	w = DoJSON(t, router, "POST", "/auth/login", "", gin.H{
		"username": "newcomer",
		"password": "password1234",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loggedIn struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.NotEmpty(t, loggedIn.Token)

	// The token is accepted by protected endpoints.
	w = DoJSON(t, router, "GET", "/auth/profile", loggedIn.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A wrong password is rejected.
	w = DoJSON(t, router, "POST", "/auth/login", "", gin.H{
		"username": "newcomer",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersCollectionIsReadOnly(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	user, token := CreateTestUser(t, db, "reader")

	w := DoJSON(t, router, "GET", "/users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)

	w = DoJSON(t, router, "GET", "/users/"+itoa(user.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "reader", fetched.Username)
	// The password hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password")

	// No write verbs are routed for users.
	w = DoJSON(t, router, "POST", "/users", token, gin.H{"username": "sneaky"})
	assert.NotEqual(t, http.StatusCreated, w.Code)
	w = DoJSON(t, router, "DELETE", "/users/"+itoa(user.ID), token, nil)
	assert.NotEqual(t, http.StatusNoContent, w.Code)
}

func TestAuditTrailRecordsWrites(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	_, token := CreateTestUser(t, db, "auditor")

	w := DoJSON(t, router, "POST", "/question", token, gin.H{"question_text": "tracked?"})
	assert.Equal(t, http.StatusCreated, w.Code)
	var question models.Question
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))

	w = DoJSON(t, router, "PATCH", "/question/"+itoa(question.ID), token, gin.H{"question_text": "still tracked?"})
	assert.Equal(t, http.StatusOK, w.Code)

	var entries []models.AuditLogEntry
	assert.NoError(t, db.Where("object_type = ?", "questions").Order("timestamp ASC").Find(&entries).Error)
	assert.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, "auditor", entries[0].Actor)
	assert.Equal(t, question.ID, entries[0].ObjectID)
	assert.Equal(t, "update", entries[1].Action)
}
