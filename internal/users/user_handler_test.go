package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes *models.UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func performRequest(handler *UsersHandler, method, path string, body interface{}, claims map[string]interface{}) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		for key, value := range claims {
			c.Set(key, value)
		}
		c.Next()
	})

	group := router.Group("")
	group.POST("/users", handler.RegisterUser)
	group.GET("/users", handler.GetUserList)
	group.GET("/users/:id", handler.GetUser)
	group.PATCH("/users/:id", handler.UpdateUser)
	group.DELETE("/users/:id", handler.DeleteUser)

	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminClaims(userID int) map[string]interface{} {
	return map[string]interface{}{
		"userID":   float64(userID),
		"username": "admin",
		"role":     "admin",
	}
}

func TestRegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	mockRepo.On("PersistUser", mock.AnythingOfType("models.CreateUserRequest"), mock.Anything).Return(nil).Once()

	w := performRequest(handler, http.MethodPost, "/users", models.CreateUserRequest{
		Username: "tanaka",
		Fullname: "田中一郎",
		Password: "secret123",
		Role:     "editor",
	}, adminClaims(1))

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestRegisterUserRejectsShortPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	w := performRequest(handler, http.MethodPost, "/users", models.CreateUserRequest{
		Username: "tanaka",
		Password: "abc",
		Role:     "editor",
	}, adminClaims(1))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "PersistUser")
}

func TestGetUserNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	mockRepo.On("GetUser", 7).Return(nil, nil).Once()

	w := performRequest(handler, http.MethodGet, "/users/7", nil, adminClaims(1))

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestGetUserForbiddenForOtherViewer(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	claims := map[string]interface{}{
		"userID":   float64(5),
		"username": "suzuki",
		"role":     "viewer",
	}

	w := performRequest(handler, http.MethodGet, "/users/7", nil, claims)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "GetUser")
}

func TestGetUserOwnAccountAllowed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	user := &models.User{ID: 5, Username: "suzuki", Role: "viewer"}
	mockRepo.On("GetUser", 5).Return(user, nil).Once()

	claims := map[string]interface{}{
		"userID":   float64(5),
		"username": "suzuki",
		"role":     "viewer",
	}

	w := performRequest(handler, http.MethodGet, "/users/5", nil, claims)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestUpdateUserRoleChangeRequiresAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	user := &models.User{ID: 5, Username: "suzuki", Role: "viewer"}
	mockRepo.On("GetUser", 5).Return(user, nil).Once()

	role := "admin"
	claims := map[string]interface{}{
		"userID":   float64(5),
		"username": "suzuki",
		"role":     "viewer",
	}

	w := performRequest(handler, http.MethodPatch, "/users/5", models.UpdateUserRequest{Role: &role}, claims)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "UpdateUser")
}

func TestUpdateUserNoChangesReturnsCurrent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	user := &models.User{ID: 5, Username: "suzuki", Fullname: "鈴木花子", Role: "viewer"}
	mockRepo.On("GetUser", 5).Return(user, nil).Once()

	w := performRequest(handler, http.MethodPatch, "/users/5", models.UpdateUserRequest{}, adminClaims(1))

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertNotCalled(t, "UpdateUser")
}

func TestDeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	mockRepo.On("DeleteUser", 9).Return(nil).Once()

	w := performRequest(handler, http.MethodDelete, "/users/9", nil, adminClaims(1))

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}
