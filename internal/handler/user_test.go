package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	service_mocks "github.com/bookshelf-app/bookshelf-service/internal/handler/mocks"
)

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockUserService)

	var tests = []struct {
		name         string
		requestBody  string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:        "ok",
			requestBody: `{"email":"frank@example.com","password":"secret123"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Login(gomock.Any(), "frank@example.com", "secret123").
					Return(model.LoginResponse{
						UserDetails: model.User{Email: "frank@example.com", UserName: "frank"},
						Token:       "jwt-token",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `"token":"jwt-token"`,
			},
		},
		{
			name:        "err. wrong password",
			requestBody: `{"email":"frank@example.com","password":"wrong-pass"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Login(gomock.Any(), "frank@example.com", "wrong-pass").
					Return(model.LoginResponse{}, errs.ErrInvalidCredentials)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `"message":"invalid email or password"`,
			},
		},
		{
			name:        "err. unknown email is indistinguishable from wrong password",
			requestBody: `{"email":"nobody@example.com","password":"secret123"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Login(gomock.Any(), "nobody@example.com", "secret123").
					Return(model.LoginResponse{}, errs.ErrInvalidCredentials)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `"message":"invalid email or password"`,
			},
		},
		{
			name:         "err. malformed email",
			requestBody:  `{"email":"not-an-email","password":"secret123"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `"message":"Email must be a valid email"`,
			},
		},
		{
			name:         "err. missing password",
			requestBody:  `{"email":"frank@example.com"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `"message":"Password is required"`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			tt.mockBehavior(env.user)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(tt.requestBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Contains(t, w.Body.String(), tt.response.expectedBody)
		})
	}
}

func TestHandler_Signup(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockUserService)

	signupJSON := `{"firstName":"Frank","lastName":"Herbert","email":"frank@example.com","userName":"frank","password":"secret123"}`
	signupReq := model.SignupRequest{
		FirstName: "Frank",
		LastName:  "Herbert",
		Email:     "frank@example.com",
		UserName:  "frank",
		Password:  "secret123",
	}

	var tests = []struct {
		name         string
		requestBody  string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:        "ok",
			requestBody: signupJSON,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Signup(gomock.Any(), signupReq).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"statusCode":201,"data":null,"message":"User Created Successfully"}`,
			},
		},
		{
			name:        "err. duplicate email",
			requestBody: signupJSON,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Signup(gomock.Any(), signupReq).
					Return(errs.ErrEmailExists)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"statusCode":409,"data":null,"message":"email already exists"}`,
			},
		},
		{
			name:        "err. duplicate username",
			requestBody: signupJSON,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Signup(gomock.Any(), signupReq).
					Return(errs.ErrUserNameExists)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"statusCode":409,"data":null,"message":"username already exists"}`,
			},
		},
		{
			name:         "err. short password",
			requestBody:  `{"firstName":"Frank","lastName":"Herbert","email":"frank@example.com","userName":"frank","password":"abc"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `{"statusCode":422,"data":null,"message":"Password must be at least 6"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			tt.mockBehavior(env.user)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(tt.requestBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Contains(t, w.Body.String(), tt.response.expectedBody)
		})
	}
}
