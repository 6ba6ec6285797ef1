package httpv1_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpv1 "github.com/Egor213/LogLens/internal/controller/http/v1"
	"github.com/Egor213/LogLens/internal/domain"
	"github.com/Egor213/LogLens/internal/metrics"
	servicemocks "github.com/Egor213/LogLens/internal/mocks/service"
	"github.com/Egor213/LogLens/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, mockService *servicemocks.MockLog) *echo.Echo {
	t.Helper()
	e := echo.New()
	httpv1.ConfigureRouter(e, &service.Services{Log: mockService}, metrics.NewTestCounters())
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLogController_Dispatch(t *testing.T) {
	records := []domain.LogRecord{
		{ID: 3848244457, Count: 3, Timestamp: "2022-01-29T16:02:48+00:00", Message: "PHP Fatal error: x", Tags: "Fatal error"},
	}

	type mockBehavior func(s *servicemocks.MockLog)

	testCases := []struct {
		name         string
		method       string
		target       string
		mockBehavior mockBehavior
		wantStatus   int
		wantBody     string
	}{
		{
			name:   "get_log",
			method: http.MethodGet,
			target: "/?get_log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().GetLog(gomock.Any(), false).Return(records, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":3848244457,"cnt":3,"time":"2022-01-29T16:02:48+00:00","msg":"PHP Fatal error: x","cls":"Fatal error"}]`,
		},
		{
			name:   "get_log with ignore",
			method: http.MethodGet,
			target: "/?get_log&ignore",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().GetLog(gomock.Any(), true).Return([]domain.LogRecord{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:   "get_log too large",
			method: http.MethodGet,
			target: "/?get_log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().GetLog(gomock.Any(), false).
					Return(nil, &service.IssueError{Kind: service.IssueTooLarge, Message: "Aborting."})
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   `"Aborting."`,
		},
		{
			name:   "get_log not found",
			method: http.MethodGet,
			target: "/api/v1/log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().GetLog(gomock.Any(), false).
					Return(nil, &service.IssueError{Kind: service.IssueNotFound, Message: "missing"})
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"missing"`,
		},
		{
			name:   "get_log unexpected error",
			method: http.MethodGet,
			target: "/?get_log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().GetLog(gomock.Any(), false).Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"Internal error, check the server log."`,
		},
		{
			name:   "delete_log",
			method: http.MethodGet,
			target: "/?delete_log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().Issues(gomock.Any(), false).Return("")
				s.EXPECT().Truncate(gomock.Any()).Return(service.MsgEmptied)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"Emptied file"`,
		},
		{
			name:   "rest delete",
			method: http.MethodDelete,
			target: "/api/v1/log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().Truncate(gomock.Any()).Return(service.MsgNothingToDelete)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"There was no file to delete"`,
		},
		{
			name:   "filesize",
			method: http.MethodGet,
			target: "/?filesize",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().Issues(gomock.Any(), false).Return("")
				s.EXPECT().FileSize(gomock.Any()).Return(int64(4096), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `4096`,
		},
		{
			name:   "delete_log blocked by file issue",
			method: http.MethodGet,
			target: "/?delete_log",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().Issues(gomock.Any(), false).Return("The file (debug.log) was not found.")
			},
			wantStatus: http.StatusOK,
			wantBody:   `"The file (debug.log) was not found."`,
		},
		{
			name:   "filesize blocked by size unless ignored",
			method: http.MethodGet,
			target: "/?filesize",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().Issues(gomock.Any(), false).Return("Aborting.")
			},
			wantStatus: http.StatusOK,
			wantBody:   `"Aborting."`,
		},
		{
			name:   "filesize with ignore",
			method: http.MethodGet,
			target: "/?filesize&ignore",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().Issues(gomock.Any(), true).Return("")
				s.EXPECT().FileSize(gomock.Any()).Return(int64(200*1024*1024), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `209715200`,
		},
		{
			name:   "rest size",
			method: http.MethodGet,
			target: "/api/v1/log/size",
			mockBehavior: func(s *servicemocks.MockLog) {
				s.EXPECT().FileSize(gomock.Any()).Return(int64(12), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `12`,
		},
		{
			name:         "unknown query",
			method:       http.MethodGet,
			target:       "/?something",
			mockBehavior: func(s *servicemocks.MockLog) {},
			wantStatus:   http.StatusNotFound,
			wantBody:     `"Unknown request. Use one of the get_log, delete_log or filesize queryvars."`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := servicemocks.NewMockLog(ctrl)
			tc.mockBehavior(mockService)

			rec := serve(newRouter(t, mockService), tc.method, tc.target)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
			assert.Equal(t, "no-store, no-cache, must-revalidate, max-age=0", rec.Header().Get(echo.HeaderCacheControl))
			assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
		})
	}
}

func TestLogController_LinkMarkupSurvivesJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	msg := "in <a href='vscode://file/C:/dev/app/index.php:42'>/srv/www/app/index.php on line 42</a>"
	mockService := servicemocks.NewMockLog(ctrl)
	mockService.EXPECT().GetLog(gomock.Any(), false).Return([]domain.LogRecord{{ID: 1, Count: 1, Message: msg}}, nil)

	rec := serve(newRouter(t, mockService), http.MethodGet, "/?get_log")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.LogRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, msg, got[0].Message)
}
