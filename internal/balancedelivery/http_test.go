package balancedelivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/internal/middleware"
	"github.com/go-petr/rentmates/pkg/currencypkg"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/go-petr/rentmates/pkg/randompkg"
	"github.com/go-petr/rentmates/pkg/tokenpkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type sheetResponse struct {
	Data  sheetData `json:"data"`
	Error string    `json:"error"`
}

type meResponse struct {
	Data  meData `json:"data"`
	Error string `json:"error"`
}

func setup(t *testing.T, buildStubs func(s *MockService)) (*gin.Engine, tokenpkg.Maker) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewJWTMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	buildStubs(service)

	h := NewHandler(service)

	server := gin.New()
	groups := server.Group("/groups", middleware.AuthMiddleware(tokenMaker))
	groups.GET("/:id/balances", h.Group)
	groups.GET("/:id/balances/me", h.Me)

	return server, tokenMaker
}

func get(t *testing.T, server *gin.Engine, tokenMaker tokenpkg.Maker, username, url string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func TestGroup(t *testing.T) {
	t.Parallel()

	username := randompkg.Username()
	groupID := randompkg.IntBetween(1, 1000)

	sheet := domain.GroupBalances{
		GroupID:    groupID,
		Currency:   currencypkg.USD,
		TotalSpent: "60.00",
		Balances: []domain.MemberBalance{
			{Member: username, Net: "40.00"},
			{Member: "zed", Net: "-40.00"},
		},
		Transfers: []domain.TransferSuggestion{{From: "zed", To: username, Amount: "40.00"}},
	}

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			url:  fmt.Sprintf("/groups/%d/balances", groupID),
			buildStubs: func(s *MockService) {
				s.EXPECT().Group(gomock.Any(), username, groupID).Times(1).Return(sheet, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidID",
			url:  "/groups/-4/balances",
			buildStubs: func(s *MockService) {
				s.EXPECT().Group(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ID must be at least 1",
		},
		{
			name: "NotMember",
			url:  fmt.Sprintf("/groups/%d/balances", groupID),
			buildStubs: func(s *MockService) {
				s.EXPECT().Group(gomock.Any(), username, groupID).Times(1).Return(domain.GroupBalances{}, domain.ErrNotGroupMember)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrNotGroupMember.Error(),
		},
		{
			name: "NotFound",
			url:  fmt.Sprintf("/groups/%d/balances", groupID),
			buildStubs: func(s *MockService) {
				s.EXPECT().Group(gomock.Any(), username, groupID).Times(1).Return(domain.GroupBalances{}, domain.ErrGroupNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrGroupNotFound.Error(),
		},
		{
			name: "InternalError",
			url:  fmt.Sprintf("/groups/%d/balances", groupID),
			buildStubs: func(s *MockService) {
				s.EXPECT().Group(gomock.Any(), username, groupID).Times(1).Return(domain.GroupBalances{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, tokenMaker := setup(t, tc.buildStubs)

			recorder := get(t, server, tokenMaker, username, tc.url)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res sheetResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, tc.wantError, res.Error)

			if tc.wantStatusCode == http.StatusOK {
				if diff := cmp.Diff(sheet, res.Data.Sheet); diff != "" {
					t.Errorf("res.Data.Sheet mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestMe(t *testing.T) {
	t.Parallel()

	username := randompkg.Username()
	groupID := randompkg.IntBetween(1, 1000)

	balance := domain.UserBalance{
		GroupID:  groupID,
		Username: username,
		Currency: currencypkg.INR,
		Net:      "-12.50",
		Owes:     []domain.TransferSuggestion{{From: username, To: "amy", Amount: "12.50"}},
		Owed:     []domain.TransferSuggestion{},
	}

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		server, tokenMaker := setup(t, func(s *MockService) {
			s.EXPECT().Me(gomock.Any(), username, groupID).Times(1).Return(balance, nil)
		})

		recorder := get(t, server, tokenMaker, username, fmt.Sprintf("/groups/%d/balances/me", groupID))
		require.Equal(t, http.StatusOK, recorder.Code)

		var res meResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

		if diff := cmp.Diff(balance, res.Data.Balance); diff != "" {
			t.Errorf("res.Data.Balance mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("NotMember", func(t *testing.T) {
		t.Parallel()

		server, tokenMaker := setup(t, func(s *MockService) {
			s.EXPECT().Me(gomock.Any(), username, groupID).Times(1).Return(domain.UserBalance{}, domain.ErrNotGroupMember)
		})

		recorder := get(t, server, tokenMaker, username, fmt.Sprintf("/groups/%d/balances/me", groupID))
		require.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
