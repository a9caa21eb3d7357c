package balanceservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-petr/rentmates/internal/balancecache"
	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/pkg/currencypkg"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var flat = domain.Group{
	ID:        11,
	Name:      "Flat 4B",
	Currency:  currencypkg.EUR,
	CreatedBy: "alice",
	Members:   []string{"alice", "bob", "carol"},
}

var flatExpenses = []domain.Expense{
	{ID: 1, GroupID: 11, Amount: "90.00", Payer: "alice", SplitWith: []string{}},
	{ID: 2, GroupID: 11, Amount: "30", Payer: "bob", SplitWith: []string{"carol"}},
	{ID: 3, GroupID: 11, Amount: "10", Payer: "dave", SplitWith: []string{"dave"}},
}

var flatSheet = domain.GroupBalances{
	GroupID:    11,
	Currency:   currencypkg.EUR,
	TotalSpent: "130.00",
	Balances: []domain.MemberBalance{
		{Member: "alice", Net: "60.00"},
		{Member: "bob", Net: "0.00"},
		{Member: "carol", Net: "-60.00"},
		{Member: "dave", Net: "0.00", Unknown: true},
	},
	Transfers: []domain.TransferSuggestion{
		{From: "carol", To: "alice", Amount: "60.00"},
	},
}

type mocks struct {
	groupRepo   *MockGroupRepo
	expenseRepo *MockExpenseRepo
	observer    *MockObserver
}

func newMocks(t *testing.T) (mocks, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)

	return mocks{
		groupRepo:   NewMockGroupRepo(ctrl),
		expenseRepo: NewMockExpenseRepo(ctrl),
		observer:    NewMockObserver(ctrl),
	}, ctrl
}

func TestGroup(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		username   string
		buildStubs func(m mocks)
		want       domain.GroupBalances
		wantErr    error
	}{
		{
			name:     "OK",
			username: "bob",
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
				m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return(flatExpenses, nil)
				m.observer.EXPECT().ObserveSettlement(false).Times(1)
			},
			want: flatSheet,
		},
		{
			name:     "NoExpenses",
			username: "alice",
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
				m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return([]domain.Expense{}, nil)
				m.observer.EXPECT().ObserveSettlement(false).Times(1)
			},
			want: domain.GroupBalances{
				GroupID:    11,
				Currency:   currencypkg.EUR,
				TotalSpent: "0.00",
				Balances: []domain.MemberBalance{
					{Member: "alice", Net: "0.00"},
					{Member: "bob", Net: "0.00"},
					{Member: "carol", Net: "0.00"},
				},
				Transfers: []domain.TransferSuggestion{},
			},
		},
		{
			name:     "NotMember",
			username: "mallory",
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
				m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNotGroupMember,
		},
		{
			name:     "GroupNotFound",
			username: "alice",
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(domain.Group{}, domain.ErrGroupNotFound)
			},
			wantErr: domain.ErrGroupNotFound,
		},
		{
			name:     "ExpenseRepoError",
			username: "alice",
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
				m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return(nil, errorspkg.ErrInternal)
				m.observer.EXPECT().ObserveSettlement(gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, _ := newMocks(t)
			tc.buildStubs(m)

			s := New(m.groupRepo, m.expenseRepo, balancecache.New(nil, 0), m.observer)

			got, err := s.Group(context.Background(), tc.username, flat.ID)
			if err != tc.wantErr {
				t.Fatalf("s.Group() returned error %v, want %v", err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("s.Group() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupCached(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := balancecache.New(client, time.Minute)
	ctx := context.Background()

	m, _ := newMocks(t)
	m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(3).Return(flat, nil)
	m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(2).Return(flatExpenses, nil)

	gomock.InOrder(
		m.observer.EXPECT().ObserveSettlement(false),
		m.observer.EXPECT().ObserveSettlement(true),
		m.observer.EXPECT().ObserveSettlement(false),
	)

	s := New(m.groupRepo, m.expenseRepo, cache, m.observer)

	for i := 0; i < 2; i++ {
		got, err := s.Group(ctx, "carol", flat.ID)
		require.NoError(t, err)

		if diff := cmp.Diff(flatSheet, got); diff != "" {
			t.Errorf("s.Group() call %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	require.NoError(t, cache.Bump(ctx, flat.ID))

	got, err := s.Group(ctx, "carol", flat.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(flatSheet, got); diff != "" {
		t.Errorf("s.Group() after bump mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupCacheFailureFallsBack(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		buildCache func(c *MockCache)
	}{
		{
			name: "KeyError",
			buildCache: func(c *MockCache) {
				c.EXPECT().Key(gomock.Any(), flat.ID).Times(1).Return("", errors.New("connection refused"))
				c.EXPECT().FetchJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "FetchError",
			buildCache: func(c *MockCache) {
				c.EXPECT().Key(gomock.Any(), flat.ID).Times(1).Return("k", nil)
				c.EXPECT().
					FetchJSON(gomock.Any(), "k", gomock.Any(), gomock.Any()).
					Times(1).
					Return(false, errors.New("connection refused"))
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, ctrl := newMocks(t)
			cache := NewMockCache(ctrl)
			tc.buildCache(cache)

			m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
			m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return(flatExpenses, nil)
			m.observer.EXPECT().ObserveSettlement(false).Times(1)

			s := New(m.groupRepo, m.expenseRepo, cache, m.observer)

			got, err := s.Group(context.Background(), "alice", flat.ID)
			require.NoError(t, err)

			if diff := cmp.Diff(flatSheet, got); diff != "" {
				t.Errorf("s.Group() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupCacheFailureWithRepoError(t *testing.T) {
	t.Parallel()

	m, ctrl := newMocks(t)
	cache := NewMockCache(ctrl)

	m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
	m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return(nil, errorspkg.ErrInternal)
	m.observer.EXPECT().ObserveSettlement(gomock.Any()).Times(0)

	cache.EXPECT().Key(gomock.Any(), flat.ID).Times(1).Return("", errors.New("connection refused"))

	s := New(m.groupRepo, m.expenseRepo, cache, m.observer)

	if _, err := s.Group(context.Background(), "alice", flat.ID); err != errorspkg.ErrInternal {
		t.Errorf("s.Group() returned error %v, want %v", err, errorspkg.ErrInternal)
	}
}

func TestGroupLoaderErrorIsReturned(t *testing.T) {
	t.Parallel()

	m, ctrl := newMocks(t)
	cache := NewMockCache(ctrl)

	m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
	m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return(nil, errorspkg.ErrInternal)

	cache.EXPECT().Key(gomock.Any(), flat.ID).Times(1).Return("k", nil)
	cache.EXPECT().
		FetchJSON(gomock.Any(), "k", gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) (bool, error) {
			_, err := loader(ctx)
			return false, err
		})

	s := New(m.groupRepo, m.expenseRepo, cache, m.observer)

	if _, err := s.Group(context.Background(), "alice", flat.ID); err != errorspkg.ErrInternal {
		t.Errorf("s.Group() returned error %v, want %v", err, errorspkg.ErrInternal)
	}
}

func TestMe(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		username string
		want     domain.UserBalance
	}{
		{
			name:     "Creditor",
			username: "alice",
			want: domain.UserBalance{
				GroupID:  11,
				Username: "alice",
				Currency: currencypkg.EUR,
				Net:      "60.00",
				Owes:     []domain.TransferSuggestion{},
				Owed:     []domain.TransferSuggestion{{From: "carol", To: "alice", Amount: "60.00"}},
			},
		},
		{
			name:     "Debtor",
			username: "carol",
			want: domain.UserBalance{
				GroupID:  11,
				Username: "carol",
				Currency: currencypkg.EUR,
				Net:      "-60.00",
				Owes:     []domain.TransferSuggestion{{From: "carol", To: "alice", Amount: "60.00"}},
				Owed:     []domain.TransferSuggestion{},
			},
		},
		{
			name:     "Settled",
			username: "bob",
			want: domain.UserBalance{
				GroupID:  11,
				Username: "bob",
				Currency: currencypkg.EUR,
				Net:      "0.00",
				Owes:     []domain.TransferSuggestion{},
				Owed:     []domain.TransferSuggestion{},
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, _ := newMocks(t)
			m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)
			m.expenseRepo.EXPECT().ListAllByGroup(gomock.Any(), flat.ID).Times(1).Return(flatExpenses, nil)
			m.observer.EXPECT().ObserveSettlement(false).Times(1)

			s := New(m.groupRepo, m.expenseRepo, balancecache.New(nil, 0), m.observer)

			got, err := s.Me(context.Background(), tc.username, flat.ID)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("s.Me() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMeNotMember(t *testing.T) {
	t.Parallel()

	m, _ := newMocks(t)
	m.groupRepo.EXPECT().Get(gomock.Any(), flat.ID).Times(1).Return(flat, nil)

	s := New(m.groupRepo, m.expenseRepo, balancecache.New(nil, 0), m.observer)

	if _, err := s.Me(context.Background(), "mallory", flat.ID); err != domain.ErrNotGroupMember {
		t.Errorf("s.Me() returned error %v, want %v", err, domain.ErrNotGroupMember)
	}
}
