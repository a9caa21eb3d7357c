package expenseservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-petr/rentmates/internal/domain"
	"github.com/go-petr/rentmates/internal/test"
	"github.com/go-petr/rentmates/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

type mocks struct {
	repo      *MockRepo
	groupRepo *MockGroupRepo
	cache     *MockInvalidator
}

func newService(t *testing.T, now time.Time) (*Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		repo:      NewMockRepo(ctrl),
		groupRepo: NewMockGroupRepo(ctrl),
		cache:     NewMockInvalidator(ctrl),
	}

	s := New(m.repo, m.groupRepo, m.cache)
	s.now = func() time.Time { return now }

	return s, m
}

func TestCreate(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, time.May, 7, 18, 30, 0, 0, time.UTC)
	today := time.Date(2023, time.May, 7, 0, 0, 0, 0, time.UTC)
	group := test.RandomGroup("alice", "bob", "carol")

	created := test.RandomExpense(group.ID, "alice", "bob")

	testCases := []struct {
		name       string
		username   string
		in         CreateInput
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name:     "OK",
			username: "alice",
			in: CreateInput{
				Description: "  rent ",
				Amount:      "120.50",
				SplitWith:   []string{"bob", "carol", "bob"},
			},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)

				arg := domain.CreateExpenseParams{
					GroupID:     group.ID,
					Description: "rent",
					Amount:      "120.5",
					Payer:       "alice",
					SplitWith:   []string{"bob", "carol"},
					ExpenseDate: today,
					CreatedBy:   "alice",
				}

				m.repo.EXPECT().Create(gomock.Any(), arg).Times(1).Return(created, nil)
				m.cache.EXPECT().Bump(gomock.Any(), group.ID).Times(1).Return(nil)
			},
		},
		{
			name:     "ExplicitPayerAndDate",
			username: "alice",
			in: CreateInput{
				Description: "internet",
				Amount:      "30",
				Payer:       "carol",
				ExpenseDate: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
			},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)

				arg := domain.CreateExpenseParams{
					GroupID:     group.ID,
					Description: "internet",
					Amount:      "30",
					Payer:       "carol",
					SplitWith:   []string{},
					ExpenseDate: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
					CreatedBy:   "alice",
				}

				m.repo.EXPECT().Create(gomock.Any(), arg).Times(1).Return(created, nil)
				m.cache.EXPECT().Bump(gomock.Any(), group.ID).Times(1).Return(nil)
			},
		},
		{
			name:     "CacheBumpFailureIsIgnored",
			username: "alice",
			in:       CreateInput{Amount: "5"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(created, nil)
				m.cache.EXPECT().Bump(gomock.Any(), group.ID).Times(1).Return(errors.New("redis down"))
			},
		},
		{
			name:     "NotMember",
			username: "mallory",
			in:       CreateInput{Amount: "5"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNotGroupMember,
		},
		{
			name:     "GroupNotFound",
			username: "alice",
			in:       CreateInput{Amount: "5"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(domain.Group{}, domain.ErrGroupNotFound)
			},
			wantErr: domain.ErrGroupNotFound,
		},
		{
			name:     "InvalidAmount",
			username: "alice",
			in:       CreateInput{Amount: "12,5"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:     "NegativeAmount",
			username: "alice",
			in:       CreateInput{Amount: "-3"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
			},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name:     "ZeroAmount",
			username: "alice",
			in:       CreateInput{Amount: "0.00"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
			},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name:     "PayerNotMember",
			username: "alice",
			in:       CreateInput{Amount: "5", Payer: "mallory"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
			},
			wantErr: domain.ErrNotGroupMember,
		},
		{
			name:     "SplitWithNotMember",
			username: "alice",
			in:       CreateInput{Amount: "5", SplitWith: []string{"bob", "mallory"}},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
			},
			wantErr: domain.ErrNotGroupMember,
		},
		{
			name:     "RepoError",
			username: "alice",
			in:       CreateInput{Amount: "5"},
			buildStubs: func(m mocks) {
				m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(domain.Expense{}, errorspkg.ErrInternal)
				m.cache.EXPECT().Bump(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newService(t, now)
			tc.buildStubs(m)

			got, err := s.Create(context.Background(), tc.username, group.ID, tc.in)
			if err != tc.wantErr {
				t.Fatalf("s.Create() returned error %v, want %v", err, tc.wantErr)
			}

			if tc.wantErr == nil {
				if diff := cmp.Diff(created, got); diff != "" {
					t.Errorf("s.Create() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	group := test.RandomGroup("alice", "bob")
	expenses := []domain.Expense{
		test.RandomExpense(group.ID, "alice"),
		test.RandomExpense(group.ID, "bob"),
	}

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		s, m := newService(t, time.Now())
		m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
		m.repo.EXPECT().
			ListByGroup(gomock.Any(), domain.ListExpensesParams{GroupID: group.ID, Limit: 10, Offset: 20}).
			Times(1).
			Return(expenses, nil)

		got, err := s.List(context.Background(), "bob", group.ID, 10, 3)
		if err != nil {
			t.Fatalf("s.List() returned error: %v", err)
		}

		if diff := cmp.Diff(expenses, got); diff != "" {
			t.Errorf("s.List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("NotMember", func(t *testing.T) {
		t.Parallel()

		s, m := newService(t, time.Now())
		m.groupRepo.EXPECT().Get(gomock.Any(), group.ID).Times(1).Return(group, nil)
		m.repo.EXPECT().ListByGroup(gomock.Any(), gomock.Any()).Times(0)

		if _, err := s.List(context.Background(), "mallory", group.ID, 10, 1); err != domain.ErrNotGroupMember {
			t.Errorf("s.List() returned error %v, want %v", err, domain.ErrNotGroupMember)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	stored := test.RandomExpense(7, "alice", "bob")
	newDate := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		username   string
		in         UpdateInput
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name:     "OK",
			username: "alice",
			in:       UpdateInput{Description: "power", Amount: "80.10", ExpenseDate: newDate},
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)

				arg := domain.UpdateExpenseParams{ID: stored.ID, Description: "power", Amount: "80.1", ExpenseDate: newDate}
				m.repo.EXPECT().Update(gomock.Any(), arg).Times(1).Return(stored, nil)
				m.cache.EXPECT().Bump(gomock.Any(), stored.GroupID).Times(1).Return(nil)
			},
		},
		{
			name:     "KeepsDate",
			username: "alice",
			in:       UpdateInput{Description: "power", Amount: "80"},
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)

				arg := domain.UpdateExpenseParams{ID: stored.ID, Description: "power", Amount: "80", ExpenseDate: stored.ExpenseDate}
				m.repo.EXPECT().Update(gomock.Any(), arg).Times(1).Return(stored, nil)
				m.cache.EXPECT().Bump(gomock.Any(), stored.GroupID).Times(1).Return(nil)
			},
		},
		{
			name:     "NotOwner",
			username: "bob",
			in:       UpdateInput{Amount: "80"},
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNotExpenseOwner,
		},
		{
			name:     "NotFound",
			username: "alice",
			in:       UpdateInput{Amount: "80"},
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(domain.Expense{}, domain.ErrExpenseNotFound)
			},
			wantErr: domain.ErrExpenseNotFound,
		},
		{
			name:     "InvalidAmount",
			username: "alice",
			in:       UpdateInput{Amount: "abc"},
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newService(t, time.Now())
			tc.buildStubs(m)

			if _, err := s.Update(context.Background(), tc.username, stored.ID, tc.in); err != tc.wantErr {
				t.Errorf("s.Update() returned error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	stored := test.RandomExpense(9, "alice")

	testCases := []struct {
		name       string
		username   string
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name:     "OK",
			username: "alice",
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)
				m.repo.EXPECT().Delete(gomock.Any(), stored.ID).Times(1).Return(nil)
				m.cache.EXPECT().Bump(gomock.Any(), stored.GroupID).Times(1).Return(nil)
			},
		},
		{
			name:     "NotOwner",
			username: "bob",
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)
				m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNotExpenseOwner,
		},
		{
			name:     "RepoError",
			username: "alice",
			buildStubs: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), stored.ID).Times(1).Return(stored, nil)
				m.repo.EXPECT().Delete(gomock.Any(), stored.ID).Times(1).Return(errorspkg.ErrInternal)
				m.cache.EXPECT().Bump(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newService(t, time.Now())
			tc.buildStubs(m)

			if err := s.Delete(context.Background(), tc.username, stored.ID); err != tc.wantErr {
				t.Errorf("s.Delete() returned error %v, want %v", err, tc.wantErr)
			}
		})
	}
}
