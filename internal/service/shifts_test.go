package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/mocks"
	"telegram-shift-bot/internal/models"
)

func newShiftsTest(t *testing.T) (*mocks.MockStore, *Shifts) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	return store, NewShifts(store, zap.NewNop())
}

func twoShifts() []models.Shift {
	return []models.Shift{
		{ID: 1, Username: "alice", StartTime: "09:00", EndTime: "17:00"},
		{ID: 2, Username: "bob", StartTime: "17:00", EndTime: "23:00"},
	}
}

func TestShifts_Add(t *testing.T) {
	tests := []struct {
		name      string
		buildMock func(ctx context.Context, store *mocks.MockStore)
		want      models.Shift
		wantErr   bool
	}{
		{
			name: "Should add first shift with id 1",
			buildMock: func(ctx context.Context, store *mocks.MockStore) {
				store.EXPECT().Load(ctx).Return([]models.Shift{}, nil)
				store.EXPECT().Save(ctx, []models.Shift{
					{ID: 1, Username: "alice", StartTime: "17:00", EndTime: "19:00"},
				}).Return(nil)
			},
			want: models.Shift{ID: 1, Username: "alice", StartTime: "17:00", EndTime: "19:00"},
		},
		{
			name: "Should append after existing shifts with max id + 1",
			buildMock: func(ctx context.Context, store *mocks.MockStore) {
				store.EXPECT().Load(ctx).Return(twoShifts(), nil)
				store.EXPECT().Save(ctx, append(twoShifts(),
					models.Shift{ID: 3, Username: "alice", StartTime: "17:00", EndTime: "19:00"},
				)).Return(nil)
			},
			want: models.Shift{ID: 3, Username: "alice", StartTime: "17:00", EndTime: "19:00"},
		},
		{
			name: "Should fail without saving when load fails",
			buildMock: func(ctx context.Context, store *mocks.MockStore) {
				store.EXPECT().Load(ctx).Return(nil, errors.New("disk"))
			},
			wantErr: true,
		},
		{
			name: "Should return save error",
			buildMock: func(ctx context.Context, store *mocks.MockStore) {
				store.EXPECT().Load(ctx).Return([]models.Shift{}, nil)
				store.EXPECT().Save(ctx, gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, svc := newShiftsTest(t)
			tt.buildMock(ctx, store)

			got, err := svc.Add(ctx, "alice", "17:00", "19:00")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShifts_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Should overwrite in place and keep id", func(t *testing.T) {
		store, svc := newShiftsTest(t)
		store.EXPECT().Load(ctx).Return(twoShifts(), nil)
		store.EXPECT().Save(ctx, []models.Shift{
			{ID: 1, Username: "alice", StartTime: "09:00", EndTime: "17:00"},
			{ID: 2, Username: "carol", StartTime: "18:00", EndTime: "22:00"},
		}).Return(nil)

		got, err := svc.Update(ctx, 2, "carol", "18:00", "22:00")
		require.NoError(t, err)
		assert.Equal(t, models.Shift{ID: 2, Username: "carol", StartTime: "18:00", EndTime: "22:00"}, got)
	})

	t.Run("Should report not found without saving", func(t *testing.T) {
		store, svc := newShiftsTest(t)
		store.EXPECT().Load(ctx).Return(twoShifts(), nil)

		_, err := svc.Update(ctx, 42, "carol", "18:00", "22:00")
		assert.ErrorIs(t, err, ErrShiftNotFound)
	})
}

func TestShifts_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove shift and return it", func(t *testing.T) {
		store, svc := newShiftsTest(t)
		store.EXPECT().Load(ctx).Return(twoShifts(), nil)
		store.EXPECT().Save(ctx, twoShifts()[1:]).Return(nil)

		got, err := svc.Delete(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("Should report not found and leave collection unchanged", func(t *testing.T) {
		store, svc := newShiftsTest(t)
		store.EXPECT().Load(ctx).Return(twoShifts(), nil)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Delete(ctx, 99)
		assert.ErrorIs(t, err, ErrShiftNotFound)
	})
}

func TestShifts_Get(t *testing.T) {
	ctx := context.Background()
	store, svc := newShiftsTest(t)
	store.EXPECT().Load(ctx).Return(twoShifts(), nil).Times(2)

	got, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	_, err = svc.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}
