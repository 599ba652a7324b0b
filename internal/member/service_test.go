package member

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	members []*Member
	nextID  int64
}

func (f *fakeStore) Create(_ context.Context, req *CreateMemberRequest) (*Member, error) {
	f.nextID++
	m := &Member{
		ID:        f.nextID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}
	f.members = append(f.members, m)
	return m, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*Member, error) {
	for _, m := range f.members {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(_ context.Context) ([]*Member, error) {
	return f.members, nil
}

func Test_CreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a member", func(t *testing.T) {
		service := NewService(&fakeStore{})

		created, err := service.Create(ctx, &CreateMemberRequest{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Alice", created.Name)
		assert.NotZero(t, created.ID)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		service := NewService(&fakeStore{})

		created, err := service.Create(ctx, &CreateMemberRequest{Name: "  Alice  ", Email: " alice@example.com "})
		require.NoError(t, err)
		assert.Equal(t, "Alice", created.Name)
		assert.Equal(t, "alice@example.com", created.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service := NewService(&fakeStore{})

		_, err := service.Create(ctx, &CreateMemberRequest{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = service.Create(ctx, &CreateMemberRequest{Name: "Other Alice", Email: "alice@example.com"})
		assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		service := NewService(&fakeStore{})

		_, err := service.Create(ctx, &CreateMemberRequest{Email: "alice@example.com"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = service.Create(ctx, &CreateMemberRequest{Name: "Alice"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func Test_GetMemberByID(t *testing.T) {
	ctx := context.Background()
	service := NewService(&fakeStore{})

	created, err := service.Create(ctx, &CreateMemberRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	found, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
