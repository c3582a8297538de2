package store

import (
	"context"

	"basic-api/internal/model"
)

// FakeUserRepository 供 handler 與 router 測試使用；未設定的方法被呼叫時 panic
type FakeUserRepository struct {
	CreateFn  func(ctx context.Context, p model.CreateUserParams) (*model.User, error)
	GetByIDFn func(ctx context.Context, id int) (*model.User, error)
	ListFn    func(ctx context.Context) ([]model.User, error)
	UpdateFn  func(ctx context.Context, id int, p model.UpdateUserParams) (*model.User, error)
	DeleteFn  func(ctx context.Context, id int) (bool, error)
}

func (f *FakeUserRepository) Create(ctx context.Context, p model.CreateUserParams) (*model.User, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, p)
	}
	panic("unexpected Create")
}

func (f *FakeUserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	panic("unexpected GetByID")
}

func (f *FakeUserRepository) List(ctx context.Context) ([]model.User, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	panic("unexpected List")
}

func (f *FakeUserRepository) Update(ctx context.Context, id int, p model.UpdateUserParams) (*model.User, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, p)
	}
	panic("unexpected Update")
}

func (f *FakeUserRepository) Delete(ctx context.Context, id int) (bool, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	panic("unexpected Delete")
}
