package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "nexushr/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, e *Employee) error
	findByIDFn      func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn   func(ctx context.Context, email string) (*Employee, error)
	findAllByRoleFn func(ctx context.Context, role string) ([]Employee, error)
	countByRoleFn   func(ctx context.Context, role string) (int64, error)
	updateFn        func(ctx context.Context, e *Employee) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error {
	return f.createFn(ctx, e)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) FindAllByRole(ctx context.Context, role string) ([]Employee, error) {
	return f.findAllByRoleFn(ctx, role)
}
func (f *fakeRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return f.countByRoleFn(ctx, role)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmailFn = func(ctx context.Context, email string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, e *Employee) error { saved = *e; return nil }

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Email:    "new.hire@example.com",
		Password: "s3cret!",
		Name:     "New Hire",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new.hire@example.com", resp.Email)
	assert.Equal(t, RoleEmployee, resp.Role)
	assert.Equal(t, DefaultBaseSalary, resp.BaseSalary)
	assert.Equal(t, "General", resp.Department)
	assert.Equal(t, "Staff", resp.Position)

	// stored password is hashed, never plaintext
	assert.NotEqual(t, "s3cret!", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("s3cret!")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_EmailTaken(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmailFn = func(ctx context.Context, email string) (*Employee, error) {
		return &Employee{ID: uuid.New(), Email: email}, nil
	}
	repo.createFn = func(ctx context.Context, e *Employee) error {
		t.Fatal("create must not run when the email is taken")
		return nil
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Email:    "taken@example.com",
		Password: "s3cret!",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
}

func TestService_GetAll(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllByRoleFn = func(ctx context.Context, role string) ([]Employee, error) {
		assert.Equal(t, RoleEmployee, role)
		return []Employee{
			{ID: uuid.New(), Name: "A", Email: "a@example.com", Role: RoleEmployee},
			{ID: uuid.New(), Name: "B", Email: "b@example.com", Role: RoleEmployee},
		}, nil
	}

	svc := NewService(db, repo, nil)

	rows, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestService_GetByID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, got string) (*Employee, error) {
		assert.Equal(t, id.String(), got)
		return &Employee{ID: id, Name: "Target", Email: "t@example.com"}, nil
	}

	svc := NewService(db, repo, nil)

	resp, err := svc.GetByID(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, "Target", resp.Name)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)

	repo.findByIDFn = func(ctx context.Context, got string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}
	_, err = svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
