package suppliers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

// mockRepository mimics the proveedores table, including its unique email index.
type mockRepository struct {
	suppliers    map[int64]Supplier
	nextID       int64
	findAllCalls int
	failWith     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{suppliers: make(map[int64]Supplier), nextID: 1}
}

func (m *mockRepository) FindAll(ctx context.Context) ([]Supplier, error) {
	m.findAllCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (Supplier, error) {
	if m.failWith != nil {
		return Supplier{}, m.failWith
	}
	s, ok := m.suppliers[id]
	if !ok {
		return Supplier{}, fmt.Errorf("%w: supplier %d", shared.ErrNotFound, id)
	}
	return s, nil
}

func (m *mockRepository) Save(ctx context.Context, supplier Supplier) (Supplier, error) {
	if m.failWith != nil {
		return Supplier{}, m.failWith
	}
	for _, other := range m.suppliers {
		if other.Email == supplier.Email && other.ID != supplier.ID {
			return Supplier{}, fmt.Errorf("%w: supplier email %q is already registered", shared.ErrConflict, supplier.Email)
		}
	}
	if supplier.ID == 0 {
		supplier.ID = m.nextID
		m.nextID++
	} else if _, ok := m.suppliers[supplier.ID]; !ok {
		return Supplier{}, fmt.Errorf("%w: supplier %d", shared.ErrNotFound, supplier.ID)
	}
	m.suppliers[supplier.ID] = supplier
	return supplier, nil
}

func (m *mockRepository) Delete(ctx context.Context, supplier Supplier) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.suppliers[supplier.ID]; !ok {
		return fmt.Errorf("%w: supplier %d", shared.ErrNotFound, supplier.ID)
	}
	delete(m.suppliers, supplier.ID)
	return nil
}

func validSupplier() Supplier {
	return Supplier{
		Name:    "Plásticos del Norte",
		Contact: "Ana Ruiz",
		Phone:   "5512345678",
		Email:   "ventas@plasticosnorte.mx",
		Address: "Av. Industrial 120, Monterrey",
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateSupplierAssignsID(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	input := validSupplier()
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	input.ID = created.ID
	assert.Equal(t, input, created)

	second := validSupplier()
	second.Email = "compras@plasticosnorte.mx"
	other, err := svc.Create(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)
}

func TestCreateSupplierIgnoresClientID(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	input := validSupplier()
	input.ID = 42
	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Len(t, repo.suppliers, 1)
}

func TestCreateSupplierPhoneLengthBounds(t *testing.T) {
	for i, phone := range []string{"1234567890", "123456789012345"} {
		repo := newMockRepository()
		svc := NewService(repo)
		input := validSupplier()
		input.Phone = phone
		input.Email = fmt.Sprintf("p%d@example.com", i)

		_, err := svc.Create(context.Background(), input)
		assert.NoError(t, err, "phone %q", phone)
	}
}

func TestCreateSupplierRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Supplier)
		field  string
	}{
		{"blank name", func(s *Supplier) { s.Name = "" }, "name"},
		{"whitespace contact", func(s *Supplier) { s.Contact = "   " }, "contact"},
		{"short phone", func(s *Supplier) { s.Phone = "123456789" }, "phone"},
		{"long phone", func(s *Supplier) { s.Phone = "1234567890123456" }, "phone"},
		{"blank phone", func(s *Supplier) { s.Phone = "" }, "phone"},
		{"malformed email", func(s *Supplier) { s.Email = "ventas.plasticos" }, "email"},
		{"blank email", func(s *Supplier) { s.Email = " " }, "email"},
		{"blank address", func(s *Supplier) { s.Address = "" }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			svc := NewService(repo)
			ctx := context.Background()

			_, err := svc.Create(ctx, validSupplier())
			require.NoError(t, err)

			input := validSupplier()
			input.Email = "otro@example.com"
			tt.mutate(&input)

			_, err = svc.Create(ctx, input)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrValidation)

			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)

			list, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestCreateSupplierReportsEveryViolation(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), Supplier{})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "contact", "phone", "email", "address"}, fields)
}

func TestCreateSupplierDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)

	dup := validSupplier()
	dup.Name = "Otro proveedor"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, shared.ErrConflict)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0])
}

func TestRepeatedFailedCreateLeavesStoreUntouched(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	bad := validSupplier()
	bad.Phone = "123"
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, bad)
		require.ErrorIs(t, err, shared.ErrValidation)
	}
	assert.Empty(t, repo.suppliers)
	assert.Equal(t, int64(1), repo.nextID)
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateSupplierNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)

	_, err = svc.Update(ctx, 999, validSupplier())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, created, repo.suppliers[created.ID])
	assert.Len(t, repo.suppliers, 1)
}

func TestUpdateSupplierReplacesFields(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)

	changes := Supplier{
		ID:      777,
		Name:    "Resinas del Bajío",
		Contact: "Luis Pérez",
		Phone:   "4421234567",
		Email:   "luis@resinasbajio.mx",
		Address: "Calle 5 #40, Querétaro",
	}
	updated, err := svc.Update(ctx, created.ID, changes)
	require.NoError(t, err)

	changes.ID = created.ID
	assert.Equal(t, changes, updated)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, changes, list[0])
}

func TestUpdateSupplierRevalidates(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)

	changes := validSupplier()
	changes.Email = "no-es-un-correo"
	_, err = svc.Update(ctx, created.ID, changes)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, created, repo.suppliers[created.ID])
}

func TestUpdateSupplierDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)
	second := validSupplier()
	second.Email = "otro@example.com"
	second, err = svc.Create(ctx, second)
	require.NoError(t, err)

	changes := second
	changes.Email = first.Email
	_, err = svc.Update(ctx, second.ID, changes)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, "otro@example.com", repo.suppliers[second.ID].Email)
}

func TestDeleteSupplier(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSupplier())
	require.NoError(t, err)
	other := validSupplier()
	other.Email = "otro@example.com"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateSupplierNormalizesText(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	input := validSupplier()
	input.Name = "Pla\u0301sticos"
	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Pl\u00e1sticos", created.Name)
}
